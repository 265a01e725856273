package engine

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Amirkhan01/campaign-system/models"
)

type NodeState string

const (
	NodeUnseeded NodeState = "unseeded"
	NodeSeeded   NodeState = "seeded"
	NodeResolved NodeState = "resolved"
	NodeBye      NodeState = "bye"
)

// BracketNode is one slot of the knockout arena, addressed by (round, slot).
// Nodes are derived from the match snapshot on every computation; there is
// no cached pairing to invalidate, so a corrected early-round score flows
// into every dependent downstream node automatically.
type BracketNode struct {
	Round        int       `json:"round"`
	Slot         int       `json:"slot"`
	HomeTeamID   *int      `json:"home_team_id,omitempty"`
	AwayTeamID   *int      `json:"away_team_id,omitempty"`
	WinnerTeamID *int      `json:"winner_team_id,omitempty"`
	State        NodeState `json:"state"`
	MatchIDs     []int     `json:"match_ids,omitempty"`
}

// Pairing is a next-round fixture the engine derived from a completed round.
type Pairing struct {
	Round      int `json:"round"`
	Slot       int `json:"slot"`
	HomeTeamID int `json:"home_team_id"`
	AwayTeamID int `json:"away_team_id"`
}

// bracketRounds arranges validated knockout legs by round and slot. Legs
// sharing a (round, slot) form a two-legged aggregate.
type bracketRounds map[int]map[int][]NormalizedMatch

// ComputeBracket rebuilds the full knockout state machine from a match
// snapshot. Round 1 occupants come from the recorded round-1 matches
// (organizer placement); every later round's occupants are derived from the
// previous round's winners. Undecidable winners and odd slot counts are
// reported as warnings, never guessed around.
func ComputeBracket(matches []models.Match) ([]BracketNode, []Warning) {
	warnings := make([]Warning, 0)
	rounds := make(bracketRounds)
	maxRound := 0

	for _, m := range matches {
		if m.Stage != models.StageKnockout || m.Excluded {
			continue
		}
		if m.Round == nil || m.Slot == nil || *m.Round < 1 || *m.Slot < 1 {
			warnings = append(warnings, Warning{Code: WarnMatchInvalid, MatchID: m.ID,
				Detail: "knockout match is missing a round or slot"})
			continue
		}
		nm, err := Normalize(m)
		if err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				warnings = append(warnings, Warning{Code: WarnMatchInvalid, MatchID: verr.MatchID,
					Round: *m.Round, Slot: *m.Slot, Detail: verr.Reason})
			}
			continue
		}
		if rounds[*m.Round] == nil {
			rounds[*m.Round] = make(map[int][]NormalizedMatch)
		}
		rounds[*m.Round][*m.Slot] = append(rounds[*m.Round][*m.Slot], nm)
		if *m.Round > maxRound {
			maxRound = *m.Round
		}
	}
	if maxRound == 0 {
		return nil, warnings
	}

	nodes := make([]BracketNode, 0)
	var prev []BracketNode

	for r := 1; r <= maxRound || len(prev) > 1; r++ {
		var current []BracketNode
		if len(prev) == 0 {
			// No predecessor structure: occupants can only come from the
			// stored matches themselves (round 1, or a manually seeded round).
			current = nodesFromLegs(r, rounds[r])
		} else {
			current = nodesFromWinners(r, prev, &warnings)
			current = mergeStoredLegs(r, current, rounds[r], &warnings)
		}
		if len(current) == 0 {
			break
		}
		for i := range current {
			resolveNode(&current[i], rounds[r][current[i].Slot], &warnings)
		}
		nodes = append(nodes, current...)
		prev = current
		if r > 64 {
			break
		}
	}
	return nodes, warnings
}

// nodesFromLegs builds a round's nodes directly from its stored matches,
// taking occupants from the first leg of each slot.
func nodesFromLegs(round int, slots map[int][]NormalizedMatch) []BracketNode {
	keys := make([]int, 0, len(slots))
	for slot := range slots {
		keys = append(keys, slot)
	}
	sort.Ints(keys)

	nodes := make([]BracketNode, 0, len(keys))
	for _, slot := range keys {
		first := slots[slot][0]
		home, away := first.HomeTeamID, first.AwayTeamID
		nodes = append(nodes, BracketNode{
			Round:      round,
			Slot:       slot,
			HomeTeamID: &home,
			AwayTeamID: &away,
			State:      NodeSeeded,
		})
	}
	return nodes
}

// nodesFromWinners derives the expected structure of round r from the
// previous round's nodes. An odd predecessor count hands the first winner a
// bye instead of failing, flagged for organizer visibility.
func nodesFromWinners(round int, prev []BracketNode, warnings *[]Warning) []BracketNode {
	if len(prev) <= 1 {
		return nil
	}
	nodes := make([]BracketNode, 0, len(prev)/2+1)
	slot := 1
	start := 0

	if len(prev)%2 == 1 {
		bye := BracketNode{Round: round, Slot: slot, State: NodeUnseeded}
		if w := prev[0].WinnerTeamID; w != nil {
			occupant := *w
			bye.HomeTeamID = &occupant
			bye.WinnerTeamID = &occupant
			bye.State = NodeBye
		}
		*warnings = append(*warnings, Warning{Code: WarnByeAssigned, Round: round, Slot: slot,
			Detail: fmt.Sprintf("round %d has an odd number of slots; the first winner advances with a bye", round-1)})
		nodes = append(nodes, bye)
		slot++
		start = 1
	}

	for i := start; i+1 < len(prev); i += 2 {
		n := BracketNode{Round: round, Slot: slot, State: NodeUnseeded}
		if w := prev[i].WinnerTeamID; w != nil {
			home := *w
			n.HomeTeamID = &home
			n.State = NodeSeeded
		}
		if w := prev[i+1].WinnerTeamID; w != nil {
			away := *w
			n.AwayTeamID = &away
			n.State = NodeSeeded
		}
		nodes = append(nodes, n)
		slot++
	}
	return nodes
}

// mergeStoredLegs folds stored matches of round r into the expected
// structure. A stored slot the structure does not call for is kept visible
// but flagged as stale rather than silently trusted.
func mergeStoredLegs(round int, expected []BracketNode, slots map[int][]NormalizedMatch, warnings *[]Warning) []BracketNode {
	known := make(map[int]bool, len(expected))
	for _, n := range expected {
		known[n.Slot] = true
	}

	extra := make([]int, 0)
	for slot := range slots {
		if !known[slot] {
			extra = append(extra, slot)
		}
	}
	sort.Ints(extra)

	for _, slot := range extra {
		first := slots[slot][0]
		home, away := first.HomeTeamID, first.AwayTeamID
		*warnings = append(*warnings, Warning{Code: WarnStalePairing, MatchID: first.MatchID, Round: round, Slot: slot,
			Detail: "no predecessor node feeds this slot"})
		expected = append(expected, BracketNode{
			Round:      round,
			Slot:       slot,
			HomeTeamID: &home,
			AwayTeamID: &away,
			State:      NodeSeeded,
		})
	}

	sort.Slice(expected, func(i, j int) bool { return expected[i].Slot < expected[j].Slot })
	return expected
}

// resolveNode determines a node's winner from the aggregate of its legs.
// A tied aggregate with results recorded is surfaced as unresolved; the
// engine never fabricates a winner from ambiguous input.
func resolveNode(node *BracketNode, legs []NormalizedMatch, warnings *[]Warning) {
	if len(legs) == 0 {
		return
	}
	for _, leg := range legs {
		node.MatchIDs = append(node.MatchIDs, leg.MatchID)
	}
	if node.State == NodeBye {
		*warnings = append(*warnings, Warning{Code: WarnStalePairing, MatchID: legs[0].MatchID,
			Round: node.Round, Slot: node.Slot, Detail: "match recorded against a bye slot"})
		return
	}

	if node.HomeTeamID != nil && node.AwayTeamID != nil {
		for _, leg := range legs {
			if !sameTeamPair(*node.HomeTeamID, *node.AwayTeamID, leg.HomeTeamID, leg.AwayTeamID) {
				*warnings = append(*warnings, Warning{Code: WarnStalePairing, MatchID: leg.MatchID,
					Round: node.Round, Slot: node.Slot,
					Detail: "recorded pairing no longer matches the recomputed occupants"})
				return
			}
		}
	} else {
		// Occupants were still pending upstream; trust the recorded legs for
		// display, their results cannot resolve the node yet.
		home, away := legs[0].HomeTeamID, legs[0].AwayTeamID
		node.HomeTeamID = &home
		node.AwayTeamID = &away
		node.State = NodeSeeded
		return
	}

	aggregate := make(map[int]int, 2)
	played := 0
	for _, leg := range legs {
		home, away, ok := leg.Result.Goals()
		if !ok {
			continue
		}
		played++
		aggregate[leg.HomeTeamID] += home
		aggregate[leg.AwayTeamID] += away
	}
	if played == 0 {
		node.State = NodeSeeded
		return
	}

	homeGoals := aggregate[*node.HomeTeamID]
	awayGoals := aggregate[*node.AwayTeamID]
	switch {
	case homeGoals > awayGoals:
		winner := *node.HomeTeamID
		node.WinnerTeamID = &winner
		node.State = NodeResolved
	case awayGoals > homeGoals:
		winner := *node.AwayTeamID
		node.WinnerTeamID = &winner
		node.State = NodeResolved
	default:
		node.State = NodeSeeded
		*warnings = append(*warnings, Warning{Code: WarnWinnerUnresolved, MatchID: legs[len(legs)-1].MatchID,
			Round: node.Round, Slot: node.Slot,
			Detail: fmt.Sprintf("aggregate %d:%d has no decidable winner", homeGoals, awayGoals)})
	}
}

func sameTeamPair(a1, a2, b1, b2 int) bool {
	return (a1 == b1 && a2 == b2) || (a1 == b2 && a2 == b1)
}

// NextRoundPairings turns a completed round into the fixtures of its
// successor. It refuses with ErrRoundIncomplete while any node of the round
// is neither resolved nor a bye, so a premature pairing can never be
// written. The returned bye team, if any, advances without a fixture.
func NextRoundPairings(nodes []BracketNode, round int) ([]Pairing, *int, error) {
	current := make([]BracketNode, 0)
	for _, n := range nodes {
		if n.Round == round {
			current = append(current, n)
		}
	}
	sort.Slice(current, func(i, j int) bool { return current[i].Slot < current[j].Slot })

	if len(current) == 0 {
		return nil, nil, fmt.Errorf("%w: round %d has no nodes", ErrRoundIncomplete, round)
	}
	winners := make([]int, 0, len(current))
	for _, n := range current {
		if (n.State != NodeResolved && n.State != NodeBye) || n.WinnerTeamID == nil {
			return nil, nil, fmt.Errorf("%w: round %d slot %d is %s", ErrRoundIncomplete, round, n.Slot, n.State)
		}
		winners = append(winners, *n.WinnerTeamID)
	}
	if len(winners) == 1 {
		// Champion decided, nothing left to pair.
		return nil, nil, nil
	}

	pairings := make([]Pairing, 0, len(winners)/2)
	slot := 1
	start := 0
	var byeTeam *int
	if len(winners)%2 == 1 {
		bye := winners[0]
		byeTeam = &bye
		slot++
		start = 1
	}
	for i := start; i+1 < len(winners); i += 2 {
		pairings = append(pairings, Pairing{
			Round:      round + 1,
			Slot:       slot,
			HomeTeamID: winners[i],
			AwayTeamID: winners[i+1],
		})
		slot++
	}
	return pairings, byeTeam, nil
}
