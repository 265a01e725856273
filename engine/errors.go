package engine

import (
	"errors"
	"fmt"
)

// ErrRoundIncomplete is returned when a knockout round is asked to feed its
// successor while it still contains undecided nodes. No partial pairing is
// ever produced in that case.
var ErrRoundIncomplete = errors.New("bracket round is not complete")

// ValidationError marks a single malformed match record. It is collected as
// a warning and excluded from computation; it never aborts a whole table or
// bracket.
type ValidationError struct {
	MatchID int
	Reason  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("match %d: %s", e.MatchID, e.Reason)
}

type WarningCode string

const (
	WarnMatchInvalid     WarningCode = "match_invalid"
	WarnWinnerUnresolved WarningCode = "winner_unresolved"
	WarnByeAssigned      WarningCode = "bye_assigned"
	WarnStalePairing     WarningCode = "stale_pairing"
	WarnGoalOrphaned     WarningCode = "goal_orphaned"
)

// Warning is a per-record data-quality finding returned alongside the
// best-effort result, so organizers can see exactly which matches were
// excluded or left ambiguous and why.
type Warning struct {
	Code    WarningCode `json:"code"`
	MatchID int         `json:"match_id,omitempty"`
	Round   int         `json:"round,omitempty"`
	Slot    int         `json:"slot,omitempty"`
	Detail  string      `json:"detail"`
}
