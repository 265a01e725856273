package engine

import (
	"github.com/Amirkhan01/campaign-system/models"
)

// Result is the tagged variant a raw match record collapses to at the
// normalizer boundary: either Unplayed or Played with both scores known.
// Calculators never see nullable scores.
type Result struct {
	played bool
	home   int
	away   int
}

func Unplayed() Result {
	return Result{}
}

func Played(home, away int) Result {
	return Result{played: true, home: home, away: away}
}

// Goals reports the recorded score. ok is false for an unplayed result,
// which contributes nothing to any aggregate.
func (r Result) Goals() (home, away int, ok bool) {
	return r.home, r.away, r.played
}

// NormalizedMatch is a validated match ready for computation.
type NormalizedMatch struct {
	MatchID    int
	HomeTeamID int
	AwayTeamID int
	Result     Result
}

// Normalize validates and canonicalizes a single match record. It is a pure
// function: a match is either accepted (possibly as "no result yet") or
// rejected with a *ValidationError naming the record and the reason.
func Normalize(m models.Match) (NormalizedMatch, error) {
	if m.HomeTeamID == 0 || m.AwayTeamID == 0 {
		return NormalizedMatch{}, &ValidationError{MatchID: m.ID, Reason: "match must reference two teams"}
	}
	if m.HomeTeamID == m.AwayTeamID {
		return NormalizedMatch{}, &ValidationError{MatchID: m.ID, Reason: "home and away team must differ"}
	}
	if m.HomeScore != nil && *m.HomeScore < 0 {
		return NormalizedMatch{}, &ValidationError{MatchID: m.ID, Reason: "home score must be non-negative"}
	}
	if m.AwayScore != nil && *m.AwayScore < 0 {
		return NormalizedMatch{}, &ValidationError{MatchID: m.ID, Reason: "away score must be non-negative"}
	}
	if m.Played && (m.HomeScore == nil || m.AwayScore == nil) {
		return NormalizedMatch{}, &ValidationError{MatchID: m.ID, Reason: "played match is missing a score"}
	}

	nm := NormalizedMatch{
		MatchID:    m.ID,
		HomeTeamID: m.HomeTeamID,
		AwayTeamID: m.AwayTeamID,
		Result:     Unplayed(),
	}
	if m.Played && m.HomeScore != nil && m.AwayScore != nil {
		nm.Result = Played(*m.HomeScore, *m.AwayScore)
	}
	return nm, nil
}
