package handlers

import (
	"errors"
	"net/http"

	"github.com/Amirkhan01/campaign-system/engine"
	"github.com/Amirkhan01/campaign-system/models"
	"github.com/Amirkhan01/campaign-system/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(ms services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: ms}
}

// ScheduleHandler handles POST /campaigns/{campaignID}/matches.
// Kickoff arrives as wall-clock text ("2006-01-02T15:04") with no offset.
func (h *MatchHandler) ScheduleHandler(w http.ResponseWriter, r *http.Request) {
	campaignID, err := getIDFromURL(r, "campaignID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		GroupID    *int   `json:"group_id"`
		Stage      string `json:"stage"`
		Round      *int   `json:"round"`
		Slot       *int   `json:"slot"`
		HomeTeamID int    `json:"home_team_id"`
		AwayTeamID int    `json:"away_team_id"`
		Kickoff    string `json:"kickoff"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	kickoff, err := engine.ParseLocalClock(input.Kickoff)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.Schedule(r.Context(), services.ScheduleMatchInput{
		CampaignID: campaignID,
		GroupID:    input.GroupID,
		Stage:      models.Stage(input.Stage),
		Round:      input.Round,
		Slot:       input.Slot,
		HomeTeamID: input.HomeTeamID,
		AwayTeamID: input.AwayTeamID,
		Kickoff:    kickoff,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByIDHandler handles GET /matches/{matchID}; the kickoff is echoed
// back in the campaign's reference wall clock.
func (h *MatchHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	local := h.matchService.KickoffLocal(match)
	env := jsonResponse{
		"match":         match,
		"kickoff_local": local.String(),
	}
	if err := writeJSON(w, http.StatusOK, env, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListByCampaignHandler handles GET /campaigns/{campaignID}/matches?stage=
func (h *MatchHandler) ListByCampaignHandler(w http.ResponseWriter, r *http.Request) {
	campaignID, err := getIDFromURL(r, "campaignID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var stage *models.Stage
	if stageStr := r.URL.Query().Get("stage"); stageStr != "" {
		s := models.Stage(stageStr)
		if s != models.StageGroup && s != models.StageKnockout {
			badRequestResponse(w, r, errors.New("invalid stage query parameter"))
			return
		}
		stage = &s
	}

	matches, err := h.matchService.ListByCampaign(r.Context(), campaignID, stage)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RescheduleHandler handles PATCH /matches/{matchID}/kickoff
func (h *MatchHandler) RescheduleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Kickoff string `json:"kickoff"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	kickoff, err := engine.ParseLocalClock(input.Kickoff)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.matchService.Reschedule(r.Context(), id, kickoff); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RecordResultHandler handles PUT /matches/{matchID}/result. The same
// endpoint serves both initial entry and later corrections; derived
// standings and brackets pick the change up on the next computation.
func (h *MatchHandler) RecordResultHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		HomeScore int `json:"home_score"`
		AwayScore int `json:"away_score"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.matchService.RecordResult(r.Context(), id, input.HomeScore, input.AwayScore); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RetractResultHandler handles DELETE /matches/{matchID}/result
func (h *MatchHandler) RetractResultHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.matchService.RetractResult(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetExcludedHandler handles PATCH /matches/{matchID}/excluded
func (h *MatchHandler) SetExcludedHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Excluded bool `json:"excluded"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.matchService.SetExcluded(r.Context(), id, input.Excluded); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddGoalHandler handles POST /matches/{matchID}/goals
func (h *MatchHandler) AddGoalHandler(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		TeamID   int  `json:"team_id"`
		PlayerID int  `json:"player_id"`
		Minute   *int `json:"minute"`
		Penalty  bool `json:"penalty"`
		OwnGoal  bool `json:"own_goal"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	goal := &models.Goal{
		MatchID:  matchID,
		TeamID:   input.TeamID,
		PlayerID: input.PlayerID,
		Minute:   input.Minute,
		Penalty:  input.Penalty,
		OwnGoal:  input.OwnGoal,
	}
	if err := h.matchService.AddGoal(r.Context(), goal); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"goal": goal}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RemoveGoalHandler handles DELETE /matches/{matchID}/goals/{goalID}
func (h *MatchHandler) RemoveGoalHandler(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	goalID, err := getIDFromURL(r, "goalID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.matchService.RemoveGoal(r.Context(), matchID, goalID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListGoalsHandler handles GET /matches/{matchID}/goals
func (h *MatchHandler) ListGoalsHandler(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	goals, err := h.matchService.ListGoals(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"goals": goals}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
