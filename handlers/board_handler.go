package handlers

import (
	"errors"
	"net/http"

	"github.com/Amirkhan01/campaign-system/services"
)

var errInvalidRound = errors.New("round must be a positive integer")

// BoardHandler serves the derived read models: standings tables, the
// knockout bracket and the top-scorer ranking. Everything it returns is
// recomputed from stored matches on each request.
type BoardHandler struct {
	standingsService services.StandingsService
	bracketService   services.BracketService
	scorerService    services.ScorerService
}

func NewBoardHandler(
	ss services.StandingsService,
	bs services.BracketService,
	sc services.ScorerService,
) *BoardHandler {
	return &BoardHandler{
		standingsService: ss,
		bracketService:   bs,
		scorerService:    sc,
	}
}

// StandingsHandler handles GET /groups/{groupID}/standings
func (h *BoardHandler) StandingsHandler(w http.ResponseWriter, r *http.Request) {
	groupID, err := getIDFromURL(r, "groupID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.standingsService.ComputeStandings(r.Context(), groupID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// BracketHandler handles GET /campaigns/{campaignID}/bracket
func (h *BoardHandler) BracketHandler(w http.ResponseWriter, r *http.Request) {
	campaignID, err := getIDFromURL(r, "campaignID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.bracketService.ComputeBracket(r.Context(), campaignID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AdvanceRoundHandler handles POST /campaigns/{campaignID}/bracket/advance.
// Seeding is refused with a conflict while the named round still has
// unresolved matches.
func (h *BoardHandler) AdvanceRoundHandler(w http.ResponseWriter, r *http.Request) {
	campaignID, err := getIDFromURL(r, "campaignID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Round int `json:"round"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Round <= 0 {
		badRequestResponse(w, r, errInvalidRound)
		return
	}

	matches, err := h.bracketService.AdvanceRound(r.Context(), campaignID, input.Round)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ScorersHandler handles GET /campaigns/{campaignID}/scorers
func (h *BoardHandler) ScorersHandler(w http.ResponseWriter, r *http.Request) {
	campaignID, err := getIDFromURL(r, "campaignID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.scorerService.TopScorers(r.Context(), campaignID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"scorers": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
