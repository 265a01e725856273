package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Amirkhan01/campaign-system/models"
	"github.com/Amirkhan01/campaign-system/services"
	"github.com/go-chi/chi/v5"
)

type CampaignHandler struct {
	campaignService services.CampaignService
	groupService    services.GroupService
}

func NewCampaignHandler(cs services.CampaignService, gs services.GroupService) *CampaignHandler {
	return &CampaignHandler{
		campaignService: cs,
		groupService:    gs,
	}
}

type campaignInput struct {
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Season    string    `json:"season"`
	Status    string    `json:"status"`
	RegDate   time.Time `json:"reg_date"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// CreateHandler handles POST /campaigns
func (h *CampaignHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input campaignInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	campaign := &models.Campaign{
		Name:      input.Name,
		Slug:      input.Slug,
		Season:    input.Season,
		Status:    models.CampaignStatus(input.Status),
		RegDate:   input.RegDate,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}
	if err := h.campaignService.Create(r.Context(), campaign); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"campaign": campaign}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByIDHandler handles GET /campaigns/{campaignID}
func (h *CampaignHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "campaignID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	campaign, err := h.campaignService.GetFullCampaign(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"campaign": campaign}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetBySlugHandler handles GET /campaigns/slug/{slug}
func (h *CampaignHandler) GetBySlugHandler(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		badRequestResponse(w, r, errors.New("missing slug in URL path"))
		return
	}

	campaign, err := h.campaignService.GetBySlug(r.Context(), slug)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"campaign": campaign}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler handles GET /campaigns
func (h *CampaignHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	var status *models.CampaignStatus
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		s := models.CampaignStatus(statusStr)
		status = &s
	}

	campaigns, err := h.campaignService.List(r.Context(), status)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"campaigns": campaigns}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateHandler handles PUT /campaigns/{campaignID}
func (h *CampaignHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "campaignID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input campaignInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	campaign := &models.Campaign{
		ID:        id,
		Name:      input.Name,
		Slug:      input.Slug,
		Season:    input.Season,
		Status:    models.CampaignStatus(input.Status),
		RegDate:   input.RegDate,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}
	if err := h.campaignService.Update(r.Context(), campaign); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"campaign": campaign}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateStatusHandler handles PATCH /campaigns/{campaignID}/status
func (h *CampaignHandler) UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "campaignID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Status models.CampaignStatus `json:"status"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.campaignService.UpdateStatus(r.Context(), id, input.Status); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	campaign, err := h.campaignService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"campaign": campaign}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateGroupHandler handles POST /campaigns/{campaignID}/groups
func (h *CampaignHandler) CreateGroupHandler(w http.ResponseWriter, r *http.Request) {
	campaignID, err := getIDFromURL(r, "campaignID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	group := &models.Group{CampaignID: campaignID, Name: input.Name}
	if err := h.groupService.Create(r.Context(), group); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"group": group}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListGroupsHandler handles GET /campaigns/{campaignID}/groups
func (h *CampaignHandler) ListGroupsHandler(w http.ResponseWriter, r *http.Request) {
	campaignID, err := getIDFromURL(r, "campaignID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	groups, err := h.groupService.ListByCampaign(r.Context(), campaignID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"groups": groups}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteGroupHandler handles DELETE /groups/{groupID}
func (h *CampaignHandler) DeleteGroupHandler(w http.ResponseWriter, r *http.Request) {
	groupID, err := getIDFromURL(r, "groupID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.groupService.Delete(r.Context(), groupID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
