package services

import "errors"

// Shared errors mapped onto HTTP responses by the handler layer.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed        = errors.New("validation failed")
	ErrCampaignNameRequired    = errors.New("campaign name is required")
	ErrCampaignDatesRequired   = errors.New("campaign registration, start and end dates are required")
	ErrCampaignInvalidRegDate  = errors.New("campaign registration end date must be before start date")
	ErrCampaignInvalidDates    = errors.New("campaign end date must be after start date")
	ErrCampaignInvalidStatus   = errors.New("invalid campaign status provided")
	ErrCampaignStatusImmutable = errors.New("invalid campaign status transition")
	ErrGroupNameRequired       = errors.New("group name is required")
	ErrGroupInUse              = errors.New("group still has teams assigned")
	ErrTeamNameRequired        = errors.New("team name is required")
	ErrTeamGroupLocked         = errors.New("team group cannot change once matches reference the team")
	ErrMatchTeamsIdentical     = errors.New("a match must reference two distinct teams")
	ErrScoreNegative           = errors.New("scores must be non-negative")
	ErrRoundAlreadySeeded      = errors.New("next round already has matches recorded")

	// Conflicts
	ErrCampaignSlugConflict = errors.New("campaign slug is already in use")
	ErrTeamNameConflict     = errors.New("team name is already in use in this campaign")

	// Entity not-found variants, more context than the generic ErrNotFound
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrGroupNotFound    = errors.New("group not found")
	ErrTeamNotFound     = errors.New("team not found")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrMatchNotFound    = errors.New("match not found")
)
