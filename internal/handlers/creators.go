package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"GO2GETHER_CREATOR-HUB/internal/dto"
	"GO2GETHER_CREATOR-HUB/internal/models"
	"GO2GETHER_CREATOR-HUB/internal/utils"
)

// CreatorProfiles is the profile API the creator handlers need.
type CreatorProfiles interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Creator, error)
	CreateProfile(ctx context.Context, userID uuid.UUID, in models.CreateCreatorInput) (*models.Creator, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in models.UpdateCreatorInput) (*models.Creator, error)
}

// CreatorHandler serves the caller's creator profile.
type CreatorHandler struct {
	creators CreatorProfiles
}

// NewCreatorHandler creates a CreatorHandler.
func NewCreatorHandler(creators CreatorProfiles) *CreatorHandler {
	return &CreatorHandler{creators: creators}
}

// GetMe returns the caller's creator profile
// @Summary Get own creator profile
// @Description A 404 with code creator_profile_not_found means the caller has not set up a profile yet
// @Tags creators
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CreatorResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No creator profile"
// @Router /api/creators/me [get]
func (h *CreatorHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	c, err := h.creators.GetProfile(r.Context(), userID)
	if err != nil {
		utils.WriteServiceError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toCreatorResponse(c))
}

// CreateMe sets up the caller's creator profile
// @Summary Create own creator profile
// @Tags creators
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCreatorRequest true "Profile data"
// @Success 201 {object} dto.CreatorResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Profile exists or username taken"
// @Router /api/creators/me [post]
func (h *CreatorHandler) CreateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	var req dto.CreateCreatorRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w, err)
		return
	}

	c, err := h.creators.CreateProfile(r.Context(), userID, models.CreateCreatorInput{
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
	})
	if err != nil {
		utils.WriteServiceError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, toCreatorResponse(c))
}

// UpdateMe patches the caller's creator profile
// @Summary Update own creator profile
// @Tags creators
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateCreatorRequest true "Fields to change"
// @Success 200 {object} dto.CreatorResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No creator profile"
// @Router /api/creators/me [put]
func (h *CreatorHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	var req dto.UpdateCreatorRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w, err)
		return
	}

	c, err := h.creators.UpdateProfile(r.Context(), userID, models.UpdateCreatorInput{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
	})
	if err != nil {
		utils.WriteServiceError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toCreatorResponse(c))
}
