package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"GO2GETHER_CREATOR-HUB/internal/dto"
	"GO2GETHER_CREATOR-HUB/internal/models"
	"GO2GETHER_CREATOR-HUB/internal/utils"
)

// TemplateAuthoring is the authoring API the template handlers need.
type TemplateAuthoring interface {
	ListMine(ctx context.Context, userID uuid.UUID, page models.Page) (models.PageResult[*models.TripTemplate], error)
	Create(ctx context.Context, userID uuid.UUID, in models.CreateTemplateInput) (*models.TripTemplate, error)
	Get(ctx context.Context, userID, templateID uuid.UUID) (*models.TripTemplate, error)
	Update(ctx context.Context, userID, templateID uuid.UUID, in models.UpdateTemplateInput) (*models.TripTemplate, error)
	Publish(ctx context.Context, userID, templateID uuid.UUID) (*models.TripTemplate, error)
}

// TemplateHandler serves the caller's own templates.
type TemplateHandler struct {
	templates TemplateAuthoring
}

// NewTemplateHandler creates a TemplateHandler.
func NewTemplateHandler(templates TemplateAuthoring) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

// ListMine lists the caller's templates
// @Summary List own templates
// @Description All statuses, newest first
// @Tags creator-templates
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Items to skip" minimum(0) default(0)
// @Param limit query int false "Page size, capped at 100" minimum(1) maximum(100) default(100)
// @Success 200 {object} dto.TemplateListResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid paging"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} dto.ErrorResponse "Valid token but no creator profile yet (code creator_profile_not_found)"
// @Router /api/creators/me/templates [get]
func (h *TemplateHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	page, err := utils.ParsePage(r)
	if err != nil {
		utils.WriteServiceError(w, r, err)
		return
	}

	res, err := h.templates.ListMine(r.Context(), userID, page)
	if err != nil {
		utils.WriteServiceError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toTemplateList(res, page))
}

// Create stores a new template
// @Summary Create template
// @Description Status defaults to draft. Omitted attribute maps are stored empty.
// @Tags creator-templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTemplateRequest true "Template"
// @Success 201 {object} dto.TemplateResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Creator not active"
// @Failure 404 {object} dto.ErrorResponse "No creator profile"
// @Router /api/creators/me/templates [post]
func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	var req dto.CreateTemplateRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w, err)
		return
	}

	t, err := h.templates.Create(r.Context(), userID, models.CreateTemplateInput{
		Title:             req.Title,
		Description:       req.Description,
		CreatorNotes:      req.CreatorNotes,
		CoreExperience:    req.CoreExperience,
		FlexibleLogistics: req.FlexibleLogistics,
		Status:            models.TemplateStatus(req.Status),
	})
	if err != nil {
		utils.WriteServiceError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, toTemplateResponse(t))
}

// Get returns one of the caller's templates
// @Summary Get own template
// @Tags creator-templates
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID" format(uuid)
// @Success 200 {object} dto.TemplateResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Not found or not owned"
// @Router /api/creators/me/templates/{id} [get]
func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, err := utils.PathUUID(r, "id")
	if err != nil {
		utils.WriteServiceError(w, r, err)
		return
	}

	t, err := h.templates.Get(r.Context(), userID, id)
	if err != nil {
		utils.WriteServiceError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toTemplateResponse(t))
}

// Update patches one of the caller's drafts
// @Summary Update own draft template
// @Tags creator-templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID" format(uuid)
// @Param request body dto.UpdateTemplateRequest true "Fields to change"
// @Success 200 {object} dto.TemplateResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Creator not active"
// @Failure 404 {object} dto.ErrorResponse "Not found or not owned"
// @Failure 409 {object} dto.ErrorResponse "Template already published"
// @Router /api/creators/me/templates/{id} [put]
func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, err := utils.PathUUID(r, "id")
	if err != nil {
		utils.WriteServiceError(w, r, err)
		return
	}
	var req dto.UpdateTemplateRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w, err)
		return
	}

	t, err := h.templates.Update(r.Context(), userID, id, models.UpdateTemplateInput{
		Title:             req.Title,
		Description:       req.Description,
		CreatorNotes:      req.CreatorNotes,
		CoreExperience:    req.CoreExperience,
		FlexibleLogistics: req.FlexibleLogistics,
	})
	if err != nil {
		utils.WriteServiceError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toTemplateResponse(t))
}

// Publish makes one of the caller's drafts public
// @Summary Publish template
// @Tags creator-templates
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID" format(uuid)
// @Success 200 {object} dto.TemplateResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Creator not active"
// @Failure 404 {object} dto.ErrorResponse "Not found or not owned"
// @Failure 409 {object} dto.ErrorResponse "Already published"
// @Router /api/creators/me/templates/{id}/publish [post]
func (h *TemplateHandler) Publish(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, err := utils.PathUUID(r, "id")
	if err != nil {
		utils.WriteServiceError(w, r, err)
		return
	}

	t, err := h.templates.Publish(r.Context(), userID, id)
	if err != nil {
		utils.WriteServiceError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toTemplateResponse(t))
}
