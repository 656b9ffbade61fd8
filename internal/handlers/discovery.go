package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"GO2GETHER_CREATOR-HUB/internal/models"
	"GO2GETHER_CREATOR-HUB/internal/utils"
)

// Catalogue is the public discovery API.
type Catalogue interface {
	Discover(ctx context.Context, f models.DiscoverFilter) (models.PageResult[*models.TripTemplate], error)
	View(ctx context.Context, templateID uuid.UUID) (*models.TripTemplate, error)
	ResolveAffiliate(ctx context.Context, code string) (*models.TripTemplate, error)
}

// DiscoveryHandler serves published templates to anyone.
type DiscoveryHandler struct {
	catalogue Catalogue
}

// NewDiscoveryHandler creates a DiscoveryHandler.
func NewDiscoveryHandler(catalogue Catalogue) *DiscoveryHandler {
	return &DiscoveryHandler{catalogue: catalogue}
}

// Discover lists published templates
// @Summary Discover templates
// @Description Published templates of non-suspended creators, newest first
// @Tags discovery
// @Produce json
// @Param search query string false "Case-insensitive substring of title or description"
// @Param skip query int false "Items to skip" minimum(0) default(0)
// @Param limit query int false "Page size, capped at 100" minimum(1) maximum(100) default(100)
// @Success 200 {object} dto.TemplateListResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid paging"
// @Router /api/templates [get]
func (h *DiscoveryHandler) Discover(w http.ResponseWriter, r *http.Request) {
	page, err := utils.ParsePage(r)
	if err != nil {
		utils.WriteServiceError(w, r, err)
		return
	}

	res, err := h.catalogue.Discover(r.Context(), models.DiscoverFilter{
		Search: r.URL.Query().Get("search"),
		Page:   page,
	})
	if err != nil {
		utils.WriteServiceError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toTemplateList(res, page))
}

// GetTemplate returns a published template and counts the view
// @Summary Get public template
// @Tags discovery
// @Produce json
// @Param id path string true "Template ID" format(uuid)
// @Success 200 {object} dto.TemplateResponse
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /api/templates/{id} [get]
func (h *DiscoveryHandler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := utils.PathUUID(r, "id")
	if err != nil {
		utils.WriteServiceError(w, r, err)
		return
	}

	t, err := h.catalogue.View(r.Context(), id)
	if err != nil {
		utils.WriteServiceError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toTemplateResponse(t))
}

// GetByAffiliate resolves an affiliate code
// @Summary Get template by affiliate code
// @Description Counts a click on the link and a view on the template
// @Tags discovery
// @Produce json
// @Param code path string true "Affiliate link code"
// @Success 200 {object} dto.TemplateResponse
// @Failure 404 {object} dto.ErrorResponse "Unknown code"
// @Router /api/templates/by-affiliate/{code} [get]
func (h *DiscoveryHandler) GetByAffiliate(w http.ResponseWriter, r *http.Request) {
	t, err := h.catalogue.ResolveAffiliate(r.Context(), r.PathValue("code"))
	if err != nil {
		utils.WriteServiceError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toTemplateResponse(t))
}
