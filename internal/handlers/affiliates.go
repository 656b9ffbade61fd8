package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"GO2GETHER_CREATOR-HUB/internal/dto"
	"GO2GETHER_CREATOR-HUB/internal/models"
	"GO2GETHER_CREATOR-HUB/internal/utils"
)

// AffiliateLinks is the affiliate API the handlers need.
type AffiliateLinks interface {
	Create(ctx context.Context, userID, templateID uuid.UUID) (*models.AffiliateLink, error)
	ListMine(ctx context.Context, userID uuid.UUID, page models.Page) (models.PageResult[*models.AffiliateLink], error)
}

// AffiliateHandler serves the caller's affiliate links.
type AffiliateHandler struct {
	links AffiliateLinks
}

// NewAffiliateHandler creates an AffiliateHandler.
func NewAffiliateHandler(links AffiliateLinks) *AffiliateHandler {
	return &AffiliateHandler{links: links}
}

// Create issues an affiliate link
// @Summary Create affiliate link
// @Tags affiliates
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID" format(uuid)
// @Success 201 {object} dto.AffiliateLinkResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Creator not active"
// @Failure 404 {object} dto.ErrorResponse "Not found or not owned"
// @Failure 409 {object} dto.ErrorResponse "Template is not published"
// @Router /api/creators/me/templates/{id}/affiliate-links [post]
func (h *AffiliateHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, err := utils.PathUUID(r, "id")
	if err != nil {
		utils.WriteServiceError(w, r, err)
		return
	}

	l, err := h.links.Create(r.Context(), userID, id)
	if err != nil {
		utils.WriteServiceError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, toAffiliateLinkResponse(l))
}

// ListMine lists the caller's affiliate links
// @Summary List own affiliate links
// @Tags affiliates
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Items to skip" minimum(0) default(0)
// @Param limit query int false "Page size, capped at 100" minimum(1) maximum(100) default(100)
// @Success 200 {object} dto.AffiliateLinkListResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No creator profile"
// @Router /api/creators/me/affiliate-links [get]
func (h *AffiliateHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	page, err := utils.ParsePage(r)
	if err != nil {
		utils.WriteServiceError(w, r, err)
		return
	}

	res, err := h.links.ListMine(r.Context(), userID, page)
	if err != nil {
		utils.WriteServiceError(w, r, err)
		return
	}
	items := make([]dto.AffiliateLinkResponse, 0, len(res.Items))
	for _, l := range res.Items {
		items = append(items, toAffiliateLinkResponse(l))
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.AffiliateLinkListResponse{
		Items:      items,
		TotalCount: res.TotalCount,
		Skip:       page.Skip,
		Limit:      page.Limit,
	})
}
