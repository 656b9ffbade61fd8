// Package handlers exposes the creator hub over HTTP.
package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"GO2GETHER_CREATOR-HUB/internal/dto"
	"GO2GETHER_CREATOR-HUB/internal/models"
	"GO2GETHER_CREATOR-HUB/internal/utils"
)

// currentUserID returns the authenticated caller or writes 401.
func currentUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, utils.CodeUnauthorized, "Authentication required")
		return uuid.Nil, false
	}
	return id, true
}

func writeBadBody(w http.ResponseWriter, err error) {
	utils.WriteErrorResponse(w, http.StatusBadRequest, utils.CodeBadRequest, "Invalid request body: "+err.Error())
}

func toUserResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		FullName:  u.FullName,
		IsActive:  u.IsActive,
		CreatedAt: utils.FormatTimestamp(u.CreatedAt),
		UpdatedAt: utils.FormatTimestamp(u.UpdatedAt),
	}
}

func toCreatorResponse(c *models.Creator) dto.CreatorResponse {
	return dto.CreatorResponse{
		ID:             c.ID.String(),
		UserID:         c.UserID.String(),
		Username:       c.Username,
		DisplayName:    c.DisplayName,
		Bio:            c.Bio,
		Status:         string(c.Status),
		CommissionRate: c.CommissionRate,
		CreatedAt:      utils.FormatTimestamp(c.CreatedAt),
		UpdatedAt:      utils.FormatTimestamp(c.UpdatedAt),
	}
}

func toTemplateResponse(t *models.TripTemplate) dto.TemplateResponse {
	resp := dto.TemplateResponse{
		ID:                t.ID.String(),
		CreatorID:         t.CreatorID.String(),
		Title:             t.Title,
		Description:       t.Description,
		CreatorNotes:      t.CreatorNotes,
		CoreExperience:    t.CoreExperience,
		FlexibleLogistics: t.FlexibleLogistics,
		Status:            string(t.Status),
		ViewsCount:        t.ViewsCount,
		CreatedAt:         utils.FormatTimestamp(t.CreatedAt),
		UpdatedAt:         utils.FormatTimestamp(t.UpdatedAt),
	}
	if resp.CoreExperience == nil {
		resp.CoreExperience = models.Attributes{}
	}
	if resp.FlexibleLogistics == nil {
		resp.FlexibleLogistics = models.Attributes{}
	}
	if t.Creator != nil {
		resp.Creator = &dto.CreatorSnapshotResponse{
			Username:    t.Creator.Username,
			DisplayName: t.Creator.DisplayName,
		}
	}
	return resp
}

func toTemplateList(res models.PageResult[*models.TripTemplate], page models.Page) dto.TemplateListResponse {
	items := make([]dto.TemplateResponse, 0, len(res.Items))
	for _, t := range res.Items {
		items = append(items, toTemplateResponse(t))
	}
	return dto.TemplateListResponse{Items: items, TotalCount: res.TotalCount, Skip: page.Skip, Limit: page.Limit}
}

func toAffiliateLinkResponse(l *models.AffiliateLink) dto.AffiliateLinkResponse {
	return dto.AffiliateLinkResponse{
		ID:               l.ID.String(),
		TemplateID:       l.TemplateID.String(),
		CreatorID:        l.CreatorID.String(),
		LinkCode:         l.LinkCode,
		Clicks:           l.Clicks,
		Conversions:      l.Conversions,
		RevenueGenerated: l.RevenueGenerated,
		CreatedAt:        utils.FormatTimestamp(l.CreatedAt),
	}
}
