package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GO2GETHER_CREATOR-HUB/internal/models"
)

func mustPublished(t *testing.T, f *fixture, userID uuid.UUID, title, description string) *models.TripTemplate {
	t.Helper()
	tpl := mustTemplate(t, f, userID, title, description)
	published, err := f.templates.Publish(context.Background(), userID, tpl.ID)
	require.NoError(t, err)
	return published
}

func TestDiscover_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	f := newFixture()
	userID := uuid.New()
	mustCreator(t, f, userID, "ana")
	tokyo := mustPublished(t, f, userID, "7-Day Tokyo Adventure", "Temples and ramen")
	mustPublished(t, f, userID, "Paris Getaway", "Croissants")
	inDesc := mustPublished(t, f, userID, "Japan rail loop", "Starts in TOKYO station")

	for _, term := range []string{"Tokyo", "tokyo", "  TOKYO  "} {
		res, err := f.discovery.Discover(context.Background(), models.DiscoverFilter{Search: term})
		require.NoError(t, err)
		assert.Equal(t, 2, res.TotalCount)
		ids := []uuid.UUID{res.Items[0].ID, res.Items[1].ID}
		assert.ElementsMatch(t, []uuid.UUID{tokyo.ID, inDesc.ID}, ids)
	}
}

func TestDiscover_Pagination(t *testing.T) {
	f := newFixture()
	userID := uuid.New()
	mustCreator(t, f, userID, "ana")
	for i := 0; i < 15; i++ {
		mustPublished(t, f, userID, fmt.Sprintf("Trip %02d", i), "desc")
	}
	ctx := context.Background()

	first, err := f.discovery.Discover(ctx, models.DiscoverFilter{Page: models.Page{Skip: 0, Limit: 10}})
	require.NoError(t, err)
	assert.Len(t, first.Items, 10)
	assert.Equal(t, 15, first.TotalCount)
	assert.Equal(t, "Trip 14", first.Items[0].Title)

	second, err := f.discovery.Discover(ctx, models.DiscoverFilter{Page: models.Page{Skip: 10, Limit: 10}})
	require.NoError(t, err)
	assert.Len(t, second.Items, 5)
	assert.Equal(t, 15, second.TotalCount)
	assert.Equal(t, "Trip 00", second.Items[4].Title)

	seen := map[uuid.UUID]bool{}
	for _, tpl := range append(first.Items, second.Items...) {
		assert.False(t, seen[tpl.ID], "duplicate across pages")
		seen[tpl.ID] = true
	}
}

func TestDiscover_LimitClamped(t *testing.T) {
	f := newFixture()
	userID := uuid.New()
	mustCreator(t, f, userID, "ana")
	mustPublished(t, f, userID, "Only", "one")

	res, err := f.discovery.Discover(context.Background(), models.DiscoverFilter{Page: models.Page{Skip: -5, Limit: 10_000}})
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)
}

func TestDiscover_EmptyResult(t *testing.T) {
	f := newFixture()
	res, err := f.discovery.Discover(context.Background(), models.DiscoverFilter{Search: "nothing"})
	require.NoError(t, err)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
	assert.Zero(t, res.TotalCount)
}

func TestDiscover_EnrichedAndHidesSuspendedCreators(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	good, bad := uuid.New(), uuid.New()
	mustCreator(t, f, good, "good")
	mustCreator(t, f, bad, "bad")
	mustPublished(t, f, good, "Visible", "v")
	mustPublished(t, f, bad, "Hidden", "h")
	f.setCreatorStatus(bad, models.CreatorStatusSuspended)

	res, err := f.discovery.Discover(ctx, models.DiscoverFilter{})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Visible", res.Items[0].Title)
	require.NotNil(t, res.Items[0].Creator)
	assert.Equal(t, "good", res.Items[0].Creator.Username)
	assert.Equal(t, "Display good", res.Items[0].Creator.DisplayName)
}

func TestView_CountsPublishedOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	userID := uuid.New()
	mustCreator(t, f, userID, "ana")
	draft := mustTemplate(t, f, userID, "Draft", "d")
	pub := mustPublished(t, f, userID, "Pub", "p")

	_, err := f.discovery.View(ctx, draft.ID)
	assert.ErrorIs(t, err, models.ErrTemplateNotFound)

	v1, err := f.discovery.View(ctx, pub.ID)
	require.NoError(t, err)
	v2, err := f.discovery.View(ctx, pub.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v1.ViewsCount)
	assert.Equal(t, int64(2), v2.ViewsCount)
	assert.Equal(t, "ana", v2.Creator.Username)

	// Discovery listing does not count views.
	_, err = f.discovery.Discover(ctx, models.DiscoverFilter{})
	require.NoError(t, err)
	got, err := f.templates.Get(ctx, userID, pub.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.ViewsCount)
}
