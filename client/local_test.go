package client_test

import (
	"context"
	"path/filepath"
	"testing"

	"bella-vista/client"
	"bella-vista/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocalSet(t *testing.T) (*client.LocalSet, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mirror.db")
	mirror, err := client.OpenMirror(path)
	require.NoError(t, err)
	t.Cleanup(func() { mirror.Close() })
	return client.NewLocalSet(mirror), path
}

func TestLocal_SeedsDefaultsOnFirstRead(t *testing.T) {
	set, _ := newLocalSet(t)

	menu, err := set.Menu.GetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, client.DefaultMenu(), menu)

	testimonials, err := set.Testimonials.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, testimonials, 3)
}

func TestLocal_CreateUpdateDelete(t *testing.T) {
	ctx := context.Background()
	set, _ := newLocalSet(t)

	created, err := set.Gallery.Create(ctx, domain.GalleryItemInput{Title: "Kitchen", URL: "/img/kitchen.jpg"})
	require.NoError(t, err)
	assert.Len(t, created.ID, 36)

	updated, err := set.Gallery.Update(ctx, created.ID, domain.GalleryItemPatch{Alt: ptr("Open kitchen")})
	require.NoError(t, err)
	assert.Equal(t, "Open kitchen", updated.Alt)
	assert.Equal(t, "Kitchen", updated.Title)

	items, err := set.Gallery.GetAll(ctx)
	require.NoError(t, err)
	assert.Contains(t, items, *updated)

	require.NoError(t, set.Gallery.Delete(ctx, created.ID))
	require.NoError(t, set.Gallery.Delete(ctx, created.ID))

	items, err = set.Gallery.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, items, len(client.DefaultGallery()))
}

func TestLocal_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	set, path := newLocalSet(t)

	_, err := set.Testimonials.Create(ctx, domain.TestimonialInput{Name: "Luca", Rating: 4, Comment: "Great risotto"})
	require.NoError(t, err)

	mirror, err := client.OpenMirror(path)
	require.NoError(t, err)
	defer mirror.Close()

	items, err := client.NewLocalSet(mirror).Testimonials.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, items, len(client.DefaultTestimonials())+1)
}

func TestLocal_Errors(t *testing.T) {
	ctx := context.Background()
	set, _ := newLocalSet(t)

	_, err := set.Menu.Update(ctx, "missing", domain.MenuItemPatch{Name: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = set.Testimonials.Create(ctx, domain.TestimonialInput{Name: "Luca", Rating: 6, Comment: "x"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	// reservation-3 is seeded as confirmed.
	_, err = set.Reservations.Update(ctx, "reservation-3", domain.ReservationPatch{Status: ptr(domain.StatusPending)})
	assert.ErrorIs(t, err, domain.ErrValidation)

	cancelled, err := set.Reservations.Update(ctx, "reservation-3", domain.ReservationPatch{Status: ptr(domain.StatusCancelled)})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)
}
