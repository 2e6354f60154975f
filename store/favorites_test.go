package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starwarsApi/models"
)

func TestFavoriteCharacterScenario(t *testing.T) {
	s, _ := newTestStore(t)
	seedCatalog(t, s)
	ctx := context.Background()

	_, err := s.Signup(ctx, "a@x.com", "p", "Anakin")
	require.NoError(t, err)

	require.NoError(t, s.AddFavorite(ctx, "a@x.com", models.KindCharacter, 1))

	err = s.AddFavorite(ctx, "a@x.com", models.KindCharacter, 1)
	assert.Equal(t, CodeConflict, CodeOf(err))
	assert.EqualError(t, err, "Favorite character already exists")

	require.NoError(t, s.RemoveFavorite(ctx, "a@x.com", models.KindCharacter, 1))

	err = s.RemoveFavorite(ctx, "a@x.com", models.KindCharacter, 1)
	assert.Equal(t, CodeNotFound, CodeOf(err))
	assert.EqualError(t, err, "Favorite character don't exist")
}

func TestAddFavoriteMissingTarget(t *testing.T) {
	s, _ := newTestStore(t)
	seedCatalog(t, s)
	ctx := context.Background()

	_, err := s.Signup(ctx, "a@x.com", "p", "Anakin")
	require.NoError(t, err)

	tests := []struct {
		kind models.Kind
		add  string
		del  string
	}{
		{models.KindCharacter, "Favorite character don't exist", "Character don't exist"},
		{models.KindPlanet, "Favorite planet don't exist", "Planet don't exist"},
		{models.KindVehicle, "Favorite vehicle don't exist", "Vehicle don't exist"},
	}

	for _, tt := range tests {
		err := s.AddFavorite(ctx, "a@x.com", tt.kind, 404)
		assert.Equal(t, CodeNotFound, CodeOf(err))
		assert.EqualError(t, err, tt.add)

		err = s.RemoveFavorite(ctx, "a@x.com", tt.kind, 404)
		assert.Equal(t, CodeNotFound, CodeOf(err))
		assert.EqualError(t, err, tt.del)
	}
}

func TestRemoveNeverFavorited(t *testing.T) {
	s, _ := newTestStore(t)
	seedCatalog(t, s)
	ctx := context.Background()

	_, err := s.Signup(ctx, "a@x.com", "p", "Anakin")
	require.NoError(t, err)

	for _, kind := range []models.Kind{models.KindPlanet, models.KindVehicle} {
		id := uint(1)
		if kind == models.KindVehicle {
			id = 4
		}

		err := s.RemoveFavorite(ctx, "a@x.com", kind, id)
		assert.Equal(t, CodeNotFound, CodeOf(err), kind)
	}
}

func TestFavoritesUnknownIdentity(t *testing.T) {
	s, _ := newTestStore(t)
	seedCatalog(t, s)
	ctx := context.Background()

	err := s.AddFavorite(ctx, "ghost@x.com", models.KindCharacter, 1)
	assert.Equal(t, CodeUnauthorized, CodeOf(err))

	err = s.RemoveFavorite(ctx, "ghost@x.com", models.KindCharacter, 1)
	assert.Equal(t, CodeUnauthorized, CodeOf(err))

	_, err = s.ListFavorites(ctx, "ghost@x.com")
	assert.Equal(t, CodeUnauthorized, CodeOf(err))
}

func TestFavoritesAreScopedPerUser(t *testing.T) {
	s, _ := newTestStore(t)
	seedCatalog(t, s)
	ctx := context.Background()

	_, err := s.Signup(ctx, "a@x.com", "p", "Anakin")
	require.NoError(t, err)
	_, err = s.Signup(ctx, "b@x.com", "p", "Ben")
	require.NoError(t, err)

	require.NoError(t, s.AddFavorite(ctx, "a@x.com", models.KindPlanet, 1))
	require.NoError(t, s.AddFavorite(ctx, "b@x.com", models.KindPlanet, 1))

	err = s.RemoveFavorite(ctx, "b@x.com", models.KindPlanet, 1)
	require.NoError(t, err)

	f, err := s.ListFavorites(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Len(t, f.Planets, 1)

	_, err = s.ListFavorites(ctx, "b@x.com")
	assert.Equal(t, CodeNotFound, CodeOf(err))
}

func TestListFavorites(t *testing.T) {
	s, _ := newTestStore(t)
	seedCatalog(t, s)
	ctx := context.Background()

	_, err := s.Signup(ctx, "a@x.com", "p", "Anakin")
	require.NoError(t, err)

	_, err = s.ListFavorites(ctx, "a@x.com")
	assert.Equal(t, CodeNotFound, CodeOf(err))
	assert.EqualError(t, err, "Don't have favorites")

	require.NoError(t, s.AddFavorite(ctx, "a@x.com", models.KindCharacter, 2))
	require.NoError(t, s.AddFavorite(ctx, "a@x.com", models.KindVehicle, 4))

	f, err := s.ListFavorites(ctx, "a@x.com")
	require.NoError(t, err)

	require.Len(t, f.Characters, 1)
	assert.Equal(t, uint(2), f.Characters[0].CharacterID)
	require.NotNil(t, f.Characters[0].Character)
	assert.Equal(t, "Leia Organa", f.Characters[0].Character.Name)

	assert.NotNil(t, f.Planets)
	assert.Empty(t, f.Planets)

	require.Len(t, f.Vehicles, 1)
	assert.Equal(t, "Sand Crawler", f.Vehicles[0].Vehicle.Name)
}

func TestAddRemoveListRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	seedCatalog(t, s)
	ctx := context.Background()

	_, err := s.Signup(ctx, "a@x.com", "p", "Anakin")
	require.NoError(t, err)

	require.NoError(t, s.AddFavorite(ctx, "a@x.com", models.KindCharacter, 1))
	require.NoError(t, s.AddFavorite(ctx, "a@x.com", models.KindCharacter, 2))
	require.NoError(t, s.RemoveFavorite(ctx, "a@x.com", models.KindCharacter, 1))

	f, err := s.ListFavorites(ctx, "a@x.com")
	require.NoError(t, err)

	for _, fav := range f.Characters {
		assert.NotEqual(t, uint(1), fav.CharacterID)
	}
}

func TestUnknownKind(t *testing.T) {
	s, _ := newTestStore(t)

	err := s.AddFavorite(context.Background(), "a@x.com", models.Kind("starship"), 1)

	require.Error(t, err)
	assert.Zero(t, CodeOf(err))
}
