package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"starwarsApi/models"
)

type favoriteKind struct {
	column  string
	catalog func() any
	row     func(userID, targetID uint) any
	model   func() any
}

var favoriteKinds = map[models.Kind]favoriteKind{
	models.KindCharacter: {
		column:  "characters_id",
		catalog: func() any { return &models.Character{} },
		row: func(userID, targetID uint) any {
			return &models.FavoriteCharacter{UserID: userID, CharacterID: targetID}
		},
		model: func() any { return &models.FavoriteCharacter{} },
	},
	models.KindPlanet: {
		column:  "planets_id",
		catalog: func() any { return &models.Planet{} },
		row: func(userID, targetID uint) any {
			return &models.FavoritePlanet{UserID: userID, PlanetID: targetID}
		},
		model: func() any { return &models.FavoritePlanet{} },
	},
	models.KindVehicle: {
		column:  "vehicles_id",
		catalog: func() any { return &models.Vehicle{} },
		row: func(userID, targetID uint) any {
			return &models.FavoriteVehicle{UserID: userID, VehicleID: targetID}
		},
		model: func() any { return &models.FavoriteVehicle{} },
	},
}

func lookupFavoriteKind(kind models.Kind) (favoriteKind, error) {
	fk, ok := favoriteKinds[kind]

	if !ok {
		return favoriteKind{}, fmt.Errorf("unknown catalog kind %q", kind)
	}

	return fk, nil
}

// AddFavorite links the user behind identity to a catalog row. The insert relies
// on the (user_id, target) unique index, so two concurrent requests for the same
// pair cannot both succeed.
func (s *Store) AddFavorite(ctx context.Context, identity string, kind models.Kind, targetID uint) error {
	fk, err := lookupFavoriteKind(kind)

	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := userByEmail(tx, identity)

		if err != nil {
			return err
		}

		exists, err := rowExists(tx, fk.catalog(), targetID)

		if err != nil {
			return err
		}

		if !exists {
			return notFound("Favorite %s don't exist", kind)
		}

		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(fk.row(u.ID, targetID))

		if errors.Is(res.Error, gorm.ErrDuplicatedKey) || (res.Error == nil && res.RowsAffected == 0) {
			return conflict("Favorite %s already exists", kind)
		} else if res.Error != nil {
			return fmt.Errorf("insert favorite %s: %w", kind, res.Error)
		}

		return nil
	})
}

// RemoveFavorite deletes the link between the user and a catalog row. The
// catalog row is checked first, so an unknown target and a missing favorite
// produce different messages.
func (s *Store) RemoveFavorite(ctx context.Context, identity string, kind models.Kind, targetID uint) error {
	fk, err := lookupFavoriteKind(kind)

	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := userByEmail(tx, identity)

		if err != nil {
			return err
		}

		exists, err := rowExists(tx, fk.catalog(), targetID)

		if err != nil {
			return err
		}

		if !exists {
			return notFound("%s don't exist", kind.Title())
		}

		res := tx.Where("user_id = ? AND "+fk.column+" = ?", u.ID, targetID).Delete(fk.model())

		if res.Error != nil {
			return fmt.Errorf("delete favorite %s: %w", kind, res.Error)
		}

		if res.RowsAffected == 0 {
			return notFound("Favorite %s don't exist", kind)
		}

		return nil
	})
}

type Favorites struct {
	Characters []models.FavoriteCharacter
	Planets    []models.FavoritePlanet
	Vehicles   []models.FavoriteVehicle
}

func (f *Favorites) Empty() bool {
	return len(f.Characters) == 0 && len(f.Planets) == 0 && len(f.Vehicles) == 0
}

// ListFavorites returns the three favorite sets of the user with the referenced
// catalog rows preloaded. A user without any favorite gets NotFound.
func (s *Store) ListFavorites(ctx context.Context, identity string) (*Favorites, error) {
	db := s.db.WithContext(ctx)

	u, err := userByEmail(db, identity)

	if err != nil {
		return nil, err
	}

	f := Favorites{
		Characters: []models.FavoriteCharacter{},
		Planets:    []models.FavoritePlanet{},
		Vehicles:   []models.FavoriteVehicle{},
	}

	if err := db.Preload("Character").Where("user_id = ?", u.ID).Order("id").Find(&f.Characters).Error; err != nil {
		return nil, fmt.Errorf("list favorite characters: %w", err)
	}

	if err := db.Preload("Planet").Where("user_id = ?", u.ID).Order("id").Find(&f.Planets).Error; err != nil {
		return nil, fmt.Errorf("list favorite planets: %w", err)
	}

	if err := db.Preload("Vehicle").Where("user_id = ?", u.ID).Order("id").Find(&f.Vehicles).Error; err != nil {
		return nil, fmt.Errorf("list favorite vehicles: %w", err)
	}

	if f.Empty() {
		return nil, notFound("Don't have favorites")
	}

	return &f, nil
}

func rowExists(tx *gorm.DB, model any, id uint) (bool, error) {
	var count int64

	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check %T %d: %w", model, id, err)
	}

	return count > 0, nil
}
