package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"starwarsApi/models"
)

// ListAll returns every row of a catalog kind ordered by id. An empty table is
// reported as NotFound.
func ListAll[T models.Catalog](ctx context.Context, s *Store) ([]T, error) {
	var rows []T

	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", models.KindOf[T](), err)
	}

	if len(rows) == 0 {
		return nil, errEmpty
	}

	return rows, nil
}

// missingMessages are the NotFound texts existing clients match on.
var missingMessages = map[models.Kind]string{
	models.KindCharacter: "No existe el personaje",
	models.KindPlanet:    "No existe el planeta",
	models.KindVehicle:   "No existe el vehiculo",
}

func GetOne[T models.Catalog](ctx context.Context, s *Store, id uint) (*T, error) {
	var row T

	tx := s.db.WithContext(ctx).First(&row, id)

	if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return nil, notFound("%s", missingMessages[models.KindOf[T]()])
	} else if tx.Error != nil {
		return nil, fmt.Errorf("get %s %d: %w", models.KindOf[T](), id, tx.Error)
	}

	return &row, nil
}

// EachBatch walks a catalog table in primary key order, handing fn one batch at a time.
func EachBatch[T models.Catalog](ctx context.Context, s *Store, size int, fn func(batch int, rows []T) error) error {
	var rows []T

	tx := s.db.WithContext(ctx).FindInBatches(&rows, size, func(tx *gorm.DB, batch int) error {
		return fn(batch, rows)
	})

	if tx.Error != nil {
		return fmt.Errorf("walk %s: %w", models.KindOf[T](), tx.Error)
	}

	return nil
}

// Seed inserts catalog rows, skipping ids that already exist. It returns the
// number of rows actually inserted.
func Seed[T models.Catalog](ctx context.Context, s *Store, rows []T) (int64, error) {
	var inserted int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows[i])

			if res.Error != nil {
				return res.Error
			}

			inserted += res.RowsAffected
		}

		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("seed %s: %w", models.KindOf[T](), err)
	}

	return inserted, nil
}
