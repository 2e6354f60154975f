// Package store holds every database operation the API performs. Expected
// failures are reported as *Error values; anything else is an internal error.
package store

import (
	"fmt"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"starwarsApi/models"
)

type Store struct {
	db     *gorm.DB
	params *argon2id.Params
	log    zerolog.Logger
}

type Option func(*Store)

// WithPasswordParams overrides the argon2id cost used for new hashes.
func WithPasswordParams(params *argon2id.Params) Option {
	return func(s *Store) {
		s.params = params
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

func New(db *gorm.DB, opts ...Option) *Store {
	s := &Store{
		db:     db,
		params: DefaultPasswordParams,
		log:    zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Migrate creates or updates every table, including the unique indexes on the
// favorite join tables.
func Migrate(db *gorm.DB) error {
	tables := []any{
		&models.User{},
		&models.Character{},
		&models.Planet{},
		&models.Vehicle{},
		&models.FavoriteCharacter{},
		&models.FavoritePlanet{},
		&models.FavoriteVehicle{},
	}

	for _, table := range tables {
		if err := db.AutoMigrate(table); err != nil {
			return fmt.Errorf("migrate %T: %w", table, err)
		}
	}

	return nil
}
