package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/alexedwards/argon2id"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"starwarsApi/models"
)

var testPasswordParams = &argon2id.Params{
	Memory:      1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	sqlDb, err := db.DB()
	require.NoError(t, err)
	sqlDb.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDb.Close()
	})

	require.NoError(t, Migrate(db))

	return db
}

func newTestStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)

	return New(db, WithPasswordParams(testPasswordParams)), db
}

func seedCatalog(t *testing.T, s *Store) {
	t.Helper()

	ctx := context.Background()
	age := "19BBY"

	_, err := Seed(ctx, s, []models.Character{
		{ID: 1, Name: "Luke Skywalker", Age: &age, Gender: "male"},
		{ID: 2, Name: "Leia Organa", Gender: "female"},
	})
	require.NoError(t, err)

	_, err = Seed(ctx, s, []models.Planet{{ID: 1, Name: "Tatooine", Climate: "arid"}})
	require.NoError(t, err)

	_, err = Seed(ctx, s, []models.Vehicle{{ID: 4, Name: "Sand Crawler", Model: "Digger Crawler"}})
	require.NoError(t, err)
}
