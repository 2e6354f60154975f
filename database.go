package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/RediSearch/redisearch-go/redisearch"
	"github.com/glebarez/sqlite"
	goredis "github.com/go-redis/redis/v8"
	"github.com/lib/pq"
	"github.com/nitishm/go-rejson/v4"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"starwarsApi/store"
)

// SetupDatabaseConnection opens the database named by the configured URL and
// brings the schema up to date. postgres:// URLs and key=value DSNs use the
// postgres driver; sqlite:// and file: URLs use the embedded sqlite driver.
func SetupDatabaseConnection(databaseConfig DatabaseConfig) (*gorm.DB, error) {
	dialector, err := openDialector(databaseConfig.Url)

	if err != nil {
		return nil, err
	}

	logLevel := gormLogger.Silent

	if databaseConfig.Debug {
		logLevel = gormLogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                                   gormLogger.Default.LogMode(logLevel),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})

	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDb, err := db.DB()

	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}

	sqlDb.SetMaxIdleConns(databaseConfig.MaxIdleConnections)
	sqlDb.SetMaxOpenConns(databaseConfig.MaxOpenConnections)

	if err := store.Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func openDialector(url string) (gorm.Dialector, error) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		dsn, err := pq.ParseURL(url)

		if err != nil {
			return nil, fmt.Errorf("parse database url: %w", err)
		}

		return postgres.Open(dsn), nil
	case strings.HasPrefix(url, "sqlite://"):
		return sqlite.Open(strings.TrimPrefix(url, "sqlite://")), nil
	case strings.HasPrefix(url, "file:"):
		return sqlite.Open(url), nil
	case strings.Contains(url, "host="):
		return postgres.Open(url), nil
	}

	return nil, fmt.Errorf("unsupported database url %q", url)
}

type RedisConnection struct {
	Client *goredis.Client
	ReJson *rejson.Handler
	Search *redisearch.Client
}

func SetupRedisConnection(redisConfig RedisConfig) *RedisConnection {
	host := fmt.Sprintf("%s:%d", redisConfig.Host, redisConfig.Port)

	rh := rejson.NewReJSONHandler()
	client := goredis.NewClient(&goredis.Options{Addr: host})
	rs := redisearch.NewClient(host, searchIndexName)

	rh.SetGoRedisClient(client)

	return &RedisConnection{
		Client: client,
		ReJson: rh,
		Search: rs,
	}
}

func (r *RedisConnection) Close() error {
	return r.Client.Close()
}

func cacheTtl(redisConfig RedisConfig) time.Duration {
	return time.Duration(redisConfig.CacheTtl) * time.Second
}
