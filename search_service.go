package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/RediSearch/redisearch-go/redisearch"
	"github.com/bytedance/sonic"
	goredis "github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"starwarsApi/models"
	"starwarsApi/store"
)

const (
	searchIndexName  = "catalogSearch"
	searchKeyPrefix  = "search:"
	rebuildStatusKey = "rebuild_search_index"
	rebuildLockTtl   = time.Hour
	rebuildBatchSize = 1000
)

var ErrAlreadyRebuilding = errors.New("search index rebuild is already running")

// ErrInvalidSearchQuery is returned when RediSearch rejects the query text.
var ErrInvalidSearchQuery = errors.New("invalid search query")

// SearchIndex mirrors the catalog tables into a RediSearch JSON index so names
// can be searched across all three kinds.
type SearchIndex struct {
	redis *RedisConnection
	store *store.Store
	log   zerolog.Logger
}

func NewSearchIndex(redis *RedisConnection, s *store.Store, log zerolog.Logger) *SearchIndex {
	return &SearchIndex{
		redis: redis,
		store: s,
		log:   log,
	}
}

func searchKey(doc *models.SearchDocument) string {
	return searchKeyPrefix + string(doc.Kind) + ":" + strconv.FormatUint(uint64(doc.ID), 10)
}

func (s *SearchIndex) Search(q string, limit int) ([]models.SearchDocument, error) {
	docs, _, err := s.redis.Search.Search(redisearch.NewQuery(q).Limit(0, limit))

	if isQuerySyntaxError(err) {
		return nil, fmt.Errorf("search %q: %w: %v", q, ErrInvalidSearchQuery, err)
	} else if err != nil {
		return nil, fmt.Errorf("search %q: %w", q, err)
	}

	results := make([]models.SearchDocument, 0, len(docs))

	for _, d := range docs {
		raw, ok := d.Properties["$"].(string)

		if !ok {
			continue
		}

		var doc models.SearchDocument

		if err := sonic.UnmarshalString(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode search document %s: %w", d.Id, err)
		}

		results = append(results, doc)
	}

	return results, nil
}

func isQuerySyntaxError(err error) bool {
	if err == nil {
		return false
	}

	msg := strings.ToLower(err.Error())

	return strings.Contains(msg, "syntax error") || strings.Contains(msg, "unknown field")
}

// Rebuild recreates the index synchronously.
func (s *SearchIndex) Rebuild(ctx context.Context) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}

	defer s.release()

	return s.rebuild(ctx)
}

// RebuildAsync starts a rebuild in the background and returns once the rebuild
// lock is held.
func (s *SearchIndex) RebuildAsync(ctx context.Context) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}

	go func() {
		defer s.release()

		if err := s.rebuild(context.Background()); err != nil {
			s.log.Error().Err(err).Msg("search index rebuild failed")
		}
	}()

	return nil
}

// Status returns the last processed batch of a running rebuild, or false when
// no rebuild is running.
func (s *SearchIndex) Status(ctx context.Context) (int, bool, error) {
	batch, err := s.redis.Client.Get(ctx, rebuildStatusKey).Int()

	if errors.Is(err, goredis.Nil) {
		return 0, false, nil
	} else if err != nil {
		return 0, false, err
	}

	return batch, true, nil
}

func (s *SearchIndex) acquire(ctx context.Context) error {
	ok, err := s.redis.Client.SetNX(ctx, rebuildStatusKey, 0, rebuildLockTtl).Result()

	if err != nil {
		return fmt.Errorf("acquire rebuild lock: %w", err)
	}

	if !ok {
		return ErrAlreadyRebuilding
	}

	return nil
}

func (s *SearchIndex) release() {
	if err := s.redis.Client.Del(context.Background(), rebuildStatusKey).Err(); err != nil {
		s.log.Warn().Err(err).Msg("failed to release rebuild lock")
	}
}

func (s *SearchIndex) rebuild(ctx context.Context) error {
	err := s.redis.Client.Do(ctx, "FT.DROPINDEX", searchIndexName, "DD").Err()

	if err != nil && !strings.Contains(strings.ToLower(err.Error()), "unknown index name") {
		return fmt.Errorf("drop search index: %w", err)
	}

	err = s.redis.Client.Do(ctx, "FT.CREATE", searchIndexName,
		"ON", "JSON", "PREFIX", "1", searchKeyPrefix,
		"SCHEMA", "$.name", "AS", "name", "TEXT", "$.kind", "AS", "kind", "TAG").Err()

	if err != nil {
		return fmt.Errorf("create search index: %w", err)
	}

	batches := 0

	if err := indexCatalog[models.Character](ctx, s, &batches); err != nil {
		return err
	}

	if err := indexCatalog[models.Planet](ctx, s, &batches); err != nil {
		return err
	}

	if err := indexCatalog[models.Vehicle](ctx, s, &batches); err != nil {
		return err
	}

	s.log.Info().Int("batches", batches).Msg("finished rebuilding search index")

	return nil
}

func indexCatalog[T models.Catalog](ctx context.Context, s *SearchIndex, batches *int) error {
	return store.EachBatch(ctx, s.store, rebuildBatchSize, func(batch int, rows []T) error {
		for _, row := range rows {
			doc := row.GetSearchDocument()

			res, err := s.redis.ReJson.JSONSet(searchKey(doc), "$", doc)

			if err != nil {
				return fmt.Errorf("index %s %d: %w", doc.Kind, doc.ID, err)
			}

			if res, ok := res.(string); !ok || res != "OK" {
				s.log.Warn().Str("key", searchKey(doc)).Msg("unexpected reply adding document to search index")
			}
		}

		*batches++
		s.log.Debug().Str("kind", string(models.KindOf[T]())).Int("batch", batch).Msg("processed search batch")

		return s.redis.Client.Set(ctx, rebuildStatusKey, *batches, rebuildLockTtl).Err()
	})
}
