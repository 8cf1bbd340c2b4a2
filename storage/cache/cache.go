// Package rediscache wraps a records.Store with a read-through Redis cache of table listings.
package rediscache

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/records"
)

const keyPrefix = "records:"

// Client is the subset of *redis.Client used by the cache.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	HGet(ctx context.Context, key, field string) *redis.StringCmd
	HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Store caches FetchRecords per table and field list. Listings live under the table's
// current generation; any write to a table bumps it, so the next read reloads from the
// wrapped store and fills started before the write land under a generation nobody reads.
// Cache failures are logged and never fail a call.
type Store struct {
	next   records.Store
	client Client
	ttl    time.Duration
	logger core.Logger
}

var _ records.Store = (*Store)(nil)

func New(next records.Store, client Client, ttl time.Duration, logger core.Logger) *Store {
	return &Store{next: next, client: client, ttl: ttl, logger: logger}
}

// NewClient connects to the configured Redis server.
func NewClient(conf core.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})
}

func generationKey(table string) string {
	return keyPrefix + table + ":gen"
}

func listingKey(table string, gen int64) string {
	return keyPrefix + table + ":" + strconv.FormatInt(gen, 10)
}

func fieldsKey(fields []string) string {
	if len(fields) == 0 {
		return "*"
	}
	return strings.Join(fields, ",")
}

func (s *Store) generation(ctx context.Context, table string) (int64, bool) {
	gen, err := s.client.Get(ctx, generationKey(table)).Int64()
	switch {
	case err == nil:
		return gen, true
	case errors.Is(err, redis.Nil):
		return 0, true
	default:
		s.logger.Warn("reading records cache generation", err, map[string]interface{}{"table": table})
		return 0, false
	}
}

func (s *Store) cached(ctx context.Context, table string, gen int64, fields []string) ([]records.Record, bool) {
	data, err := s.client.HGet(ctx, listingKey(table, gen), fieldsKey(fields)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("reading records cache", err, map[string]interface{}{"table": table})
		}
		return nil, false
	}
	recs := make([]records.Record, 0)
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&recs); err != nil {
		s.logger.Warn("decoding records cache", err, map[string]interface{}{"table": table})
		return nil, false
	}
	return recs, true
}

func (s *Store) store(ctx context.Context, table string, gen int64, fields []string, recs []records.Record) {
	data, err := json.Marshal(recs)
	if err != nil {
		s.logger.Warn("encoding records cache", err, map[string]interface{}{"table": table})
		return
	}
	key := listingKey(table, gen)
	if err := s.client.HSet(ctx, key, fieldsKey(fields), data).Err(); err != nil {
		s.logger.Warn("writing records cache", err, map[string]interface{}{"table": table})
		return
	}
	if s.ttl > 0 {
		if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
			s.logger.Warn("expiring records cache", err, map[string]interface{}{"table": table})
		}
	}
}

func (s *Store) invalidate(ctx context.Context, table string) {
	gen, err := s.client.Incr(ctx, generationKey(table)).Result()
	if err != nil {
		s.logger.Warn("invalidating records cache", err, map[string]interface{}{"table": table})
		return
	}
	if err := s.client.Del(ctx, listingKey(table, gen-1)).Err(); err != nil {
		s.logger.Warn("dropping records cache", err, map[string]interface{}{"table": table})
	}
}

func (s *Store) FetchRecords(ctx context.Context, table string, fields []string) ([]records.Record, error) {
	gen, ok := s.generation(ctx, table)
	if !ok {
		return s.next.FetchRecords(ctx, table, fields)
	}
	if recs, ok := s.cached(ctx, table, gen, fields); ok {
		return recs, nil
	}
	recs, err := s.next.FetchRecords(ctx, table, fields)
	if err != nil {
		return nil, err
	}
	s.store(ctx, table, gen, fields, recs)
	return recs, nil
}

func (s *Store) GetRecordByID(ctx context.Context, table string, id int, fields []string) (records.Record, error) {
	return s.next.GetRecordByID(ctx, table, id, fields)
}

func (s *Store) CreateRecords(ctx context.Context, table string, recs []records.Record) ([]records.Result, error) {
	defer s.invalidate(ctx, table)
	return s.next.CreateRecords(ctx, table, recs)
}

func (s *Store) UpdateRecords(ctx context.Context, table string, recs []records.Record) ([]records.Result, error) {
	defer s.invalidate(ctx, table)
	return s.next.UpdateRecords(ctx, table, recs)
}

func (s *Store) DeleteRecords(ctx context.Context, table string, ids []int) ([]records.Result, error) {
	defer s.invalidate(ctx, table)
	return s.next.DeleteRecords(ctx, table, ids)
}
