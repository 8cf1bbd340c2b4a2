// Package storage opens the records.Store selected by the configuration.
package storage

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/records"
	rediscache "github.com/trezcool/shule/storage/cache"
	"github.com/trezcool/shule/storage/database"
	inmemdb "github.com/trezcool/shule/storage/database/inmem"
	sqlxdb "github.com/trezcool/shule/storage/database/sqlx"
	"github.com/trezcool/shule/storage/recordapi"
)

// Closer releases the connections held by an opened store.
type Closer func() error

func noopCloser() error { return nil }

// Open returns the store for conf.RecordStore.Driver, wrapped in the redis cache when enabled.
func Open(ctx context.Context, conf *core.Config, logger core.Logger) (records.Store, Closer, error) {
	var store records.Store
	closer := Closer(noopCloser)

	switch conf.RecordStore.Driver {
	case core.StoreDriverAPI:
		if conf.RecordStore.BaseURL == "" {
			return nil, nil, errors.New("record store base url is not configured")
		}
		store = recordapi.New(conf.RecordStore)
	case core.StoreDriverMemory:
		store = inmemdb.Open()
	case core.StoreDriverPostgres:
		db, err := openDatabase(ctx, conf)
		if err != nil {
			return nil, nil, err
		}
		store = sqlxdb.New(db)
		closer = db.Close
	default:
		return nil, nil, errors.Errorf("unknown record store driver %q", conf.RecordStore.Driver)
	}

	if conf.Redis.Enabled {
		client := rediscache.NewClient(conf.Redis)
		store = rediscache.New(store, client, conf.Redis.TTL, logger)
		next := closer
		closer = func() error {
			if err := client.Close(); err != nil {
				logger.Warn("closing redis client", err)
			}
			return next()
		}
	}
	return store, closer, nil
}

func openDatabase(ctx context.Context, conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(ctx, conf); err != nil {
		return nil, errors.Wrap(err, "setting up database")
	}
	db, err := database.Open(conf)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if err = database.Ping(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err = database.Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
