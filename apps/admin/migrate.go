package main

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/trezcool/goose"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/storage/database"
)

var (
	gooseRunFunc  = goose.RunFS     // mockable
	migrateDBFunc = openMigrationDB // mockable
)

var errNotPostgres = errors.New("migrate requires the postgres record store driver")

// openMigrationDB creates the app database when missing, then opens it.
func openMigrationDB(ctx context.Context, conf *core.Config) (*sql.DB, error) {
	if err := database.CreateIfNotExist(ctx, conf); err != nil {
		return nil, err
	}
	db, err := database.Open(conf)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if err = database.Ping(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db.DB, nil
}

func (cli *commandLine) migrate(ctx context.Context, args []string) error {
	if cli.conf.RecordStore.Driver != core.StoreDriverPostgres {
		return errNotPostgres
	}
	db, err := migrateDBFunc(ctx, cli.conf)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return gooseRunFunc(args[0], db, database.Migrations, database.MigrationsDir, arguments...)
}
