// Package sqlxdb is a records.Store on PostgreSQL. Every table lives in the single records
// table created by database.Migrate, its fields kept as a JSONB document.
package sqlxdb

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/records"
)

const (
	selectAll  = `SELECT id, fields FROM records WHERE table_name = $1 ORDER BY id`
	selectByID = `SELECT id, fields FROM records WHERE table_name = $1 AND id = $2`
	insert     = `INSERT INTO records (table_name, fields) VALUES ($1, $2) RETURNING id`
	update     = `UPDATE records SET fields = $3, updated_at = now() WHERE table_name = $1 AND id = $2`
	deleteByID = `DELETE FROM records WHERE table_name = $1 AND id = $2`
)

var errMissingID = errors.New("record id is missing")

type (
	Store struct {
		db *sqlx.DB
	}

	row struct {
		ID     int            `db:"id"`
		Fields types.JSONText `db:"fields"`
	}
)

var _ records.Store = (*Store)(nil)

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (r row) record(fields []string) (records.Record, error) {
	rec := make(records.Record)
	dec := json.NewDecoder(bytes.NewReader(r.Fields))
	dec.UseNumber()
	if err := dec.Decode(&rec); err != nil {
		return nil, errors.Wrapf(err, "decoding record %d", r.ID)
	}
	rec[records.IDColumn] = r.ID
	return rec.Project(fields), nil
}

// document strips the id from rec; it is stored as the row key.
func document(rec records.Record) (types.JSONText, error) {
	doc := rec.Clone()
	delete(doc, records.IDColumn)
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return types.JSONText(data), nil
}

func (s *Store) FetchRecords(ctx context.Context, table string, fields []string) ([]records.Record, error) {
	rows := make([]row, 0)
	if err := s.db.SelectContext(ctx, &rows, selectAll, table); err != nil {
		return nil, errors.Wrapf(err, "selecting %s records", table)
	}
	recs := make([]records.Record, 0, len(rows))
	for _, r := range rows {
		rec, err := r.record(fields)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (s *Store) GetRecordByID(ctx context.Context, table string, id int, fields []string) (records.Record, error) {
	var r row
	if err := s.db.GetContext(ctx, &r, selectByID, table, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, records.ErrNotFound
		}
		return nil, errors.Wrapf(err, "selecting %s record %d", table, id)
	}
	return r.record(fields)
}

func (s *Store) CreateRecords(ctx context.Context, table string, recs []records.Record) ([]records.Result, error) {
	results := make([]records.Result, 0, len(recs))
	for _, rec := range recs {
		doc, err := document(rec)
		if err != nil {
			results = append(results, records.Result{Message: err.Error()})
			continue
		}
		var id int
		if err := s.db.GetContext(ctx, &id, insert, table, doc); err != nil {
			return nil, errors.Wrapf(err, "inserting %s record", table)
		}
		data := rec.Clone()
		data[records.IDColumn] = id
		results = append(results, records.Result{Success: true, Data: data})
	}
	return results, nil
}

// UpdateRecords replaces the fields of each record as a whole.
func (s *Store) UpdateRecords(ctx context.Context, table string, recs []records.Record) ([]records.Result, error) {
	results := make([]records.Result, 0, len(recs))
	for _, rec := range recs {
		id, ok := rec.ID()
		if !ok {
			results = append(results, records.Result{Message: errMissingID.Error()})
			continue
		}
		doc, err := document(rec)
		if err != nil {
			results = append(results, records.Result{Message: err.Error()})
			continue
		}
		res, err := s.db.ExecContext(ctx, update, table, id, doc)
		if err != nil {
			return nil, errors.Wrapf(err, "updating %s record %d", table, id)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			results = append(results, records.Result{Message: records.ErrNotFound.Error()})
			continue
		}
		data := rec.Clone()
		data[records.IDColumn] = id
		results = append(results, records.Result{Success: true, Data: data})
	}
	return results, nil
}

func (s *Store) DeleteRecords(ctx context.Context, table string, ids []int) ([]records.Result, error) {
	results := make([]records.Result, 0, len(ids))
	for _, id := range ids {
		res, err := s.db.ExecContext(ctx, deleteByID, table, id)
		if err != nil {
			return nil, errors.Wrapf(err, "deleting %s record %d", table, id)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			results = append(results, records.Result{Message: records.ErrNotFound.Error()})
			continue
		}
		results = append(results, records.Result{Success: true})
	}
	return results, nil
}
