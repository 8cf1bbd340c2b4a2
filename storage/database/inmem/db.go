// Package inmemdb is a session-scoped records.Store kept in memory.
package inmemdb

import (
	"context"
	"sort"
	"sync"

	"github.com/trezcool/shule/core/records"
)

type (
	DB struct {
		mutex  sync.Mutex
		tables map[string]*table
	}

	table struct {
		sync.RWMutex
		pkCount int // ids are never reused, even after deletion
		rows    map[int]records.Record
	}
)

var _ records.Store = (*DB)(nil)

func Open() *DB {
	return &DB{tables: make(map[string]*table)}
}

func (db *DB) table(name string) *table {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	tbl, ok := db.tables[name]
	if !ok {
		tbl = &table{rows: make(map[int]records.Record)}
		db.tables[name] = tbl
	}
	return tbl
}

// Reset drops every table.
func (db *DB) Reset() {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.tables = make(map[string]*table)
}

func (tbl *table) ids() []int {
	ids := make([]int, 0, len(tbl.rows))
	for id := range tbl.rows {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (db *DB) FetchRecords(ctx context.Context, name string, fields []string) ([]records.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tbl := db.table(name)
	tbl.RLock()
	defer tbl.RUnlock()

	recs := make([]records.Record, 0, len(tbl.rows))
	for _, id := range tbl.ids() {
		recs = append(recs, tbl.rows[id].Project(fields))
	}
	return recs, nil
}

func (db *DB) GetRecordByID(ctx context.Context, name string, id int, fields []string) (records.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tbl := db.table(name)
	tbl.RLock()
	defer tbl.RUnlock()

	rec, ok := tbl.rows[id]
	if !ok {
		return nil, records.ErrNotFound
	}
	return rec.Project(fields), nil
}

func (db *DB) CreateRecords(ctx context.Context, name string, recs []records.Record) ([]records.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tbl := db.table(name)
	tbl.Lock()
	defer tbl.Unlock()

	results := make([]records.Result, 0, len(recs))
	for _, rec := range recs {
		tbl.pkCount++
		row := rec.Clone()
		row[records.IDColumn] = tbl.pkCount
		tbl.rows[tbl.pkCount] = row
		results = append(results, records.Result{Success: true, Data: row.Clone()})
	}
	return results, nil
}

// UpdateRecords replaces whole records; fields missing from the update are dropped.
func (db *DB) UpdateRecords(ctx context.Context, name string, recs []records.Record) ([]records.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tbl := db.table(name)
	tbl.Lock()
	defer tbl.Unlock()

	results := make([]records.Result, 0, len(recs))
	for _, rec := range recs {
		id, ok := rec.ID()
		if !ok {
			results = append(results, records.Result{Message: "record id is missing"})
			continue
		}
		if _, ok := tbl.rows[id]; !ok {
			results = append(results, records.Result{Message: records.ErrNotFound.Error()})
			continue
		}
		row := rec.Clone()
		row[records.IDColumn] = id
		tbl.rows[id] = row
		results = append(results, records.Result{Success: true, Data: row.Clone()})
	}
	return results, nil
}

func (db *DB) DeleteRecords(ctx context.Context, name string, ids []int) ([]records.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tbl := db.table(name)
	tbl.Lock()
	defer tbl.Unlock()

	results := make([]records.Result, 0, len(ids))
	for _, id := range ids {
		if _, ok := tbl.rows[id]; !ok {
			results = append(results, records.Result{Message: records.ErrNotFound.Error()})
			continue
		}
		delete(tbl.rows, id)
		results = append(results, records.Result{Success: true})
	}
	return results, nil
}
