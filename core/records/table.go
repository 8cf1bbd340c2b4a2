package records

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

// Table adapts one record store table to the entity type T.
//
// Batch writes follow the record store's contract: a failed record is logged and reported as
// a nil entity (create/update) or false (delete) rather than an error. Errors are reserved for
// failures of the call itself.
type Table[T any] struct {
	Name     string
	Fields   FieldMap
	NotFound error // returned by Get when the id is unknown
	Store    Store
	Logger   core.Logger
}

func (t *Table[T]) decode(rec Record) (T, error) {
	var entity T
	if err := t.Fields.Decode(rec, &entity); err != nil {
		return entity, errors.Wrapf(err, "decoding %s record", t.Name)
	}
	return entity, nil
}

// All fetches every record of the table.
func (t *Table[T]) All(ctx context.Context) ([]T, error) {
	recs, err := t.Store.FetchRecords(ctx, t.Name, t.Fields.Columns())
	if err != nil {
		return nil, errors.Wrapf(err, "fetching %s records", t.Name)
	}
	entities := make([]T, 0, len(recs))
	for _, rec := range recs {
		entity, err := t.decode(rec)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

// Get fetches a single record by id.
func (t *Table[T]) Get(ctx context.Context, id int) (T, error) {
	rec, err := t.Store.GetRecordByID(ctx, t.Name, id, t.Fields.Columns())
	if err != nil {
		var zero T
		if errors.Cause(err) == ErrNotFound && t.NotFound != nil {
			return zero, t.NotFound
		}
		return zero, errors.Wrapf(err, "fetching %s record %d", t.Name, id)
	}
	if rec == nil {
		var zero T
		return zero, t.NotFound
	}
	return t.decode(rec)
}

// Create stores payload under the display name and returns the created entity.
func (t *Table[T]) Create(ctx context.Context, payload interface{}, name string) (*T, error) {
	rec, err := t.Fields.Encode(payload)
	if err != nil {
		return nil, err
	}
	rec[NameColumn] = name

	results, err := t.Store.CreateRecords(ctx, t.Name, []Record{rec})
	if err != nil {
		return nil, errors.Wrapf(err, "creating %s record", t.Name)
	}
	return t.firstSuccess("create", results)
}

// Update replaces the record id with payload and returns the updated entity.
func (t *Table[T]) Update(ctx context.Context, id int, payload interface{}, name string) (*T, error) {
	rec, err := t.Fields.Encode(payload)
	if err != nil {
		return nil, err
	}
	rec[IDColumn] = id
	rec[NameColumn] = name

	results, err := t.Store.UpdateRecords(ctx, t.Name, []Record{rec})
	if err != nil {
		return nil, errors.Wrapf(err, "updating %s record %d", t.Name, id)
	}
	return t.firstSuccess("update", results)
}

// Delete removes the record id. It reports false when the store refused to delete it.
func (t *Table[T]) Delete(ctx context.Context, id int) (bool, error) {
	results, err := t.Store.DeleteRecords(ctx, t.Name, []int{id})
	if err != nil {
		return false, errors.Wrapf(err, "deleting %s record %d", t.Name, id)
	}
	failed := Failures(results)
	t.logFailures("delete", failed)
	return len(failed) == 0, nil
}

func (t *Table[T]) firstSuccess(op string, results []Result) (*T, error) {
	t.logFailures(op, Failures(results))
	for _, res := range results {
		if !res.Success || res.Data == nil {
			continue
		}
		entity, err := t.decode(res.Data)
		if err != nil {
			return nil, err
		}
		return &entity, nil
	}
	return nil, nil
}

func (t *Table[T]) logFailures(op string, failed []Result) {
	if len(failed) == 0 || t.Logger == nil {
		return
	}
	messages := make([]string, 0, len(failed))
	for _, res := range failed {
		messages = append(messages, res.Message)
	}
	t.Logger.Warn(
		fmt.Sprintf("failed to %s %d %s record(s): %s", op, len(failed), t.Name, strings.Join(messages, "; ")),
		map[string]interface{}{"table": t.Name, "operation": op, "messages": messages},
	)
}
