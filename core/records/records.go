// Package records defines the boundary with the record store that persists students, teachers and classes,
// and the field mapping used to translate entities to and from stored records.
package records

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// Storage columns common to every table.
const (
	IDColumn   = "Id"
	NameColumn = "Name"
)

// ErrNotFound is returned by Store.GetRecordByID when no record has the requested id.
var ErrNotFound = errors.New("record not found")

type (
	// Record is a stored record keyed by storage field name.
	Record map[string]interface{}

	// Result is the per-record outcome of a batch write.
	Result struct {
		Success bool   `json:"success"`
		Data    Record `json:"data,omitempty"`
		Message string `json:"message,omitempty"`
	}

	// Store is the five-operation contract offered by the record store.
	// Batch writes report per-record outcomes; a returned error means the whole call failed.
	Store interface {
		FetchRecords(ctx context.Context, table string, fields []string) ([]Record, error)
		GetRecordByID(ctx context.Context, table string, id int, fields []string) (Record, error)
		CreateRecords(ctx context.Context, table string, recs []Record) ([]Result, error)
		UpdateRecords(ctx context.Context, table string, recs []Record) ([]Result, error)
		DeleteRecords(ctx context.Context, table string, ids []int) ([]Result, error)
	}
)

// ServiceError is a failure reported by the record store itself.
type ServiceError struct {
	Status  int
	Message string
}

func (se ServiceError) Error() string {
	if se.Status > 0 {
		return fmt.Sprintf("record store: %s (status %d)", se.Message, se.Status)
	}
	return "record store: " + se.Message
}

// ID returns the record's id, whatever numeric shape it was decoded with.
func (r Record) ID() (int, bool) {
	switch v := r[IDColumn].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case json.Number:
		id, err := strconv.Atoi(v.String())
		return id, err == nil
	case string:
		id, err := strconv.Atoi(v)
		return id, err == nil
	}
	return 0, false
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// Project returns a copy of the record restricted to fields. No fields means all of them.
func (r Record) Project(fields []string) Record {
	if len(fields) == 0 {
		return r.Clone()
	}
	p := make(Record, len(fields))
	for _, f := range fields {
		if v, ok := r[f]; ok {
			p[f] = v
		}
	}
	return p
}

// Failures returns the unsuccessful results.
func Failures(results []Result) []Result {
	failed := make([]Result, 0)
	for _, res := range results {
		if !res.Success {
			failed = append(failed, res)
		}
	}
	return failed
}
