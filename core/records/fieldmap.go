package records

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Field maps a logical entity field (its JSON name) to its storage column.
// Joined list fields are written as a single comma-joined string.
type Field struct {
	Name   string
	Column string
	Joined bool
}

type FieldMap []Field

// Columns returns the storage columns to fetch, storage name included.
func (fm FieldMap) Columns() []string {
	cols := make([]string, 0, len(fm)+1)
	hasName := false
	for _, f := range fm {
		cols = append(cols, f.Column)
		hasName = hasName || f.Column == NameColumn
	}
	if !hasName {
		cols = append(cols, NameColumn)
	}
	return cols
}

// ColumnOf returns the storage column of a logical field.
func (fm FieldMap) ColumnOf(name string) (string, bool) {
	for _, f := range fm {
		if f.Name == name {
			return f.Column, true
		}
	}
	return "", false
}

// Decode translates a stored record into dst, which must be a pointer to an entity.
// Storage fields absent from the map are ignored.
func (fm FieldMap) Decode(rec Record, dst interface{}) error {
	logical := make(map[string]interface{}, len(fm))
	for _, f := range fm {
		if v, ok := rec[f.Column]; ok {
			logical[f.Name] = v
		}
	}
	data, err := json.Marshal(logical)
	if err != nil {
		return errors.Wrap(err, "encoding logical record")
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return errors.Wrap(err, "decoding record")
	}
	return nil
}

// Encode translates src, a payload carrying logical JSON names, into a record to be stored.
// The id column is never written; callers set it for updates.
func (fm FieldMap) Encode(src interface{}) (Record, error) {
	data, err := json.Marshal(src)
	if err != nil {
		return nil, errors.Wrap(err, "encoding payload")
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var logical map[string]interface{}
	if err := dec.Decode(&logical); err != nil {
		return nil, errors.Wrap(err, "decoding payload")
	}

	rec := make(Record, len(fm))
	for _, f := range fm {
		if f.Column == IDColumn {
			continue
		}
		v, ok := logical[f.Name]
		if !ok {
			continue
		}
		if f.Joined {
			v = joinValues(v)
		}
		rec[f.Column] = v
	}
	return rec, nil
}

func joinValues(v interface{}) string {
	switch vals := v.(type) {
	case nil:
		return ""
	case []interface{}:
		parts := make([]string, 0, len(vals))
		for _, val := range vals {
			parts = append(parts, fmt.Sprint(val))
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(v)
}
