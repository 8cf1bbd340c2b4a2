package core

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// IDList is the canonical form of a relation to many records.
// The record store hands it out either as a list of ids or as one comma-joined string;
// both decode to the same ordered, duplicate-free list.
type IDList []int

// ParseIDList parses a comma-joined list of ids, e.g. "1, 2,3". Empty segments are skipped.
func ParseIDList(s string) (IDList, error) {
	return parseIDTokens(strings.Split(s, ","))
}

func parseIDTokens(tokens []string) (IDList, error) {
	ids := make(IDList, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		id, err := strconv.Atoi(tok)
		if err != nil {
			return nil, errors.Errorf("invalid id %q", tok)
		}
		ids = ids.add(id)
	}
	return ids, nil
}

func (ids IDList) add(id int) IDList {
	if ids.Contains(id) {
		return ids
	}
	return append(ids, id)
}

func (ids *IDList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*ids = IDList{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := ParseIDList(s)
		if err != nil {
			return err
		}
		*ids = parsed
		return nil
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		tokens := make([]string, 0, len(raw))
		for _, r := range raw {
			tok, err := scalarString(r)
			if err != nil {
				return err
			}
			tokens = append(tokens, tok)
		}
		parsed, err := parseIDTokens(tokens)
		if err != nil {
			return err
		}
		*ids = parsed
		return nil
	}
	return errors.Errorf("cannot decode %s into an id list", data)
}

func (ids IDList) MarshalJSON() ([]byte, error) {
	if ids == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]int(ids))
}

func (ids IDList) Len() int { return len(ids) }

func (ids IDList) Contains(id int) bool {
	for _, i := range ids {
		if i == id {
			return true
		}
	}
	return false
}

func (ids IDList) Strings() []string {
	strs := make([]string, 0, len(ids))
	for _, id := range ids {
		strs = append(strs, strconv.Itoa(id))
	}
	return strs
}

// Join returns the comma-joined representation stored by the record store.
func (ids IDList) Join() string {
	return strings.Join(ids.Strings(), ",")
}

// RelationID is the canonical form of a relation to a single record.
// It decodes from a bare id, a numeric string or a relation object carrying the id.
type RelationID int

func (rid *RelationID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*rid = 0
		return nil
	}

	if data[0] == '{' {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		raw, ok := obj["Id"]
		if !ok {
			raw, ok = obj["id"]
		}
		if !ok {
			return errors.Errorf("relation object %s has no id", data)
		}
		return rid.UnmarshalJSON(raw)
	}

	tok, err := scalarString(data)
	if err != nil {
		return err
	}
	tok = strings.TrimSpace(tok)
	if tok == "" {
		*rid = 0
		return nil
	}
	id, err := strconv.Atoi(tok)
	if err != nil {
		return errors.Errorf("invalid id %q", tok)
	}
	*rid = RelationID(id)
	return nil
}

func (rid RelationID) Int() int { return int(rid) }

func (rid RelationID) String() string {
	if rid == 0 {
		return ""
	}
	return strconv.Itoa(int(rid))
}

// StringList is an ordered list of strings stored comma-joined by the record store.
type StringList []string

func (sl *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*sl = StringList{}
		return nil
	}

	if data[0] == '[' {
		var strs []string
		if err := json.Unmarshal(data, &strs); err != nil {
			return err
		}
		*sl = strs
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Wrap(err, "decoding string list")
	}
	list := StringList{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			list = append(list, part)
		}
	}
	*sl = list
	return nil
}

func (sl StringList) MarshalJSON() ([]byte, error) {
	if sl == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(sl))
}

// scalarString returns the textual form of a JSON number or string.
func scalarString(data json.RawMessage) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		err := json.Unmarshal(data, &s)
		return s, err
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", errors.Errorf("invalid id %s", data)
	}
	return n.String(), nil
}
