package records

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/shule/core"
)

type gadget struct {
	ID    int             `json:"id"`
	Label string          `json:"label"`
	Tags  core.StringList `json:"tags"`
	Parts core.IDList     `json:"parts"`
	Owner core.RelationID `json:"owner_id"`
	Size  int             `json:"size"`
}

type gadgetPayload struct {
	Label string          `json:"label"`
	Tags  []string        `json:"tags"`
	Parts core.IDList     `json:"parts"`
	Owner core.RelationID `json:"owner_id"`
	Size  int             `json:"size"`
	Extra string          `json:"extra"`
}

var gadgetFields = FieldMap{
	{Name: "id", Column: IDColumn},
	{Name: "label", Column: "label_c"},
	{Name: "tags", Column: "tags_c", Joined: true},
	{Name: "parts", Column: "parts_c", Joined: true},
	{Name: "owner_id", Column: "owner_id_c"},
	{Name: "size", Column: "size_c"},
}

func TestFieldMap_Columns(t *testing.T) {
	assert.Equal(t, []string{"Id", "label_c", "tags_c", "parts_c", "owner_id_c", "size_c", "Name"}, gadgetFields.Columns())
}

func TestFieldMap_Encode(t *testing.T) {
	rec, err := gadgetFields.Encode(gadgetPayload{
		Label: "Lamp",
		Tags:  []string{"desk", "led"},
		Parts: core.IDList{3, 4},
		Owner: 9,
		Size:  2,
		Extra: "dropped",
	})
	require.NoError(t, err)

	assert.Equal(t, "Lamp", rec["label_c"])
	assert.Equal(t, "desk,led", rec["tags_c"])
	assert.Equal(t, "3,4", rec["parts_c"])
	assert.Equal(t, json.Number("9"), rec["owner_id_c"])
	assert.Equal(t, json.Number("2"), rec["size_c"])
	assert.NotContains(t, rec, "extra")
	assert.NotContains(t, rec, IDColumn)
}

func TestFieldMap_Decode(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want gadget
	}{
		{
			name: "joined strings",
			rec:  Record{"Id": 1, "Name": "Lamp", "label_c": "Lamp", "tags_c": "desk,led", "parts_c": "3,4", "owner_id_c": 9, "size_c": 2},
			want: gadget{ID: 1, Label: "Lamp", Tags: core.StringList{"desk", "led"}, Parts: core.IDList{3, 4}, Owner: 9, Size: 2},
		},
		{
			name: "lists and relation object",
			rec: Record{
				"Id": float64(2), "label_c": "Desk", "tags_c": []interface{}{"wood"}, "parts_c": []interface{}{"5", 6},
				"owner_id_c": map[string]interface{}{"Id": 7, "Name": "Jane Doe"}, "unknown_c": "ignored",
			},
			want: gadget{ID: 2, Label: "Desk", Tags: core.StringList{"wood"}, Parts: core.IDList{5, 6}, Owner: 7},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got gadget
			require.NoError(t, gadgetFields.Decode(tt.rec, &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecord_ID(t *testing.T) {
	tests := []struct {
		rec    Record
		want   int
		wantOk bool
	}{
		{rec: Record{"Id": 3}, want: 3, wantOk: true},
		{rec: Record{"Id": float64(4)}, want: 4, wantOk: true},
		{rec: Record{"Id": json.Number("5")}, want: 5, wantOk: true},
		{rec: Record{"Id": "6"}, want: 6, wantOk: true},
		{rec: Record{}, wantOk: false},
	}
	for _, tt := range tests {
		got, ok := tt.rec.ID()
		if got != tt.want || ok != tt.wantOk {
			t.Errorf("Record.ID() = %v, %v; want %v, %v", got, ok, tt.want, tt.wantOk)
		}
	}
}

// stubStore returns canned results and remembers what it was asked to write.
type stubStore struct {
	records   []Record
	results   []Result
	err       error
	written   []Record
	deleteIDs []int
}

func (s *stubStore) FetchRecords(_ context.Context, _ string, _ []string) ([]Record, error) {
	return s.records, s.err
}

func (s *stubStore) GetRecordByID(_ context.Context, _ string, id int, _ []string) (Record, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, rec := range s.records {
		if rid, _ := rec.ID(); rid == id {
			return rec, nil
		}
	}
	return nil, ErrNotFound
}

func (s *stubStore) CreateRecords(_ context.Context, _ string, recs []Record) ([]Result, error) {
	s.written = recs
	return s.results, s.err
}

func (s *stubStore) UpdateRecords(_ context.Context, _ string, recs []Record) ([]Result, error) {
	s.written = recs
	return s.results, s.err
}

func (s *stubStore) DeleteRecords(_ context.Context, _ string, ids []int) ([]Result, error) {
	s.deleteIDs = ids
	return s.results, s.err
}

type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Debug(string, ...interface{})       {}
func (l *recordingLogger) Info(string, ...interface{})        {}
func (l *recordingLogger) Warn(msg string, _ ...interface{})  { l.warnings = append(l.warnings, msg) }
func (l *recordingLogger) Error(string, ...interface{})       {}
func (l *recordingLogger) Fatal(string, ...interface{})       {}

var errGadgetNotFound = core.NewNotFoundError("gadget not found")

func newGadgetTable(store Store, logger core.Logger) *Table[gadget] {
	return &Table[gadget]{Name: "gadget_c", Fields: gadgetFields, NotFound: errGadgetNotFound, Store: store, Logger: logger}
}

func TestTable_Get(t *testing.T) {
	store := &stubStore{records: []Record{{"Id": 1, "label_c": "Lamp"}}}
	tbl := newGadgetTable(store, nil)

	g, err := tbl.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Lamp", g.Label)

	_, err = tbl.Get(context.Background(), 999)
	if err != errGadgetNotFound {
		t.Errorf("Get(999) error = %v; want %v", err, errGadgetNotFound)
	}
	assert.True(t, core.IsNotFound(err))

	store.err = errors.New("boom")
	_, err = tbl.Get(context.Background(), 1)
	assert.Error(t, err)
	assert.False(t, core.IsNotFound(err))
}

func TestTable_Create(t *testing.T) {
	ctx := context.Background()
	payload := gadgetPayload{Label: "Lamp", Parts: core.IDList{1, 2}}

	t.Run("success", func(t *testing.T) {
		store := &stubStore{results: []Result{{Success: true, Data: Record{"Id": 5, "label_c": "Lamp", "parts_c": "1,2"}}}}
		g, err := newGadgetTable(store, nil).Create(ctx, payload, "Lamp")
		require.NoError(t, err)
		require.NotNil(t, g)
		assert.Equal(t, gadget{ID: 5, Label: "Lamp", Parts: core.IDList{1, 2}}, *g)
		assert.Equal(t, "Lamp", store.written[0][NameColumn])
		assert.Equal(t, "1,2", store.written[0]["parts_c"])
	})

	t.Run("per-record failure is logged and yields nil", func(t *testing.T) {
		logger := new(recordingLogger)
		store := &stubStore{results: []Result{{Success: false, Message: "invalid email"}}}
		g, err := newGadgetTable(store, logger).Create(ctx, payload, "Lamp")
		assert.NoError(t, err)
		assert.Nil(t, g)
		assert.Len(t, logger.warnings, 1)
	})

	t.Run("call failure is an error", func(t *testing.T) {
		store := &stubStore{err: &ServiceError{Message: "unavailable"}}
		_, err := newGadgetTable(store, nil).Create(ctx, payload, "Lamp")
		assert.Error(t, err)
	})
}

func TestTable_Update(t *testing.T) {
	store := &stubStore{results: []Result{{Success: true, Data: Record{"Id": 3, "label_c": "Desk"}}}}
	g, err := newGadgetTable(store, nil).Update(context.Background(), 3, gadgetPayload{Label: "Desk"}, "Desk")
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, 3, store.written[0][IDColumn])
	assert.Equal(t, "Desk", g.Label)
}

func TestTable_Delete(t *testing.T) {
	ctx := context.Background()

	store := &stubStore{results: []Result{{Success: true}}}
	ok, err := newGadgetTable(store, nil).Delete(ctx, 4)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []int{4}, store.deleteIDs)

	store = &stubStore{results: []Result{{Success: false, Message: "record not found"}}}
	ok, err = newGadgetTable(store, new(recordingLogger)).Delete(ctx, 999)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTable_logFailures(t *testing.T) {
	logger := new(recordingLogger)
	store := &stubStore{results: []Result{
		{Success: false, Message: "invalid email"},
		{Success: true, Data: Record{"Id": 7, "label_c": "Lamp"}},
		{Success: false, Message: "duplicate name"},
	}}
	g, err := newGadgetTable(store, logger).Create(context.Background(), gadgetPayload{Label: "Lamp"}, "Lamp")
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, 7, g.ID)

	require.Len(t, logger.warnings, 1)
	assert.Equal(t, "failed to create 2 gadget_c record(s): invalid email; duplicate name", logger.warnings[0])
}
