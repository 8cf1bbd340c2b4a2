package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	. "github.com/trezcool/shule/apps/api/echo"
	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/records"
	"github.com/trezcool/shule/core/report"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/teacher"
	"github.com/trezcool/shule/tests"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type testApp struct {
	*Server
	conf  *core.Config
	svcs  *testutil.Services
	token string
}

// setup starts an app on a fresh in-memory store, or on store when given.
func setup(t *testing.T, store ...records.Store) testApp {
	t.Helper()
	conf := testutil.NewConfig()
	logger := testutil.NewLogger(conf)
	svcs := testutil.NewServices(logger)
	if len(store) > 0 {
		svcs.Students = student.NewService(store[0], logger)
		svcs.Teachers = teacher.NewService(store[0], logger)
		svcs.Classes = class.NewService(store[0], logger)
	}

	validate, translator := testutil.NewValidator()
	server := NewServer(conf, logger, &Deps{
		Validate:   validate,
		Translator: translator,
		Students:   svcs.Students,
		Teachers:   svcs.Teachers,
		Classes:    svcs.Classes,
		Reports:    report.NewService(svcs.Students, svcs.Teachers, svcs.Classes),
	})
	return testApp{Server: server, conf: conf, svcs: svcs, token: getToken(t, conf, "admin")}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, conf *core.Config, name string) string {
	token, err := GenerateToken(conf, NewClaims(conf, name, name))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	return false, nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

// run executes table tests against app, defaulting to GET with the app token.
func run(t *testing.T, app testApp, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			token := tt.token
			if token == "" {
				token = app.token
			}
			if tt.wantCode == 0 {
				tt.wantCode = http.StatusOK
			}
			req, rec := newAuthRequest(method, tt.path, token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

// rejectingStore accepts every call but refuses every write, record by record.
type rejectingStore struct {
	records.Store
}

func (rejectingStore) reject(n int) []records.Result {
	res := make([]records.Result, n)
	for i := range res {
		res[i].Message = "write refused"
	}
	return res
}

func (s rejectingStore) CreateRecords(_ context.Context, _ string, recs []records.Record) ([]records.Result, error) {
	return s.reject(len(recs)), nil
}

func (s rejectingStore) UpdateRecords(_ context.Context, _ string, recs []records.Record) ([]records.Result, error) {
	return s.reject(len(recs)), nil
}

func (s rejectingStore) DeleteRecords(_ context.Context, _ string, ids []int) ([]records.Result, error) {
	return s.reject(len(ids)), nil
}
