// Package recordapi is a records.Store backed by the hosted record service.
package recordapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sendgrid/rest"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/records"
)

// Auth headers
const (
	HeaderProjectID = "X-Project-Id"
	HeaderPublicKey = "X-Public-Key"
)

type (
	Client struct {
		baseURL   string
		projectID string
		publicKey string
		http      *rest.Client
	}

	fieldName struct {
		Name string `json:"Name"`
	}

	fieldParam struct {
		Field fieldName `json:"field"`
	}

	fetchParams struct {
		Fields []fieldParam `json:"fields"`
	}

	writeParams struct {
		Records []records.Record `json:"records"`
	}

	deleteParams struct {
		RecordIds []int `json:"RecordIds"`
	}

	// envelope is the response shape shared by every endpoint.
	envelope struct {
		Success bool             `json:"success"`
		Message string           `json:"message"`
		Data    json.RawMessage  `json:"data"`
		Results []records.Result `json:"results"`
	}
)

var _ records.Store = (*Client)(nil)

func New(conf core.RecordStoreConfig) *Client {
	return &Client{
		baseURL:   strings.TrimRight(conf.BaseURL, "/"),
		projectID: conf.ProjectID,
		publicKey: conf.PublicKey,
		http:      &rest.Client{HTTPClient: &http.Client{Timeout: conf.Timeout}},
	}
}

func newFetchParams(fields []string) fetchParams {
	params := fetchParams{Fields: make([]fieldParam, 0, len(fields))}
	for _, f := range fields {
		params.Fields = append(params.Fields, fieldParam{Field: fieldName{Name: f}})
	}
	return params
}

func (c *Client) tableURL(table string, parts ...string) string {
	return strings.Join(append([]string{c.baseURL, "tables", table, "records"}, parts...), "/")
}

func (c *Client) do(ctx context.Context, method rest.Method, url string, params interface{}) (*envelope, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, errors.Wrap(err, "encoding request")
	}
	req := rest.Request{
		Method:  method,
		BaseURL: url,
		Headers: map[string]string{
			"Accept":        "application/json",
			"Content-Type":  "application/json",
			HeaderProjectID: c.projectID,
			HeaderPublicKey: c.publicKey,
		},
		Body: body,
	}

	resp, err := c.http.SendWithContext(ctx, req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, url)
	}

	env := new(envelope)
	if resp.Body != "" {
		dec := json.NewDecoder(strings.NewReader(resp.Body))
		dec.UseNumber()
		if err := dec.Decode(env); err != nil && resp.StatusCode < 300 {
			return nil, errors.Wrap(err, "decoding response")
		}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, records.ErrNotFound
	case resp.StatusCode >= 300:
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, records.ServiceError{Status: resp.StatusCode, Message: msg}
	case !env.Success:
		return nil, records.ServiceError{Status: resp.StatusCode, Message: env.Message}
	}
	return env, nil
}

func decodeData(data json.RawMessage, dst interface{}) error {
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return errors.Wrap(dec.Decode(dst), "decoding data")
}

func (c *Client) FetchRecords(ctx context.Context, table string, fields []string) ([]records.Record, error) {
	env, err := c.do(ctx, rest.Post, c.tableURL(table, "fetch"), newFetchParams(fields))
	if err != nil {
		return nil, err
	}
	recs := make([]records.Record, 0)
	if err := decodeData(env.Data, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (c *Client) GetRecordByID(ctx context.Context, table string, id int, fields []string) (records.Record, error) {
	env, err := c.do(ctx, rest.Post, c.tableURL(table, strconv.Itoa(id)), newFetchParams(fields))
	if err != nil {
		return nil, err
	}
	var rec records.Record
	if err := decodeData(env.Data, &rec); err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, records.ErrNotFound
	}
	return rec, nil
}

// write sends a batch. A response without results yields none, which callers read as nothing written.
func (c *Client) write(ctx context.Context, method rest.Method, table string, recs []records.Record) ([]records.Result, error) {
	env, err := c.do(ctx, method, c.tableURL(table), writeParams{Records: recs})
	if err != nil {
		return nil, err
	}
	return env.Results, nil
}

func (c *Client) CreateRecords(ctx context.Context, table string, recs []records.Record) ([]records.Result, error) {
	return c.write(ctx, rest.Post, table, recs)
}

func (c *Client) UpdateRecords(ctx context.Context, table string, recs []records.Record) ([]records.Result, error) {
	return c.write(ctx, rest.Put, table, recs)
}

func (c *Client) DeleteRecords(ctx context.Context, table string, ids []int) ([]records.Result, error) {
	env, err := c.do(ctx, rest.Delete, c.tableURL(table), deleteParams{RecordIds: ids})
	if err != nil {
		return nil, err
	}
	// a delete without per-record results succeeded as a whole
	if env.Results == nil {
		res := make([]records.Result, len(ids))
		for i := range res {
			res[i].Success = true
		}
		return res, nil
	}
	return env.Results, nil
}
