package postgrest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/edgeflare/pgrest/pkg/httputil"
)

// APIResponse is the parsed result of a plural query. Data always holds
// a sequence of rows, never a bare object. Count is set only when the
// request carried a count preference and the server reported a total.
type APIResponse struct {
	Data  []map[string]any
	Count *int64
}

// SingleAPIResponse is the parsed result of a single-object query.
// Data is nil when MaybeSingle recovered a zero-row result.
type SingleAPIResponse struct {
	Data  map[string]any
	Count *int64
}

// newAPIResponse parses a 2xx response body as a JSON array of rows.
// An empty body (return=minimal) yields an empty Data. Any other shape
// is a parse error surfaced as an *APIError carrying the raw body.
func newAPIResponse(resp *httputil.Response) (*APIResponse, error) {
	count := countFromContentRange(resp.Headers)
	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return &APIResponse{Count: count}, nil
	}

	var rows []map[string]any
	if err := json.Unmarshal(resp.Body, &rows); err != nil {
		return nil, parseError(resp, err)
	}
	return &APIResponse{Data: rows, Count: count}, nil
}

// newSingleAPIResponse parses a 2xx response body as exactly one row
// object. A JSON array, even of length one, violates the single-object
// contract and is treated as a parse error.
func newSingleAPIResponse(resp *httputil.Response) (*SingleAPIResponse, error) {
	count := countFromContentRange(resp.Headers)
	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return &SingleAPIResponse{Count: count}, nil
	}

	var row map[string]any
	if err := json.Unmarshal(resp.Body, &row); err != nil {
		return nil, parseError(resp, err)
	}
	return &SingleAPIResponse{Data: row, Count: count}, nil
}

// parseError wraps a body-shape mismatch on an otherwise successful
// status as an *APIError, keeping the raw body for diagnostics.
func parseError(resp *httputil.Response, err error) *APIError {
	return &APIError{
		Message: "failed to parse response body",
		Code:    strconv.Itoa(resp.StatusCode),
		Details: string(resp.Body),
		cause:   err,
	}
}

// countFromContentRange extracts the total row count from a
// Content-Range header of the form "0-24/573". The server reports "*"
// when no count preference was requested, which yields nil.
func countFromContentRange(h http.Header) *int64 {
	contentRange := h.Get("Content-Range")
	if contentRange == "" {
		return nil
	}
	_, total, found := strings.Cut(contentRange, "/")
	if !found || total == "*" {
		return nil
	}
	n, err := strconv.ParseInt(total, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}
