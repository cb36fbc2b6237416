package postgrest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/edgeflare/pgrest/pkg/httputil"
	"github.com/mitchellh/mapstructure"
)

// QueryExecutor holds one fully-built descriptor and sends it exactly
// once per Execute call. It performs no retries, caching or logging;
// those concerns live in the transport.
type QueryExecutor struct {
	transport httputil.Transport
	desc      *Descriptor
}

// Execute sends the request and classifies the response: a status in
// [200, 299] parses into an APIResponse, anything else raises the
// upstream error payload as an *APIError.
func (e *QueryExecutor) Execute(ctx context.Context) (*APIResponse, error) {
	resp, err := e.send(ctx)
	if err != nil {
		return nil, err
	}
	return newAPIResponse(resp)
}

// ExecuteTo executes the query and decodes the returned rows into dest,
// which must be a pointer to a slice of structs. Field mapping honors
// json tags. The reported count, if any, is returned alongside.
func (e *QueryExecutor) ExecuteTo(ctx context.Context, dest any) (*int64, error) {
	res, err := e.Execute(ctx)
	if err != nil {
		return nil, err
	}
	if err := decodeRows(res.Data, dest); err != nil {
		return res.Count, fmt.Errorf("failed to decode rows: %w", err)
	}
	return res.Count, nil
}

// send performs the single network call and maps non-2xx statuses to
// *APIError. The returned response always has a 2xx status.
func (e *QueryExecutor) send(ctx context.Context) (*httputil.Response, error) {
	resp, err := e.transport.Do(ctx, e.desc.Method, e.desc.Path, e.desc.Body, e.desc.Params, e.desc.Headers)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, upstreamError(resp)
	}
	return resp, nil
}

// upstreamError parses a non-2xx body as the PostgREST error shape
// {message, code, hint, details}, carried verbatim. An unparseable body
// still raises an *APIError, with the raw body as details and the
// decode failure as cause.
func upstreamError(resp *httputil.Response) *APIError {
	var apiErr APIError
	if err := json.Unmarshal(resp.Body, &apiErr); err != nil {
		return &APIError{
			Message: "unexpected error response",
			Code:    strconv.Itoa(resp.StatusCode),
			Details: string(resp.Body),
			cause:   err,
		}
	}
	return &apiErr
}

// SingleExecutor expects the response to be a single row object. The
// descriptor it holds carries Accept: application/vnd.pgrst.object+json.
type SingleExecutor struct {
	transport httputil.Transport
	desc      *Descriptor
}

// Execute sends the request and parses the body as exactly one row.
func (e *SingleExecutor) Execute(ctx context.Context) (*SingleAPIResponse, error) {
	q := QueryExecutor{transport: e.transport, desc: e.desc}
	resp, err := q.send(ctx)
	if err != nil {
		return nil, err
	}
	return newSingleAPIResponse(resp)
}

// ExecuteTo executes the query and decodes the single row into dest,
// a pointer to a struct.
func (e *SingleExecutor) ExecuteTo(ctx context.Context, dest any) error {
	res, err := e.Execute(ctx)
	if err != nil {
		return err
	}
	if err := decodeRows(res.Data, dest); err != nil {
		return fmt.Errorf("failed to decode row: %w", err)
	}
	return nil
}

// MaybeSingleExecutor tolerates zero rows: the upstream zero-rows error
// becomes a successful response with nil Data and a zero Count. Every
// other error propagates unchanged.
type MaybeSingleExecutor struct {
	SingleExecutor
}

func (e *MaybeSingleExecutor) Execute(ctx context.Context) (*SingleAPIResponse, error) {
	res, err := e.SingleExecutor.Execute(ctx)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.IsEmptyResult() {
			count := int64(0)
			return &SingleAPIResponse{Count: &count}, nil
		}
		return nil, err
	}
	if res == nil {
		// Unreachable as long as SingleExecutor.Execute returns either
		// a response or an error. Kept as a safety net.
		return nil, &APIError{
			Message: "Missing response",
			Code:    "204",
			Hint:    "execution produced neither a response nor an error",
			Details: "the transport returned no usable response",
		}
	}
	return res, nil
}

// decodeRows maps parsed rows onto caller-owned structs using json tags.
func decodeRows(input, dest any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  dest,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}
