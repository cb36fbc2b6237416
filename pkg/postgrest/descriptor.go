package postgrest

import (
	"net/http"
	"net/url"
	"strings"
)

// singleObjectMIME asks PostgREST for a bare JSON object instead of an
// array. The server errors unless the query matches exactly one row.
const singleObjectMIME = "application/vnd.pgrst.object+json"

// Descriptor is the complete description of one HTTP operation before
// execution: method, resource path, query parameters, headers and JSON
// body. It is built once by a pre* constructor and consumed by an
// executor. The Headers map is deliberately shared between a builder
// and the executors derived from it, so the Accept mutation performed
// by Single/MaybeSingle is visible through every alias.
type Descriptor struct {
	Method  string
	Path    string
	Params  url.Values
	Headers http.Header
	Body    any
}

// addPrefer appends a preference directive to the Prefer header,
// comma-separating it from any existing directives.
func addPrefer(h http.Header, directive string) {
	if existing := h.Get("Prefer"); existing != "" {
		h.Set("Prefer", existing+","+directive)
		return
	}
	h.Set("Prefer", directive)
}

// preSelect builds the descriptor for a SELECT. No columns means the
// server returns all columns. Pure: identical arguments always produce
// equal descriptors.
func preSelect(path string, headers http.Header, columns []string, opts queryOptions) *Descriptor {
	params := url.Values{}
	if len(columns) > 0 {
		cleaned := make([]string, len(columns))
		for i, c := range columns {
			cleaned[i] = strings.ReplaceAll(c, " ", "")
		}
		params.Set("select", strings.Join(cleaned, ","))
	}
	if opts.count != "" {
		addPrefer(headers, "count="+string(opts.count))
	}
	return &Descriptor{
		Method:  http.MethodGet,
		Path:    path,
		Params:  params,
		Headers: headers,
	}
}

// preInsert builds the descriptor for an INSERT, or an upsert when
// opts.upsert is set.
func preInsert(path string, headers http.Header, body any, opts queryOptions) *Descriptor {
	addPrefer(headers, "return="+string(opts.returning))
	if opts.count != "" {
		addPrefer(headers, "count="+string(opts.count))
	}
	if opts.upsert {
		addPrefer(headers, "resolution=merge-duplicates")
	}
	if opts.missingDefault {
		addPrefer(headers, "missing=default")
	}
	return &Descriptor{
		Method:  http.MethodPost,
		Path:    path,
		Params:  url.Values{},
		Headers: headers,
		Body:    body,
	}
}

// preUpsert builds the descriptor for an INSERT ... ON CONFLICT.
// Conflicting rows are merged unless opts.ignoreDuplicates is set.
func preUpsert(path string, headers http.Header, body any, opts queryOptions) *Descriptor {
	addPrefer(headers, "return="+string(opts.returning))
	if opts.count != "" {
		addPrefer(headers, "count="+string(opts.count))
	}
	resolution := "merge-duplicates"
	if opts.ignoreDuplicates {
		resolution = "ignore-duplicates"
	}
	addPrefer(headers, "resolution="+resolution)

	params := url.Values{}
	if opts.onConflict != "" {
		params.Set("on_conflict", opts.onConflict)
	}
	return &Descriptor{
		Method:  http.MethodPost,
		Path:    path,
		Params:  params,
		Headers: headers,
		Body:    body,
	}
}

// preUpdate builds the descriptor for an UPDATE. The caller scopes the
// affected rows with filter predicates before executing.
func preUpdate(path string, headers http.Header, body any, opts queryOptions) *Descriptor {
	addPrefer(headers, "return="+string(opts.returning))
	if opts.count != "" {
		addPrefer(headers, "count="+string(opts.count))
	}
	return &Descriptor{
		Method:  http.MethodPatch,
		Path:    path,
		Params:  url.Values{},
		Headers: headers,
		Body:    body,
	}
}

// preDelete builds the descriptor for a DELETE, scoped by subsequent
// filter predicates.
func preDelete(path string, headers http.Header, opts queryOptions) *Descriptor {
	addPrefer(headers, "return="+string(opts.returning))
	if opts.count != "" {
		addPrefer(headers, "count="+string(opts.count))
	}
	return &Descriptor{
		Method:  http.MethodDelete,
		Path:    path,
		Params:  url.Values{},
		Headers: headers,
	}
}

func newQueryOptions(opts []QueryOption) queryOptions {
	o := queryOptions{returning: ReturnRepresentation}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
