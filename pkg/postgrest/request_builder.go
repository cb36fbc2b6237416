package postgrest

import (
	"net/http"

	"github.com/edgeflare/pgrest/pkg/httputil"
)

// RequestBuilder is the entry point for queries against one table or
// view. Each operation builds a fresh descriptor; builders from the
// same RequestBuilder never share state.
type RequestBuilder struct {
	transport httputil.Transport
	path      string
	headers   http.Header
}

// Select runs a SELECT over the given columns; none selects all.
func (b *RequestBuilder) Select(columns ...string) *SelectBuilder {
	desc := preSelect(b.path, b.cloneHeaders(), columns, queryOptions{})
	return &SelectBuilder{FilterBuilder{QueryExecutor{transport: b.transport, desc: desc}}}
}

// Insert inserts row (a struct, map, or slice of either for bulk
// insert). Inserted rows are addressed by content, so no filter
// capability is offered; the result is a plain executor.
func (b *RequestBuilder) Insert(row any, opts ...QueryOption) *QueryExecutor {
	desc := preInsert(b.path, b.cloneHeaders(), row, newQueryOptions(opts))
	return &QueryExecutor{transport: b.transport, desc: desc}
}

// Upsert inserts row, updating any conflicting existing row. Use
// WithIgnoreDuplicates to skip conflicts instead, and WithOnConflict to
// name the conflict target columns.
func (b *RequestBuilder) Upsert(row any, opts ...QueryOption) *QueryExecutor {
	desc := preUpsert(b.path, b.cloneHeaders(), row, newQueryOptions(opts))
	return &QueryExecutor{transport: b.transport, desc: desc}
}

// Update patches the rows matched by subsequent filter predicates with
// the fields set in row.
func (b *RequestBuilder) Update(row any, opts ...QueryOption) *FilterBuilder {
	desc := preUpdate(b.path, b.cloneHeaders(), row, newQueryOptions(opts))
	return &FilterBuilder{QueryExecutor{transport: b.transport, desc: desc}}
}

// Delete removes the rows matched by subsequent filter predicates.
func (b *RequestBuilder) Delete(opts ...QueryOption) *FilterBuilder {
	desc := preDelete(b.path, b.cloneHeaders(), newQueryOptions(opts))
	return &FilterBuilder{QueryExecutor{transport: b.transport, desc: desc}}
}

// cloneHeaders copies the client default headers so per-operation
// Prefer/Accept mutations never leak back into the client.
func (b *RequestBuilder) cloneHeaders() http.Header {
	h := b.headers.Clone()
	if h == nil {
		h = http.Header{}
	}
	return h
}
