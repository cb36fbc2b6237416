package postgrest

import (
	"fmt"
	"strings"
)

// FilterBuilder narrows a query with column predicates before
// execution. It embeds QueryExecutor, so a fully filtered query is
// executed with the same Execute/ExecuteTo as an unfiltered one.
type FilterBuilder struct {
	QueryExecutor
}

// add appends one predicate as a query parameter. A column may carry
// several predicates; they combine with AND on the server.
func (f *FilterBuilder) add(column, op, criteria string) *FilterBuilder {
	f.desc.Params.Add(column, op+"."+criteria)
	return f
}

// Eq keeps rows where column equals value.
func (f *FilterBuilder) Eq(column, value string) *FilterBuilder { return f.add(column, "eq", value) }

// Neq keeps rows where column does not equal value.
func (f *FilterBuilder) Neq(column, value string) *FilterBuilder { return f.add(column, "neq", value) }

// Gt keeps rows where column is greater than value.
func (f *FilterBuilder) Gt(column, value string) *FilterBuilder { return f.add(column, "gt", value) }

// Gte keeps rows where column is greater than or equal to value.
func (f *FilterBuilder) Gte(column, value string) *FilterBuilder { return f.add(column, "gte", value) }

// Lt keeps rows where column is less than value.
func (f *FilterBuilder) Lt(column, value string) *FilterBuilder { return f.add(column, "lt", value) }

// Lte keeps rows where column is less than or equal to value.
func (f *FilterBuilder) Lte(column, value string) *FilterBuilder { return f.add(column, "lte", value) }

// Like keeps rows where column matches the pattern, case sensitively.
// Use * as wildcard.
func (f *FilterBuilder) Like(column, pattern string) *FilterBuilder {
	return f.add(column, "like", pattern)
}

// ILike keeps rows where column matches the pattern, ignoring case.
func (f *FilterBuilder) ILike(column, pattern string) *FilterBuilder {
	return f.add(column, "ilike", pattern)
}

// Is compares column against null, true, false or unknown.
func (f *FilterBuilder) Is(column, value string) *FilterBuilder { return f.add(column, "is", value) }

// In keeps rows where column is one of values.
func (f *FilterBuilder) In(column string, values ...string) *FilterBuilder {
	sanitized := make([]string, len(values))
	for i, v := range values {
		sanitized[i] = sanitizeParam(v)
	}
	return f.add(column, "in", "("+strings.Join(sanitized, ",")+")")
}

// Contains keeps rows whose array or range column contains every value.
func (f *FilterBuilder) Contains(column string, values ...string) *FilterBuilder {
	return f.add(column, "cs", "{"+strings.Join(values, ",")+"}")
}

// ContainedBy keeps rows whose array or range column is contained by values.
func (f *FilterBuilder) ContainedBy(column string, values ...string) *FilterBuilder {
	return f.add(column, "cd", "{"+strings.Join(values, ",")+"}")
}

// Overlaps keeps rows whose array or range column shares any element
// with values.
func (f *FilterBuilder) Overlaps(column string, values ...string) *FilterBuilder {
	return f.add(column, "ov", "{"+strings.Join(values, ",")+"}")
}

// Match applies an equality predicate per key in query.
func (f *FilterBuilder) Match(query map[string]string) *FilterBuilder {
	for column, value := range query {
		f.add(column, "eq", value)
	}
	return f
}

// Filter applies an arbitrary PostgREST operator, e.g.
// Filter("id", "not.eq", "2").
func (f *FilterBuilder) Filter(column, operator, criteria string) *FilterBuilder {
	return f.add(column, operator, criteria)
}

// Not negates a predicate: Not("status", "eq", "done") keeps rows where
// status is not done.
func (f *FilterBuilder) Not(column, operator, criteria string) *FilterBuilder {
	return f.add(column, "not."+operator, criteria)
}

// Or combines predicates disjunctively. The filters string uses the
// PostgREST grammar without the outer parentheses, e.g.
// "id.eq.1,name.like.*mia*".
func (f *FilterBuilder) Or(filters string, foreignTable string) *FilterBuilder {
	key := "or"
	if foreignTable != "" {
		key = foreignTable + ".or"
	}
	f.desc.Params.Add(key, "("+filters+")")
	return f
}

// TextSearch keeps rows where the tsvector column matches query. A nil
// opts performs a plain to_tsquery match with the default configuration.
func (f *FilterBuilder) TextSearch(column, query string, opts *TextSearchOpts) *FilterBuilder {
	op := "fts"
	if opts != nil && opts.Type != "" {
		op = string(opts.Type)
	}
	if opts != nil && opts.Config != "" {
		op += "(" + opts.Config + ")"
	}
	return f.add(column, op, query)
}

// sanitizeParam quotes values carrying characters reserved by the
// PostgREST list grammar.
func sanitizeParam(value string) string {
	if strings.ContainsAny(value, ",.:()\"") {
		return fmt.Sprintf("%q", value)
	}
	return value
}
