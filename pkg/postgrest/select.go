package postgrest

import "strconv"

// SelectBuilder adds ordering, pagination and single-object transitions
// on top of FilterBuilder. It is returned only by Select.
type SelectBuilder struct {
	FilterBuilder
}

// Count asks the server to report the total row count alongside the
// data, computed with the given method.
func (s *SelectBuilder) Count(m CountMethod) *SelectBuilder {
	addPrefer(s.desc.Headers, "count="+string(m))
	return s
}

// Order sorts the result by column. A nil opts orders ascending with
// nulls last.
func (s *SelectBuilder) Order(column string, opts *OrderOpts) *SelectBuilder {
	if opts == nil {
		opts = &OrderOpts{}
	}
	key := "order"
	if opts.ForeignTable != "" {
		key = opts.ForeignTable + ".order"
	}

	value := column + ".asc"
	if opts.Descending {
		value = column + ".desc"
	}
	if opts.NullsFirst {
		value += ".nullsfirst"
	} else {
		value += ".nullslast"
	}

	s.desc.Params.Add(key, value)
	return s
}

// Limit caps the number of rows returned. foreignTable, if non-empty,
// scopes the limit to an embedded resource.
func (s *SelectBuilder) Limit(n int, foreignTable string) *SelectBuilder {
	key := "limit"
	if foreignTable != "" {
		key = foreignTable + ".limit"
	}
	s.desc.Params.Set(key, strconv.Itoa(n))
	return s
}

// Range returns rows from index from to index to inclusive, expressed
// as limit and offset parameters.
func (s *SelectBuilder) Range(from, to int, foreignTable string) *SelectBuilder {
	limitKey, offsetKey := "limit", "offset"
	if foreignTable != "" {
		limitKey = foreignTable + ".limit"
		offsetKey = foreignTable + ".offset"
	}
	s.desc.Params.Set(offsetKey, strconv.Itoa(from))
	s.desc.Params.Set(limitKey, strconv.Itoa(to-from+1))
	return s
}

// Predicate wrappers. Each delegates to the embedded FilterBuilder and
// returns the SelectBuilder, so a chain like
// Select().Eq("id", "1").Single() keeps ordering, pagination and the
// single-row transitions available after filtering.

// Eq keeps rows where column equals value.
func (s *SelectBuilder) Eq(column, value string) *SelectBuilder {
	s.FilterBuilder.Eq(column, value)
	return s
}

// Neq keeps rows where column does not equal value.
func (s *SelectBuilder) Neq(column, value string) *SelectBuilder {
	s.FilterBuilder.Neq(column, value)
	return s
}

// Gt keeps rows where column is greater than value.
func (s *SelectBuilder) Gt(column, value string) *SelectBuilder {
	s.FilterBuilder.Gt(column, value)
	return s
}

// Gte keeps rows where column is greater than or equal to value.
func (s *SelectBuilder) Gte(column, value string) *SelectBuilder {
	s.FilterBuilder.Gte(column, value)
	return s
}

// Lt keeps rows where column is less than value.
func (s *SelectBuilder) Lt(column, value string) *SelectBuilder {
	s.FilterBuilder.Lt(column, value)
	return s
}

// Lte keeps rows where column is less than or equal to value.
func (s *SelectBuilder) Lte(column, value string) *SelectBuilder {
	s.FilterBuilder.Lte(column, value)
	return s
}

// Like keeps rows where column matches the pattern, case sensitively.
func (s *SelectBuilder) Like(column, pattern string) *SelectBuilder {
	s.FilterBuilder.Like(column, pattern)
	return s
}

// ILike keeps rows where column matches the pattern, ignoring case.
func (s *SelectBuilder) ILike(column, pattern string) *SelectBuilder {
	s.FilterBuilder.ILike(column, pattern)
	return s
}

// Is compares column against null, true, false or unknown.
func (s *SelectBuilder) Is(column, value string) *SelectBuilder {
	s.FilterBuilder.Is(column, value)
	return s
}

// In keeps rows where column is one of values.
func (s *SelectBuilder) In(column string, values ...string) *SelectBuilder {
	s.FilterBuilder.In(column, values...)
	return s
}

// Contains keeps rows whose array or range column contains every value.
func (s *SelectBuilder) Contains(column string, values ...string) *SelectBuilder {
	s.FilterBuilder.Contains(column, values...)
	return s
}

// ContainedBy keeps rows whose array or range column is contained by values.
func (s *SelectBuilder) ContainedBy(column string, values ...string) *SelectBuilder {
	s.FilterBuilder.ContainedBy(column, values...)
	return s
}

// Overlaps keeps rows whose array or range column shares any element
// with values.
func (s *SelectBuilder) Overlaps(column string, values ...string) *SelectBuilder {
	s.FilterBuilder.Overlaps(column, values...)
	return s
}

// Match applies an equality predicate per key in query.
func (s *SelectBuilder) Match(query map[string]string) *SelectBuilder {
	s.FilterBuilder.Match(query)
	return s
}

// Filter applies an arbitrary PostgREST operator.
func (s *SelectBuilder) Filter(column, operator, criteria string) *SelectBuilder {
	s.FilterBuilder.Filter(column, operator, criteria)
	return s
}

// Not negates a predicate.
func (s *SelectBuilder) Not(column, operator, criteria string) *SelectBuilder {
	s.FilterBuilder.Not(column, operator, criteria)
	return s
}

// Or combines predicates disjunctively.
func (s *SelectBuilder) Or(filters string, foreignTable string) *SelectBuilder {
	s.FilterBuilder.Or(filters, foreignTable)
	return s
}

// TextSearch keeps rows where the tsvector column matches query.
func (s *SelectBuilder) TextSearch(column, query string, opts *TextSearchOpts) *SelectBuilder {
	s.FilterBuilder.TextSearch(column, query, opts)
	return s
}

// Single declares that the query returns exactly one row; the server
// errors otherwise. The Accept header on the shared descriptor is
// mutated in place, so any alias of this builder observes the change.
// The transition is one-shot: only Execute remains on the result.
func (s *SelectBuilder) Single() *SingleExecutor {
	s.desc.Headers.Set("Accept", singleObjectMIME)
	return &SingleExecutor{transport: s.transport, desc: s.desc}
}

// MaybeSingle is Single with zero rows tolerated: a no-match result
// yields nil Data instead of an error. Same in-place header mutation
// and one-shot transition as Single.
func (s *SelectBuilder) MaybeSingle() *MaybeSingleExecutor {
	s.desc.Headers.Set("Accept", singleObjectMIME)
	return &MaybeSingleExecutor{SingleExecutor{transport: s.transport, desc: s.desc}}
}
