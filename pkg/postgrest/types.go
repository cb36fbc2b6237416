package postgrest

// CountMethod selects how the server computes the total row count
// reported in the Content-Range header.
type CountMethod string

const (
	CountExact     CountMethod = "exact"
	CountPlanned   CountMethod = "planned"
	CountEstimated CountMethod = "estimated"
)

// IsValid reports whether m is a supported count method.
func (m CountMethod) IsValid() bool {
	switch m {
	case CountExact, CountPlanned, CountEstimated:
		return true
	}
	return false
}

// ReturnMethod controls whether mutations return the affected rows
// in the response body.
type ReturnMethod string

const (
	ReturnMinimal        ReturnMethod = "minimal"
	ReturnRepresentation ReturnMethod = "representation"
)

// OrderOpts configures an Order clause. The zero value orders
// ascending with nulls last, matching the PostgreSQL default.
type OrderOpts struct {
	Descending   bool
	NullsFirst   bool
	ForeignTable string
}

// TextSearchType selects the to_tsquery variant used by TextSearch.
type TextSearchType string

const (
	TextSearchPlain     TextSearchType = "plfts"
	TextSearchPhrase    TextSearchType = "phfts"
	TextSearchWebsearch TextSearchType = "wfts"
)

// TextSearchOpts configures a full-text search filter.
type TextSearchOpts struct {
	// Config names the text search configuration, e.g. "english".
	Config string
	Type   TextSearchType
}

type queryOptions struct {
	count            CountMethod
	returning        ReturnMethod
	upsert           bool
	ignoreDuplicates bool
	onConflict       string
	missingDefault   bool
}

// QueryOption customizes a single select/insert/upsert/update/delete
// operation at construction time.
type QueryOption func(*queryOptions)

// WithCount requests a row count from the server, surfaced in the
// response Count field.
func WithCount(m CountMethod) QueryOption {
	return func(o *queryOptions) { o.count = m }
}

// WithReturning overrides the default return=representation preference.
func WithReturning(m ReturnMethod) QueryOption {
	return func(o *queryOptions) { o.returning = m }
}

// WithUpsert turns an Insert into an upsert (ON CONFLICT DO UPDATE).
func WithUpsert() QueryOption {
	return func(o *queryOptions) { o.upsert = true }
}

// WithIgnoreDuplicates makes an Upsert skip conflicting rows instead of
// merging them.
func WithIgnoreDuplicates() QueryOption {
	return func(o *queryOptions) { o.ignoreDuplicates = true }
}

// WithOnConflict names the column (or comma-separated columns) used for
// upsert conflict detection.
func WithOnConflict(columns string) QueryOption {
	return func(o *queryOptions) { o.onConflict = columns }
}

// WithDefaultForMissing applies column defaults for fields omitted from
// bulk insert payloads (Prefer: missing=default).
func WithDefaultForMissing() QueryOption {
	return func(o *queryOptions) { o.missingDefault = true }
}
