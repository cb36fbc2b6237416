package postgrest

import (
	"fmt"
	"strings"
)

// zeroRowsDetails is the Details substring PostgREST reports when a
// single-object request (Accept: application/vnd.pgrst.object+json)
// matched no rows. MaybeSingle recovers from exactly this error.
const zeroRowsDetails = "Results contain 0 rows"

// APIError is the error payload returned by PostgREST, carried verbatim.
// All fields are free-form strings sourced from the upstream error JSON;
// for local failures (unparseable body, missing response) they are
// synthesized and the underlying cause is available via Unwrap.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Hint    string `json:"hint"`
	Details string `json:"details"`

	cause error
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("postgrest: %s (code %s)", e.Message, e.Code)
	}
	return "postgrest: " + e.Message
}

// Unwrap returns the underlying cause for locally synthesized errors,
// such as the JSON decode failure behind a parse error. It is nil for
// errors received from the upstream API.
func (e *APIError) Unwrap() error { return e.cause }

// IsEmptyResult reports whether the error is the zero-rows condition
// raised under single-object mode.
func (e *APIError) IsEmptyResult() bool {
	return e != nil && strings.Contains(e.Details, zeroRowsDetails)
}
