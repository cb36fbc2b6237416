// Package postgrest provides a fluent query-builder client for PostgREST
// compatible APIs.
//
// A Client is created once per API endpoint and hands out request builders
// per table or view. Chained methods translate into a single HTTP request;
// Execute sends it and maps the response to typed results.
//
// Query building mirrors the PostgREST URL grammar:
//
//	Method              | Request produced
//	--------------------|------------------------------------------------
//	Select("id","name") | GET ?select=id,name
//	Eq("id", "1")       | ?id=eq.1
//	In("st", "a", "b")  | ?st=in.(a,b)
//	Order("id", nil)    | ?order=id.asc.nullslast
//	Single()            | Accept: application/vnd.pgrst.object+json
//
// Mutations carry preferences in the Prefer header (RFC 7240):
//
//	Prefer: return=minimal|representation
//	Prefer: count=exact|planned|estimated
//	Prefer: resolution=merge-duplicates|ignore-duplicates
//
// Example usage:
//
//	client := postgrest.New("http://localhost:3000")
//	res, err := client.From("articles").
//		Select("id", "title").
//		Eq("status", "published").
//		Order("id", nil).
//		Execute(ctx)
//
// API is compatible with PostgREST. For more details, see:
// https://docs.postgrest.org/en/stable/references/api/tables_views.html
package postgrest
