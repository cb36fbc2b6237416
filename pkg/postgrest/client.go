package postgrest

import (
	"net/http"
	"net/url"

	"github.com/edgeflare/pgrest/pkg/httputil"
)

// Client talks to one PostgREST endpoint. It is safe for concurrent use
// as long as each goroutine builds its own queries via From or Rpc;
// the header-modifying helpers (Auth, Schema, SetHeader) are meant for
// setup time, before queries are issued.
type Client struct {
	transport httputil.Transport
	headers   http.Header
}

// New creates a Client for the endpoint at baseURL. Transport options
// (timeout, retry, logging, metrics) are passed through to the default
// HTTP transport.
func New(baseURL string, opts ...httputil.Option) (*Client, error) {
	transport, err := httputil.NewClient(baseURL, opts...)
	if err != nil {
		return nil, err
	}
	return NewWithTransport(transport), nil
}

// NewWithTransport creates a Client over a caller-supplied transport.
func NewWithTransport(t httputil.Transport) *Client {
	return &Client{
		transport: t,
		headers:   http.Header{"Accept": []string{"application/json"}},
	}
}

// Auth sets a bearer token sent with every request. Returns the client
// for chaining.
func (c *Client) Auth(token string) *Client {
	c.headers.Set("Authorization", "Bearer "+token)
	return c
}

// Schema switches requests to a database schema other than the server
// default. Reads use Accept-Profile, mutations Content-Profile.
func (c *Client) Schema(name string) *Client {
	c.headers.Set("Accept-Profile", name)
	c.headers.Set("Content-Profile", name)
	return c
}

// SetHeader sets a default header sent with every request.
func (c *Client) SetHeader(key, value string) *Client {
	c.headers.Set(key, value)
	return c
}

// From starts a query against a table or view.
func (c *Client) From(table string) *RequestBuilder {
	return &RequestBuilder{
		transport: c.transport,
		path:      table,
		headers:   c.headers,
	}
}

// Rpc calls a stored procedure with the given arguments. The result
// set can be filtered like a table read.
func (c *Client) Rpc(fn string, args any) *FilterBuilder {
	desc := &Descriptor{
		Method:  http.MethodPost,
		Path:    "rpc/" + fn,
		Params:  url.Values{},
		Headers: c.headers.Clone(),
		Body:    args,
	}
	return &FilterBuilder{QueryExecutor{transport: c.transport, desc: desc}}
}
