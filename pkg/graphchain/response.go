package graphchain

import "net/http"

// HTTPResponse carries the raw and (once parsed) decoded view of a network
// round trip as it threads through the interceptor chain.
type HTTPResponse struct {
	StatusCode int
	Header     http.Header
	RawBody    []byte

	// Parsed is attached by JSONResponseParsing/MultipartResponseParsing;
	// nil until one of them runs.
	Parsed *GraphQLResult

	// Legacy exposes the underlying *http.Response for interceptors that
	// need it directly (e.g. to inspect a non-standard header), mirroring
	// spec.md's "legacyResponse?" field.
	Legacy *http.Response
}

// ResultSource distinguishes a cache hit from a network response.
type ResultSource int

const (
	// SourceCache indicates the result was served entirely from the
	// normalized store.
	SourceCache ResultSource = iota
	// SourceServer indicates the result came from a network round trip.
	SourceServer
)

// GraphQLResult is the terminal value delivered to a caller's completion.
type GraphQLResult struct {
	Data          interface{} // *store.DataDict, or nil
	Errors        GraphQLErrors
	Extensions    map[string]interface{}
	Source        ResultSource
	DependentKeys map[string]struct{}

	// StreamEnded marks the final delivery of a multipart/deferred
	// operation's terminal-style call sequence (spec.md 7).
	StreamEnded bool
}

// HasErrors reports whether the result carries any GraphQL-level errors.
func (r *GraphQLResult) HasErrors() bool {
	return r != nil && len(r.Errors) > 0
}
