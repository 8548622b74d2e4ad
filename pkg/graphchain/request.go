package graphchain

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

// HTTPRequest is the typed operation request threaded through the
// interceptor chain. Interceptors may freely mutate it between Proceed
// calls (e.g. AutomaticPersistedQuery swaps BodyProducer; CacheRead/CacheWrite
// read Operation/CachePolicy).
type HTTPRequest struct {
	EndpointURL   *url.URL
	Headers       http.Header
	BodyProducer  func() (io.Reader, error)
	Operation     GraphQLOperation
	ClientName    string
	ClientVersion string
	CachePolicy   CachePolicy

	// ContextIdentifier, when set, is threaded through to Store.Publish so
	// a QueryWatcher that itself triggered the write can recognize and
	// ignore its own notification (spec.md 4.5).
	ContextIdentifier *uuid.UUID
}

// NewHTTPRequest builds a request for operation against endpoint, with
// standard defaults (empty header set, FetchIgnoringCacheData policy).
func NewHTTPRequest(endpoint *url.URL, operation GraphQLOperation) *HTTPRequest {
	return &HTTPRequest{
		EndpointURL: endpoint,
		Headers:     make(http.Header),
		Operation:   operation,
		CachePolicy: FetchIgnoringCacheData,
	}
}

// AddHeader sets a caller-supplied header. Per spec.md's Accept-header
// contract, any header a caller sets here is honored UNLESS it is Accept,
// which NetworkFetch always overwrites.
func (r *HTTPRequest) AddHeader(key, value string) {
	r.Headers.Set(key, value)
}

// contextIdentifierKey is unexported so only this package can stash a
// ContextIdentifier in a context.Context, letting a Transport implementation
// (e.g. client.Client.Send) recover the identifier a QueryWatcher attached
// to its own refetch without widening the Transport interface.
type contextIdentifierKey struct{}

// WithContextIdentifier attaches id to ctx. A Transport.Send implementation
// that honors this convention copies it onto the HTTPRequest it builds, so
// Store.Publish (via CacheWrite) threads it to subscribers (spec.md 4.5).
func WithContextIdentifier(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, contextIdentifierKey{}, id)
}

// ContextIdentifierFromContext recovers the identifier attached by
// WithContextIdentifier, if any.
func ContextIdentifierFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(contextIdentifierKey{}).(uuid.UUID)
	return id, ok
}
