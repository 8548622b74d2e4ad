package graphchain

import "context"

// Transport is the external interface named in spec.md 6: the thing a
// QueryWatcher (and ordinary callers) drives an operation through. A
// *RequestChain-backed Client implements it by building the standard
// interceptor chain for the operation's kind and calling Kickoff.
type Transport interface {
	// Send drives operation through a request chain, invoking completion
	// as the chain terminates (possibly more than once for
	// multipart/deferred operations). Returns the Cancellable handle.
	Send(ctx context.Context, operation GraphQLOperation, cachePolicy CachePolicy, completion CompletionFunc) Cancellable

	// Upload drives an UploadOperation's files alongside its variables.
	Upload(ctx context.Context, operation UploadOperation, completion CompletionFunc) Cancellable
}
