package graphchain

import "context"

// Interceptor is a single stage in the request pipeline (spec.md 4.2). An
// implementation does exactly one of: forward (chain.Proceed), short-
// circuit success (chain.Complete with a result), fail
// (chain.HandleErrorAsync), or retry (chain.Retry).
type Interceptor interface {
	Intercept(chain *RequestChain, request *HTTPRequest, response *HTTPResponse)
}

// InterceptorFunc adapts a plain function to the Interceptor interface.
type InterceptorFunc func(chain *RequestChain, request *HTTPRequest, response *HTTPResponse)

// Intercept implements Interceptor.
func (f InterceptorFunc) Intercept(chain *RequestChain, request *HTTPRequest, response *HTTPResponse) {
	f(chain, request, response)
}

// CancellableInterceptor is the optional capability an Interceptor
// implements to observe chain cancellation (spec.md 4.2's "Cancel-aware"
// capability).
type CancellableInterceptor interface {
	Interceptor
	OnCancel()
}

// ErrorInterceptor is the chain's optional additional error-handling stage,
// given first refusal on every failure before terminal delivery (spec.md
// 4.3's handleErrorAsync).
type ErrorInterceptor interface {
	HandleError(chain *RequestChain, request *HTTPRequest, response *HTTPResponse, err error)
}

// ErrorInterceptorFunc adapts a plain function to ErrorInterceptor.
type ErrorInterceptorFunc func(chain *RequestChain, request *HTTPRequest, response *HTTPResponse, err error)

// HandleError implements ErrorInterceptor.
func (f ErrorInterceptorFunc) HandleError(chain *RequestChain, request *HTTPRequest, response *HTTPResponse, err error) {
	f(chain, request, response, err)
}

// CompletionFunc is the terminal delivery the caller supplies to Kickoff.
type CompletionFunc func(result *GraphQLResult, err error)

// Cancellable is the handle a caller retains to cancel an in-flight
// operation. *RequestChain implements it directly; callers should hold
// onto the Cancellable, not the chain's interceptors, per spec.md's memory
// discipline (4.3).
type Cancellable interface {
	Cancel()
}

// chainContextKey is unexported so only this package can stash a
// *RequestChain in a context.Context, letting interceptors that receive a
// context recover the chain that is driving them (useful for interceptors
// implemented as free functions rather than closures).
type chainContextKey struct{}

func contextWithChain(ctx context.Context, c *RequestChain) context.Context {
	return context.WithValue(ctx, chainContextKey{}, c)
}

// ChainFromContext recovers the *RequestChain stashed by Kickoff, if any.
func ChainFromContext(ctx context.Context) (*RequestChain, bool) {
	c, ok := ctx.Value(chainContextKey{}).(*RequestChain)
	return c, ok
}
