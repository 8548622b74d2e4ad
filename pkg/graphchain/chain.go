package graphchain

import (
	"context"
	"sync"
)

type chainState int

const (
	stateNotStarted chainState = iota
	stateInProgress
	stateCompleted
	stateCancelled
)

// RequestChain is the ordered execution of interceptors for one operation
// (spec.md 4.3). It is created per operation, retained by the caller via
// the Cancellable it returns from Kickoff, and releases its interceptors
// and completion once a delivery is truly final (or Cancel is called) so
// the object graph collapses per spec.md's memory discipline. A successful
// delivery is final unless the chain is multipart or the delivery was marked
// pending-forward (MarkPendingForward); an error delivery is marked terminal but keeps
// its interceptors reachable, since an external caller may still call
// Retry (see deliver's doc comment).
type RequestChain struct {
	mu  sync.Mutex
	ctx context.Context

	interceptors []Interceptor
	additional   ErrorInterceptor

	state      chainState
	cursor     int // next interceptor index to invoke
	entryIndex int // index of the interceptor currently "in" Intercept

	completion CompletionFunc
	multipart  bool

	// pendingForward is set by an interceptor (CacheRead, for
	// ReturnCacheDataAndFetch) immediately before a non-terminal Complete
	// call, telling deliver a second, terminal delivery is still coming so
	// it must not collapse the interceptor list yet.
	pendingForward bool

	retryCount    int
	maxRetryLimit *int

	lastResponse *HTTPResponse
}

// MaxRetryProvider is implemented by an interceptor that enforces a retry
// ceiling (spec.md's MaxRetry interceptor), letting NewRequestChain
// discover the threshold for Retry's "exceeds max-retry interceptor's
// threshold" check without a separate registration step.
type MaxRetryProvider interface {
	MaxRetries() int
}

// NewRequestChain builds a chain over interceptors, in declaration order.
// An empty list is allowed by the constructor; Kickoff is where
// ErrNoInterceptors actually surfaces, matching spec.md scenario 1.
func NewRequestChain(interceptors []Interceptor, additionalErrorInterceptor ErrorInterceptor) *RequestChain {
	c := &RequestChain{
		interceptors: append([]Interceptor(nil), interceptors...),
		additional:   additionalErrorInterceptor,
	}
	for _, i := range interceptors {
		if p, ok := i.(MaxRetryProvider); ok {
			max := p.MaxRetries()
			c.maxRetryLimit = &max
			break
		}
	}
	return c
}

// Kickoff starts the chain: request flows into interceptor[0]. completion
// is invoked exactly once for non-multipart operations, and once per
// delivered chunk (plus a final terminating call) for multipart/deferred
// operations. Returns the Cancellable handle the caller should retain.
func (c *RequestChain) Kickoff(ctx context.Context, request *HTTPRequest, completion CompletionFunc) Cancellable {
	if ctx == nil {
		ctx = context.Background()
	}

	c.mu.Lock()
	if c.state != stateNotStarted {
		c.mu.Unlock()
		return c
	}
	c.ctx = contextWithChain(ctx, c)
	c.completion = completion
	c.multipart = operationAcceptsMultipart(request.Operation)

	if len(c.interceptors) == 0 {
		c.state = stateCompleted
		comp := c.completion
		c.completion = nil
		c.mu.Unlock()
		if comp != nil {
			comp(nil, WrapError("RequestChain.Kickoff", ErrNoInterceptors, ""))
		}
		return c
	}

	c.state = stateInProgress
	c.cursor = 0
	c.mu.Unlock()

	c.invoke(request, nil)
	return c
}

func operationAcceptsMultipart(op GraphQLOperation) bool {
	if op == nil {
		return false
	}
	if sub, ok := op.(SubscriptionOperation); ok {
		return sub.AcceptsMultipart()
	}
	return false
}

// Context returns the context supplied to Kickoff.
func (c *RequestChain) Context() context.Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// invoke calls the interceptor at the current cursor, or delivers the
// terminal result if the cursor has run past the end of the list. Must be
// called without c.mu held.
func (c *RequestChain) invoke(request *HTTPRequest, response *HTTPResponse) {
	c.mu.Lock()
	if c.state == stateCancelled {
		c.mu.Unlock()
		return
	}
	if response != nil {
		c.lastResponse = response
	}
	idx := c.cursor
	if idx >= len(c.interceptors) {
		c.mu.Unlock()
		c.deliverFromResponse(response)
		return
	}
	c.entryIndex = idx
	next := c.interceptors[idx]
	c.mu.Unlock()

	next.Intercept(c, request, response)
}

func (c *RequestChain) deliverFromResponse(response *HTTPResponse) {
	if response == nil {
		response = c.currentLastResponse()
	}
	if response == nil || response.Parsed == nil {
		c.deliver(nil, WrapError("RequestChain.Proceed", ErrNoParsedResponse, ""))
		return
	}
	c.deliver(response.Parsed, nil)
}

func (c *RequestChain) currentLastResponse() *HTTPResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastResponse
}

// Proceed advances the chain past from's position (or, if from is nil, past
// the position recorded when the currently-executing interceptor was
// entered — the "legacy" proceed-without-self path) and invokes the next
// interceptor, or delivers the terminal result if none remain.
func (c *RequestChain) Proceed(request *HTTPRequest, response *HTTPResponse, from Interceptor) {
	c.mu.Lock()
	if c.state == stateCancelled {
		c.mu.Unlock()
		return
	}
	base := c.entryIndex
	if from != nil {
		if idx := c.indexOfLocked(from); idx >= 0 {
			base = idx
		}
	}
	c.cursor = base + 1
	c.mu.Unlock()

	c.invoke(request, response)
}

func (c *RequestChain) indexOfLocked(target Interceptor) int {
	for i, in := range c.interceptors {
		if in == target {
			return i
		}
	}
	return -1
}

// Retry resets the cursor to 0 and restarts the chain, incrementing the
// retry counter; if a MaxRetry interceptor is present and the counter
// exceeds its threshold, the chain fails with ErrTooManyRetries instead of
// restarting. Retry is also the re-entry point for spec.md 8 scenario 9: a
// chain that already delivered a terminal error (e.g. CacheRead's
// CacheMissError) keeps its interceptors reachable rather than collapsing
// them, specifically so a caller who later observes the missing record
// being published can call Retry to re-run the chain and get a real
// delivery instead of a permanently stuck error.
func (c *RequestChain) Retry(request *HTTPRequest, completion CompletionFunc) {
	c.mu.Lock()
	if c.state == stateCancelled {
		c.mu.Unlock()
		return
	}
	if completion != nil {
		c.completion = completion
	}
	c.retryCount++
	if c.maxRetryLimit != nil && c.retryCount > *c.maxRetryLimit {
		max := *c.maxRetryLimit
		c.mu.Unlock()
		c.HandleErrorAsync(WrapError("RequestChain.Retry", &TooManyRetriesError{Max: max}, ""), request, nil)
		return
	}
	c.cursor = 0
	c.state = stateInProgress
	c.mu.Unlock()

	c.invoke(request, nil)
}

// MarkPendingForward tells the chain that the delivery about to happen is
// not the final one: a second, terminal completion (a network forward
// under ReturnCacheDataAndFetch) is still expected, so deliver must keep
// the interceptor list and completion alive instead of collapsing them.
func (c *RequestChain) MarkPendingForward() {
	c.mu.Lock()
	c.pendingForward = true
	c.mu.Unlock()
}

// HandleErrorAsync routes a failure to the additional error interceptor, if
// one is attached, otherwise delivers it directly to the caller's
// completion.
func (c *RequestChain) HandleErrorAsync(err error, request *HTTPRequest, response *HTTPResponse) {
	c.mu.Lock()
	if c.state == stateCancelled {
		c.mu.Unlock()
		return
	}
	additional := c.additional
	c.mu.Unlock()

	if additional != nil {
		additional.HandleError(c, request, response, err)
		return
	}
	c.deliver(nil, err)
}

// Complete short-circuits the chain with a successful (or chunk) result
// without forwarding further.
func (c *RequestChain) Complete(result *GraphQLResult) {
	c.deliver(result, nil)
}

// deliver performs delivery. Non-multipart chains deliver at most once and
// collapse their object graph on that delivery (spec.md's memory
// discipline) — except two cases that must stay re-enterable:
//
//   - pendingForward: the cache-hit leg of a ReturnCacheDataAndFetch
//     delivery. A second, terminal delivery (the network forward) is still
//     to come, so the interceptor list and completion must survive this
//     call.
//   - err != nil: a terminal error delivery (e.g. CacheRead's
//     CacheMissError) may still be retried externally via Retry once
//     whatever it was missing becomes available, so its interceptor list
//     is kept reachable instead of collapsed, even though the chain is
//     marked stateCompleted until Retry restarts it.
//
// multipart/deferred chains may deliver once per chunk, the final call
// carrying the stream end, per spec.md 7's propagation rule, and never
// collapse their object graph since more chunks can always follow.
func (c *RequestChain) deliver(result *GraphQLResult, err error) {
	c.mu.Lock()
	if c.state == stateCancelled {
		c.mu.Unlock()
		return
	}
	if c.state == stateCompleted && !c.multipart {
		c.mu.Unlock()
		return
	}
	comp := c.completion

	switch {
	case c.pendingForward:
		c.pendingForward = false
	case err != nil:
		c.state = stateCompleted
	default:
		c.state = stateCompleted
		if !c.multipart {
			c.completion = nil
			c.interceptors = nil
			c.additional = nil
		}
	}
	c.mu.Unlock()

	if comp != nil {
		comp(result, err)
	}
}

// Cancel marks the chain cancelled, delivers OnCancel to every cancellable
// interceptor in reverse declaration order, and suppresses all subsequent
// completion calls. Safe to call from within an interceptor: the
// cancellation fan-out happens without holding c.mu.
func (c *RequestChain) Cancel() {
	c.mu.Lock()
	if c.state == stateCancelled || c.state == stateCompleted {
		c.mu.Unlock()
		return
	}
	c.state = stateCancelled
	interceptors := append([]Interceptor(nil), c.interceptors...)
	c.completion = nil
	c.mu.Unlock()

	for i := len(interceptors) - 1; i >= 0; i-- {
		if ci, ok := interceptors[i].(CancellableInterceptor); ok {
			ci.OnCancel()
		}
	}

	// Release strong references so the chain is reachable only via the
	// caller's Cancellable handle from here on.
	c.mu.Lock()
	c.interceptors = nil
	c.additional = nil
	c.mu.Unlock()
}

// IsCancelled reports whether Cancel has been called.
func (c *RequestChain) IsCancelled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == stateCancelled
}
