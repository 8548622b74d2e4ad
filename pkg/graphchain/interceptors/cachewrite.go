package interceptors

import (
	"github.com/graphchain/graphchain-go/pkg/graphchain"
	"github.com/graphchain/graphchain-go/pkg/graphchain/store"
)

// CacheWrite normalizes a successful server-sourced response into records
// and publishes them to the store, threading the request's
// ContextIdentifier through so a QueryWatcher that initiated the write can
// recognize and ignore its own notification.
type CacheWrite struct {
	Store    *store.Store
	Resolver store.CacheKeyResolver
}

// Intercept implements graphchain.Interceptor.
func (c *CacheWrite) Intercept(chain *graphchain.RequestChain, request *graphchain.HTTPRequest, response *graphchain.HTTPResponse) {
	if !request.CachePolicy.WritesCache() {
		chain.Proceed(request, response, c)
		return
	}

	if response != nil && response.Parsed != nil && response.Parsed.Source == graphchain.SourceServer {
		if dd, ok := response.Parsed.Data.(*store.DataDict); ok && dd != nil {
			records := store.Normalize(store.RootCacheKey, request.Operation.RootSelectionSet(), dd.Raw(), c.Resolver)
			var ctxID *string
			if request.ContextIdentifier != nil {
				s := request.ContextIdentifier.String()
				ctxID = &s
			}
			c.Store.Publish(records, ctxID)
		}
	}

	chain.Proceed(request, response, c)
}
