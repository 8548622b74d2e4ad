// Package interceptors implements the standard request-chain interceptors
// named in spec.md 4.4: cache read/write, network fetch, JSON and
// multipart response parsing, automatic persisted queries, response-code
// checking, and max-retry enforcement.
package interceptors

import (
	"fmt"

	"github.com/graphchain/graphchain-go/pkg/graphchain"
	"github.com/graphchain/graphchain-go/pkg/graphchain/store"
)

// CacheRead executes the operation's root selection set against the store
// for cache-consulting policies, short-circuiting on a complete hit and
// forwarding on a miss (or always forwarding for policies that do not
// consult the cache at all).
type CacheRead struct {
	Store *store.Store
}

// Intercept implements graphchain.Interceptor.
func (c *CacheRead) Intercept(chain *graphchain.RequestChain, request *graphchain.HTTPRequest, response *graphchain.HTTPResponse) {
	policy := request.CachePolicy
	if !policy.ConsultsCache() {
		chain.Proceed(request, response, c)
		return
	}

	op := request.Operation
	selectionSetID := fmt.Sprintf("%s:%s", op.OperationName(), op.OperationDocument())
	data, dependent, err := c.Store.Execute(store.RootCacheKey, selectionSetID, op.RootSelectionSet())

	if err != nil {
		if policy == graphchain.ReturnCacheDataDontFetch {
			path := ""
			if miss, ok := err.(*store.CacheMissError); ok {
				path = miss.Path
			}
			chain.HandleErrorAsync(graphchain.WrapError("CacheRead.Intercept", &graphchain.CacheMissError{Path: path}, ""), request, response)
			return
		}
		// Miss on a policy that tolerates falling through: forward to the
		// network.
		chain.Proceed(request, response, c)
		return
	}

	result := &graphchain.GraphQLResult{
		Data:          &data,
		Source:        graphchain.SourceCache,
		DependentKeys: dependentKeysAsStrings(dependent),
	}

	if policy == graphchain.ReturnCacheDataAndFetch {
		// Both deliveries must fire: the cache hit below, and a fresh
		// network copy from the forward after it. Mark the chain pending
		// first so Complete doesn't collapse the interceptor list before
		// the forward gets a chance to run.
		chain.MarkPendingForward()
		chain.Complete(result)
		chain.Proceed(request, response, c)
		return
	}

	chain.Complete(result)
}

func dependentKeysAsStrings(keys store.ChangedKeys) map[string]struct{} {
	out := make(map[string]struct{}, len(keys))
	for k := range keys {
		out[string(k)] = struct{}{}
	}
	return out
}
