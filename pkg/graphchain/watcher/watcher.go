// Package watcher implements spec.md 4.5's QueryWatcher: a bridge from an
// operation result to a store subscription, re-fetching the operation when
// any of its dependent keys change.
package watcher

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/graphchain/graphchain-go/pkg/graphchain"
	"github.com/graphchain/graphchain-go/pkg/graphchain/store"
)

// ResultHandler receives each delivery from a QueryWatcher, the initial
// fetch and every subsequent re-fetch triggered by a relevant store change.
type ResultHandler func(result *graphchain.GraphQLResult, err error)

// QueryWatcher wraps one operation and a result handler, subscribing to a
// Store and resubmitting the operation whenever a changed key intersects
// the operation's last-observed dependent keys.
type QueryWatcher struct {
	store     *store.Store
	transport graphchain.Transport
	operation graphchain.GraphQLOperation
	handler   ResultHandler

	// refetchCachePolicy is the cache policy used for re-fetches triggered
	// by a store change; defaults to ReturnCacheDataElseFetch per spec.md
	// 4.5 ("configurable").
	refetchCachePolicy graphchain.CachePolicy

	mu                sync.Mutex
	token             store.SubscriptionToken
	subscribed        bool
	lastDependentKeys store.ChangedKeys
	lastContextID     *string
	inFlight          graphchain.Cancellable
	cancelled         bool
}

// Option configures a QueryWatcher at construction time.
type Option func(*QueryWatcher)

// WithRefetchCachePolicy overrides the cache policy used for change-driven
// re-fetches (default ReturnCacheDataElseFetch).
func WithRefetchCachePolicy(policy graphchain.CachePolicy) Option {
	return func(w *QueryWatcher) { w.refetchCachePolicy = policy }
}

// New constructs a QueryWatcher over operation, driven through transport,
// delivering results to handler.
func New(s *store.Store, transport graphchain.Transport, operation graphchain.GraphQLOperation, handler ResultHandler, opts ...Option) *QueryWatcher {
	w := &QueryWatcher{
		store:              s,
		transport:          transport,
		operation:          operation,
		handler:            handler,
		refetchCachePolicy: graphchain.ReturnCacheDataElseFetch,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start subscribes to the store and performs the initial fetch using
// initialCachePolicy.
func (w *QueryWatcher) Start(ctx context.Context, initialCachePolicy graphchain.CachePolicy) {
	w.mu.Lock()
	if w.subscribed {
		w.mu.Unlock()
		return
	}
	w.token = w.store.Subscribe(w)
	w.subscribed = true
	w.mu.Unlock()

	w.fetch(ctx, initialCachePolicy)
}

func (w *QueryWatcher) fetch(ctx context.Context, policy graphchain.CachePolicy) {
	id := uuid.New()
	idStr := id.String()
	w.mu.Lock()
	w.lastContextID = &idStr
	w.mu.Unlock()
	ctx = graphchain.WithContextIdentifier(ctx, id)

	cancellable := w.transport.Send(ctx, w.operation, policy, func(result *graphchain.GraphQLResult, err error) {
		w.mu.Lock()
		if w.cancelled {
			w.mu.Unlock()
			return
		}
		if result != nil {
			w.lastDependentKeys = dependentKeysFromResult(result)
		}
		handler := w.handler
		w.mu.Unlock()

		if handler != nil {
			handler(result, err)
		}
	})

	w.mu.Lock()
	w.inFlight = cancellable
	w.mu.Unlock()
}

// StoreDidChange implements store.Subscriber. It ignores notifications the
// watcher itself caused (matched by ContextIdentifier) and, on a relevant
// change, resubmits the operation with refetchCachePolicy.
func (w *QueryWatcher) StoreDidChange(s *store.Store, changedKeys store.ChangedKeys, contextIdentifier *string) {
	w.mu.Lock()
	if w.cancelled {
		w.mu.Unlock()
		return
	}
	if contextIdentifier != nil && w.lastContextID != nil && *contextIdentifier == *w.lastContextID {
		w.mu.Unlock()
		return
	}
	relevant := w.lastDependentKeys != nil && w.lastDependentKeys.Intersects(changedKeys)
	policy := w.refetchCachePolicy
	w.mu.Unlock()

	if !relevant {
		return
	}
	w.fetch(context.Background(), policy)
}

// Cancel detaches the store subscription, cancels any in-flight chain, and
// releases the handler so the watcher's object graph collapses.
func (w *QueryWatcher) Cancel() {
	w.mu.Lock()
	if w.cancelled {
		w.mu.Unlock()
		return
	}
	w.cancelled = true
	if w.subscribed {
		w.store.Unsubscribe(w.token)
		w.subscribed = false
	}
	inFlight := w.inFlight
	w.inFlight = nil
	w.handler = nil
	w.mu.Unlock()

	if inFlight != nil {
		inFlight.Cancel()
	}
}

func dependentKeysFromResult(result *graphchain.GraphQLResult) store.ChangedKeys {
	if result == nil || result.DependentKeys == nil {
		return nil
	}
	out := make(store.ChangedKeys, len(result.DependentKeys))
	for k := range result.DependentKeys {
		out[store.CacheKey(k)] = struct{}{}
	}
	return out
}
