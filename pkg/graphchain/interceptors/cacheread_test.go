package interceptors

import (
	"errors"
	"testing"

	"github.com/graphchain/graphchain-go/pkg/graphchain"
	"github.com/graphchain/graphchain-go/pkg/graphchain/store"
)

func heroOperation() *graphchain.BasicOperation {
	return &graphchain.BasicOperation{
		Kind:     graphchain.OperationQuery,
		Name:     "Hero",
		Document: "query Hero { name }",
		Selections: []store.Selection{
			{ResponseKey: "name", FieldName: "name"},
		},
	}
}

func TestCacheReadHitShortCircuitsOnCompleteCache(t *testing.T) {
	s := store.New()
	s.Publish(store.RecordSet{store.RootCacheKey: {"name": "Luke"}}, nil)

	var delivered *graphchain.GraphQLResult
	var proceeded bool
	chain := graphchain.NewRequestChain([]graphchain.Interceptor{
		&CacheRead{Store: s},
		graphchain.InterceptorFunc(func(c *graphchain.RequestChain, req *graphchain.HTTPRequest, resp *graphchain.HTTPResponse) {
			proceeded = true
			c.Complete(&graphchain.GraphQLResult{Source: graphchain.SourceServer})
		}),
	}, nil)

	chain.Kickoff(nil, &graphchain.HTTPRequest{
		Operation:   heroOperation(),
		CachePolicy: graphchain.ReturnCacheDataElseFetch,
	}, func(result *graphchain.GraphQLResult, err error) {
		delivered = result
	})

	if proceeded {
		t.Error("a complete cache hit should short-circuit without reaching the network stage")
	}
	if delivered == nil || delivered.Source != graphchain.SourceCache {
		t.Fatalf("delivered = %#v, want a SourceCache result", delivered)
	}
}

func TestCacheReadMissForwardsOnElseFetch(t *testing.T) {
	s := store.New() // empty: every selection misses
	var proceeded bool
	chain := graphchain.NewRequestChain([]graphchain.Interceptor{
		&CacheRead{Store: s},
		graphchain.InterceptorFunc(func(c *graphchain.RequestChain, req *graphchain.HTTPRequest, resp *graphchain.HTTPResponse) {
			proceeded = true
			c.Complete(&graphchain.GraphQLResult{Source: graphchain.SourceServer})
		}),
	}, nil)

	chain.Kickoff(nil, &graphchain.HTTPRequest{
		Operation:   heroOperation(),
		CachePolicy: graphchain.ReturnCacheDataElseFetch,
	}, func(*graphchain.GraphQLResult, error) {})

	if !proceeded {
		t.Error("a cache miss under ReturnCacheDataElseFetch should forward to the network")
	}
}

func TestCacheReadMissFailsOnDontFetch(t *testing.T) {
	s := store.New()
	var gotErr error
	chain := graphchain.NewRequestChain([]graphchain.Interceptor{
		&CacheRead{Store: s},
	}, nil)

	chain.Kickoff(nil, &graphchain.HTTPRequest{
		Operation:   heroOperation(),
		CachePolicy: graphchain.ReturnCacheDataDontFetch,
	}, func(result *graphchain.GraphQLResult, err error) {
		gotErr = err
	})

	var missErr *graphchain.CacheMissError
	if gotErr == nil {
		t.Fatal("expected an error for ReturnCacheDataDontFetch against an empty store")
	}
	if !errors.As(gotErr, &missErr) {
		t.Fatalf("gotErr = %v, want *graphchain.CacheMissError", gotErr)
	}
}

func TestCacheReadAndFetchDeliversBoth(t *testing.T) {
	s := store.New()
	s.Publish(store.RecordSet{store.RootCacheKey: {"name": "Luke"}}, nil)

	var deliveries []graphchain.ResultSource
	chain := graphchain.NewRequestChain([]graphchain.Interceptor{
		&CacheRead{Store: s},
		graphchain.InterceptorFunc(func(c *graphchain.RequestChain, req *graphchain.HTTPRequest, resp *graphchain.HTTPResponse) {
			c.Complete(&graphchain.GraphQLResult{Source: graphchain.SourceServer})
		}),
	}, nil)

	chain.Kickoff(nil, &graphchain.HTTPRequest{
		Operation:   heroOperation(),
		CachePolicy: graphchain.ReturnCacheDataAndFetch,
	}, func(result *graphchain.GraphQLResult, err error) {
		deliveries = append(deliveries, result.Source)
	})

	if len(deliveries) != 2 {
		t.Fatalf("deliveries = %v, want two (cache then network)", deliveries)
	}
	if deliveries[0] != graphchain.SourceCache || deliveries[1] != graphchain.SourceServer {
		t.Errorf("deliveries = %v, want [cache, server]", deliveries)
	}
}

func TestCacheReadBypassedWhenPolicyDoesNotConsultCache(t *testing.T) {
	s := store.New()
	var proceeded bool
	chain := graphchain.NewRequestChain([]graphchain.Interceptor{
		&CacheRead{Store: s},
		graphchain.InterceptorFunc(func(c *graphchain.RequestChain, req *graphchain.HTTPRequest, resp *graphchain.HTTPResponse) {
			proceeded = true
			c.Complete(&graphchain.GraphQLResult{Source: graphchain.SourceServer})
		}),
	}, nil)

	chain.Kickoff(nil, &graphchain.HTTPRequest{
		Operation:   heroOperation(),
		CachePolicy: graphchain.FetchIgnoringCacheData,
	}, func(*graphchain.GraphQLResult, error) {})

	if !proceeded {
		t.Error("FetchIgnoringCacheData should never consult the store")
	}
}
