package client

import (
	"net/http"

	"github.com/graphchain/graphchain-go/pkg/graphchain"
	"github.com/graphchain/graphchain-go/pkg/graphchain/interceptors"
	"github.com/graphchain/graphchain-go/pkg/graphchain/store"
)

// DefaultInterceptorProvider builds the standard chain named in spec.md
// 4.4: cache read, network fetch, response-code check, JSON/multipart
// parsing, automatic persisted queries, cache write, all guarded by a
// max-retry ceiling.
type DefaultInterceptorProvider struct {
	Store       *store.Store
	HTTPClient  *http.Client
	MaxRetries  int
	KeyResolver store.CacheKeyResolver
}

// Interceptors implements InterceptorProvider.
func (p *DefaultInterceptorProvider) Interceptors(operation graphchain.GraphQLOperation) []graphchain.Interceptor {
	max := p.MaxRetries
	if max <= 0 {
		max = 3
	}
	resolver := p.KeyResolver
	if resolver == nil {
		resolver = store.DefaultCacheKeyResolver
	}

	return []graphchain.Interceptor{
		&interceptors.MaxRetry{Max: max},
		&interceptors.CacheRead{Store: p.Store},
		&interceptors.NetworkFetch{HTTPClient: p.HTTPClient},
		&interceptors.ResponseCodeInterceptor{},
		&interceptors.MultipartResponseParsing{},
		&interceptors.JSONResponseParsing{},
		&interceptors.AutomaticPersistedQuery{},
		&interceptors.CacheWrite{Store: p.Store, Resolver: resolver},
	}
}

// AdditionalErrorInterceptor implements InterceptorProvider. The default
// provider attaches none; callers layer their own via a decorator (see
// WithAdditionalErrorInterceptor).
func (p *DefaultInterceptorProvider) AdditionalErrorInterceptor() graphchain.ErrorInterceptor {
	return nil
}

// decoratedProvider wraps a base InterceptorProvider and appends extra
// interceptors / overrides the error interceptor, the composable
// alternative to subclassing a concrete provider type (spec.md 9's design
// note on the interceptor-provider trait).
type decoratedProvider struct {
	base  InterceptorProvider
	extra []graphchain.Interceptor
	err   graphchain.ErrorInterceptor
}

// Decorate returns an InterceptorProvider that yields base's interceptors
// followed by extra, and overrides the additional error interceptor when
// err is non-nil.
func Decorate(base InterceptorProvider, err graphchain.ErrorInterceptor, extra ...graphchain.Interceptor) InterceptorProvider {
	return &decoratedProvider{base: base, extra: extra, err: err}
}

func (d *decoratedProvider) Interceptors(operation graphchain.GraphQLOperation) []graphchain.Interceptor {
	base := d.base.Interceptors(operation)
	return append(append([]graphchain.Interceptor(nil), base...), d.extra...)
}

func (d *decoratedProvider) AdditionalErrorInterceptor() graphchain.ErrorInterceptor {
	if d.err != nil {
		return d.err
	}
	return d.base.AdditionalErrorInterceptor()
}
