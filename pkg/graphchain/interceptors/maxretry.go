package interceptors

import (
	"sync"

	"github.com/graphchain/graphchain-go/pkg/graphchain"
)

// MaxRetry caps the number of times a chain may restart via Retry,
// satisfying graphchain.MaxRetryProvider so RequestChain can discover the
// threshold without a separate registration call.
type MaxRetry struct {
	Max int

	mu     sync.Mutex
	counts map[*graphchain.HTTPRequest]int
}

// MaxRetries implements graphchain.MaxRetryProvider.
func (m *MaxRetry) MaxRetries() int {
	if m.Max <= 0 {
		return 1
	}
	return m.Max
}

// Intercept implements graphchain.Interceptor.
func (m *MaxRetry) Intercept(chain *graphchain.RequestChain, request *graphchain.HTTPRequest, response *graphchain.HTTPResponse) {
	m.mu.Lock()
	if m.counts == nil {
		m.counts = make(map[*graphchain.HTTPRequest]int)
	}
	m.counts[request]++
	count := m.counts[request]
	m.mu.Unlock()

	if count > m.MaxRetries() {
		chain.HandleErrorAsync(graphchain.WrapError("MaxRetry.Intercept", &graphchain.TooManyRetriesError{Max: m.MaxRetries()}, ""), request, response)
		return
	}
	chain.Proceed(request, response, m)
}
