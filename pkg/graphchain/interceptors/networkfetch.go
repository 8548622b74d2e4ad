package interceptors

import (
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/graphchain/graphchain-go/pkg/graphchain"
	"github.com/klauspost/compress/gzip"
)

// Default multipart spec tokens (spec.md 4.4's Accept-header contract).
// Callers may override via NetworkFetch's SubscriptionSpec/DeferSpec.
const (
	DefaultSubscriptionSpec = "subscriptionSpec=1.0"
	DefaultDeferSpec        = "deferSpec=20220824"
)

// NetworkFetch issues the HTTP request through the standard library
// transport, the way pkg/mythic/client.go builds its *http.Client (optional
// InsecureSkipVerify), and attaches the raw response body for downstream
// parsing interceptors.
type NetworkFetch struct {
	HTTPClient        *http.Client
	SubscriptionSpec  string
	DeferSpec         string
}

// Intercept implements graphchain.Interceptor.
func (n *NetworkFetch) Intercept(chain *graphchain.RequestChain, request *graphchain.HTTPRequest, response *graphchain.HTTPResponse) {
	var body io.Reader
	if request.BodyProducer != nil {
		b, err := request.BodyProducer()
		if err != nil {
			chain.HandleErrorAsync(graphchain.WrapError("NetworkFetch.Intercept", err, "failed to build request body"), request, response)
			return
		}
		body = b
	}

	httpReq, err := http.NewRequestWithContext(chain.Context(), http.MethodPost, request.EndpointURL.String(), body)
	if err != nil {
		chain.HandleErrorAsync(graphchain.WrapError("NetworkFetch.Intercept", err, "failed to build http.Request"), request, response)
		return
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-Id", uuid.New().String())
	if request.ClientName != "" {
		httpReq.Header.Set("apollographql-client-name", request.ClientName)
	}
	if request.ClientVersion != "" {
		httpReq.Header.Set("apollographql-client-version", request.ClientVersion)
	}
	for key, values := range request.Headers {
		httpReq.Header.Del(key)
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	httpReq.Header.Set("Accept", n.acceptHeader(request))

	client := n.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		chain.HandleErrorAsync(graphchain.WrapError("NetworkFetch.Intercept", err, "request failed"), request, response)
		return
	}
	defer resp.Body.Close() //nolint:errcheck

	reader := resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, gzErr := gzip.NewReader(resp.Body)
		if gzErr != nil {
			chain.HandleErrorAsync(graphchain.WrapError("NetworkFetch.Intercept", gzErr, "failed to decompress response"), request, response)
			return
		}
		defer gz.Close()
		reader = gz
	}

	raw, err := io.ReadAll(reader)
	if err != nil {
		chain.HandleErrorAsync(graphchain.WrapError("NetworkFetch.Intercept", err, "failed to read response body"), request, response)
		return
	}

	out := &graphchain.HTTPResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		RawBody:    raw,
		Legacy:     resp,
	}
	chain.Proceed(request, out, n)
}

// acceptHeader builds the Accept header per spec.md 4.4's deterministic
// ordering, overriding any caller-supplied Accept (the only header callers
// may not override).
func (n *NetworkFetch) acceptHeader(request *graphchain.HTTPRequest) string {
	subSpec := n.SubscriptionSpec
	if subSpec == "" {
		subSpec = DefaultSubscriptionSpec
	}
	deferSpec := n.DeferSpec
	if deferSpec == "" {
		deferSpec = DefaultDeferSpec
	}

	if sub, ok := request.Operation.(graphchain.SubscriptionOperation); ok && sub.AcceptsMultipart() {
		return "multipart/mixed;" + subSpec + ",application/graphql-response+json,application/json"
	}
	return "multipart/mixed;" + deferSpec + ",application/graphql-response+json,application/json"
}
