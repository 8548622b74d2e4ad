package interceptors

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"strings"
	"sync"

	"github.com/graphchain/graphchain-go/pkg/graphchain"
)

// AutomaticPersistedQuery detects a PersistedQueryNotFound server error and
// retries the operation with the full document attached, per spec.md 4.4.
// The initial hash-only attempt is the responsibility of whatever builds
// the HTTPRequest's BodyProducer (see HashOnlyBody) — this interceptor only
// owns the detect-and-retry half of the protocol.
type AutomaticPersistedQuery struct {
	mu   sync.Mutex
	seen map[*graphchain.HTTPRequest]bool
}

// Intercept implements graphchain.Interceptor.
func (a *AutomaticPersistedQuery) Intercept(chain *graphchain.RequestChain, request *graphchain.HTTPRequest, response *graphchain.HTTPResponse) {
	if response == nil || response.Parsed == nil {
		chain.HandleErrorAsync(graphchain.WrapError("AutomaticPersistedQuery.Intercept", graphchain.ErrNoParsedResponse, ""), request, response)
		return
	}

	if !a.hasRetried(request) && persistedQueryNotFound(response.Parsed.Errors) {
		a.markRetried(request)
		request.BodyProducer = FullDocumentBody(request.Operation)
		chain.Retry(request, nil)
		return
	}

	chain.Proceed(request, response, a)
}

func (a *AutomaticPersistedQuery) hasRetried(request *graphchain.HTTPRequest) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.seen != nil && a.seen[request]
}

func (a *AutomaticPersistedQuery) markRetried(request *graphchain.HTTPRequest) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.seen == nil {
		a.seen = make(map[*graphchain.HTTPRequest]bool)
	}
	a.seen[request] = true
}

func persistedQueryNotFound(errs graphchain.GraphQLErrors) bool {
	for _, e := range errs {
		if strings.Contains(e.Message, "PersistedQueryNotFound") {
			return true
		}
	}
	return false
}

// PersistedQueryHash returns the sha256 hex digest of an operation's
// document, the identifier the server matches a persisted query by.
func PersistedQueryHash(document string) string {
	sum := sha256.Sum256([]byte(document))
	return hex.EncodeToString(sum[:])
}

type apqExtensions struct {
	PersistedQuery struct {
		Version    int    `json:"version"`
		Sha256Hash string `json:"sha256Hash"`
	} `json:"persistedQuery"`
}

type operationBody struct {
	OperationName string                 `json:"operationName,omitempty"`
	Query         string                 `json:"query,omitempty"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
	Extensions    apqExtensions          `json:"extensions"`
}

// HashOnlyBody builds a BodyProducer that sends only the operation's
// persisted-query hash (attempt #1 of the APQ protocol).
func HashOnlyBody(op graphchain.GraphQLOperation) func() (io.Reader, error) {
	return func() (io.Reader, error) {
		body := operationBody{
			OperationName: op.OperationName(),
			Variables:     op.Variables(),
		}
		body.Extensions.PersistedQuery.Version = 1
		body.Extensions.PersistedQuery.Sha256Hash = PersistedQueryHash(op.OperationDocument())
		return encodeBody(body)
	}
}

// FullDocumentBody builds a BodyProducer that sends the full document
// alongside the hash (attempt #2, after a PersistedQueryNotFound reply).
func FullDocumentBody(op graphchain.GraphQLOperation) func() (io.Reader, error) {
	return func() (io.Reader, error) {
		body := operationBody{
			OperationName: op.OperationName(),
			Query:         op.OperationDocument(),
			Variables:     op.Variables(),
		}
		body.Extensions.PersistedQuery.Version = 1
		body.Extensions.PersistedQuery.Sha256Hash = PersistedQueryHash(op.OperationDocument())
		return encodeBody(body)
	}
}

// PlainDocumentBody builds a BodyProducer that sends the full document
// without any persisted-query extension, for operations that do not use
// APQ at all.
func PlainDocumentBody(op graphchain.GraphQLOperation) func() (io.Reader, error) {
	return func() (io.Reader, error) {
		body := struct {
			OperationName string                 `json:"operationName,omitempty"`
			Query         string                 `json:"query"`
			Variables     map[string]interface{} `json:"variables,omitempty"`
		}{
			OperationName: op.OperationName(),
			Query:         op.OperationDocument(),
			Variables:     op.Variables(),
		}
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(data), nil
	}
}

func encodeBody(v interface{}) (io.Reader, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}
