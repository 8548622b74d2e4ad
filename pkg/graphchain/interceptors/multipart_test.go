package interceptors

import (
	"net/http"
	"testing"

	"github.com/graphchain/graphchain-go/pkg/graphchain"
)

func subscriptionRequest() *graphchain.HTTPRequest {
	return &graphchain.HTTPRequest{
		Operation: &graphchain.BasicOperation{
			Kind:      graphchain.OperationSubscription,
			Name:      "OnHeroChanged",
			Document:  "subscription OnHeroChanged { name }",
			Multipart: true,
		},
	}
}

func multipartHeader() http.Header {
	h := make(http.Header)
	h.Set("Content-Type", `multipart/mixed; boundary="gc"; subscriptionSpec="1.0"`)
	return h
}

func TestMultipartBoundaryDetection(t *testing.T) {
	if _, ok := multipartBoundary("application/json"); ok {
		t.Error("plain JSON content type should not be treated as multipart")
	}
	boundary, ok := multipartBoundary(`multipart/mixed; boundary="gc"; subscriptionSpec="1.0"`)
	if !ok || boundary != "gc" {
		t.Errorf("multipartBoundary() = (%q, %v), want (gc, true)", boundary, ok)
	}
}

func TestSplitMultipartBodyProducesOneSegmentPerChunk(t *testing.T) {
	raw := "--gc\r\n" +
		"Content-Type: application/json\r\n\r\n" +
		`{"payload":{"data":{"name":"Luke"}}}` + "\r\n" +
		"--gc\r\n" +
		"Content-Type: application/json\r\n\r\n" +
		`{"payload":{"data":{"name":"Leia"}}}` + "\r\n" +
		"--gc--\r\n"

	parts, final := splitMultipartBody([]byte(raw), "gc")
	if len(parts) != 2 {
		t.Fatalf("len(parts) = %d, want 2", len(parts))
	}
	if !final {
		t.Error("expected the terminating boundary to mark the stream final")
	}
}

func TestMultipartResponseParsingDeliversOneResultPerChunk(t *testing.T) {
	raw := "--gc\r\n" +
		"Content-Type: application/json\r\n\r\n" +
		`{"payload":{"data":{"name":"Luke"}}}` + "\r\n" +
		"--gc\r\n" +
		"Content-Type: application/json\r\n\r\n" +
		`{"payload":{"data":{"name":"Leia"}}}` + "\r\n" +
		"--gc--\r\n"

	response := &graphchain.HTTPResponse{
		StatusCode: 200,
		Header:     multipartHeader(),
		RawBody:    []byte(raw),
	}

	var delivered []*graphchain.GraphQLResult
	chain := graphchain.NewRequestChain([]graphchain.Interceptor{
		&seedResponse{response: response},
		&MultipartResponseParsing{},
		graphchain.InterceptorFunc(func(c *graphchain.RequestChain, req *graphchain.HTTPRequest, resp *graphchain.HTTPResponse) {
			c.Complete(resp.Parsed)
		}),
	}, nil)

	chain.Kickoff(nil, subscriptionRequest(), func(result *graphchain.GraphQLResult, err error) {
		if err != nil {
			t.Fatalf("unexpected delivery error: %v", err)
		}
		delivered = append(delivered, result)
	})

	if len(delivered) != 2 {
		t.Fatalf("delivered %d results, want 2", len(delivered))
	}
	if delivered[0].StreamEnded {
		t.Error("first chunk should not be marked StreamEnded")
	}
	if !delivered[1].StreamEnded {
		t.Error("last chunk should be marked StreamEnded")
	}
}

func TestMultipartResponseParsingForwardsNonMultipartResponsesUnchanged(t *testing.T) {
	response := &graphchain.HTTPResponse{
		StatusCode: 200,
		Header:     make(http.Header),
		RawBody:    []byte(`{"data":{"name":"Luke"}}`),
	}

	var proceeded bool
	chain := graphchain.NewRequestChain([]graphchain.Interceptor{
		&seedResponse{response: response},
		&MultipartResponseParsing{},
		graphchain.InterceptorFunc(func(c *graphchain.RequestChain, req *graphchain.HTTPRequest, resp *graphchain.HTTPResponse) {
			proceeded = true
			c.Complete(&graphchain.GraphQLResult{})
		}),
	}, nil)

	chain.Kickoff(nil, &graphchain.HTTPRequest{Operation: &graphchain.BasicOperation{}}, func(*graphchain.GraphQLResult, error) {})

	if !proceeded {
		t.Error("a non-multipart response should forward unchanged")
	}
}
