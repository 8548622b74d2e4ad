package interceptors

import (
	"errors"
	"testing"

	"github.com/graphchain/graphchain-go/pkg/graphchain"
)

func TestResponseCodeInterceptorPassesThrough2xx(t *testing.T) {
	var proceeded bool
	chain := graphchain.NewRequestChain([]graphchain.Interceptor{
		&seedResponse{response: &graphchain.HTTPResponse{StatusCode: 200}},
		&ResponseCodeInterceptor{},
		graphchain.InterceptorFunc(func(c *graphchain.RequestChain, req *graphchain.HTTPRequest, resp *graphchain.HTTPResponse) {
			proceeded = true
			c.Complete(&graphchain.GraphQLResult{})
		}),
	}, nil)

	chain.Kickoff(nil, &graphchain.HTTPRequest{Operation: &graphchain.BasicOperation{}}, func(*graphchain.GraphQLResult, error) {})

	if !proceeded {
		t.Error("200 response should proceed")
	}
}

func TestResponseCodeInterceptorFailsNon2xx(t *testing.T) {
	chain := graphchain.NewRequestChain([]graphchain.Interceptor{
		&seedResponse{response: &graphchain.HTTPResponse{StatusCode: 500, RawBody: []byte("boom")}},
		&ResponseCodeInterceptor{},
	}, nil)

	var gotErr error
	chain.Kickoff(nil, &graphchain.HTTPRequest{Operation: &graphchain.BasicOperation{}}, func(result *graphchain.GraphQLResult, err error) {
		gotErr = err
	})

	var invalid *graphchain.InvalidResponseCodeError
	if !errors.As(gotErr, &invalid) {
		t.Fatalf("gotErr = %v, want *InvalidResponseCodeError", gotErr)
	}
	if invalid.Status != 500 {
		t.Errorf("invalid.Status = %d, want 500", invalid.Status)
	}
}
