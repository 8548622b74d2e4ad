package graphchain

import "testing"

func TestGraphQLResultHasErrors(t *testing.T) {
	var nilResult *GraphQLResult
	if nilResult.HasErrors() {
		t.Error("nil result should not report errors")
	}

	empty := &GraphQLResult{}
	if empty.HasErrors() {
		t.Error("result with no Errors should not report errors")
	}

	withErrors := &GraphQLResult{Errors: GraphQLErrors{{Message: "boom"}}}
	if !withErrors.HasErrors() {
		t.Error("result with Errors should report errors")
	}
}

// TestGraphQLErrorsWithDataIsStillSuccessful documents spec.md 7's rule:
// a response carrying both data and errors is delivered as a *successful*
// GraphQLResult (HasErrors is just informational); only an additional error
// interceptor can elevate it into a completion failure.
func TestGraphQLErrorsWithDataIsStillSuccessful(t *testing.T) {
	result := &GraphQLResult{
		Data:   "partial",
		Errors: GraphQLErrors{{Message: "field failed"}},
		Source: SourceServer,
	}

	chain := NewRequestChain([]Interceptor{
		InterceptorFunc(func(chain *RequestChain, request *HTTPRequest, response *HTTPResponse) {
			chain.Complete(result)
		}),
	}, nil)

	var gotResult *GraphQLResult
	var gotErr error
	chain.Kickoff(nil, &HTTPRequest{Operation: &BasicOperation{}}, func(r *GraphQLResult, err error) {
		gotResult = r
		gotErr = err
	})

	if gotErr != nil {
		t.Fatalf("completion error = %v, want nil (errors-with-data is still a success)", gotErr)
	}
	if !gotResult.HasErrors() {
		t.Error("expected the delivered result to still carry its GraphQL errors")
	}
}
