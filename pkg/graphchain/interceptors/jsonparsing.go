package interceptors

import (
	"encoding/json"

	"github.com/graphchain/graphchain-go/pkg/graphchain"
	"github.com/graphchain/graphchain-go/pkg/graphchain/store"
)

// graphQLEnvelope is the wire shape of a single GraphQL response payload.
type graphQLEnvelope struct {
	Data       map[string]interface{}      `json:"data"`
	Errors     []graphchain.GraphQLError   `json:"errors"`
	Extensions map[string]interface{}      `json:"extensions"`
}

// JSONResponseParsing decodes the response body as a GraphQL envelope and
// attaches a server-sourced GraphQLResult. Per spec.md 9's preserved-bug
// note, it does not validate Content-Type and will attempt to decode any
// body as JSON.
type JSONResponseParsing struct{}

// Intercept implements graphchain.Interceptor.
func (j *JSONResponseParsing) Intercept(chain *graphchain.RequestChain, request *graphchain.HTTPRequest, response *graphchain.HTTPResponse) {
	result, err := ParseGraphQLEnvelope(response.RawBody)
	if err != nil {
		chain.HandleErrorAsync(graphchain.WrapError("JSONResponseParsing.Intercept", err, "failed to decode GraphQL response"), request, response)
		return
	}
	response.Parsed = result
	chain.Proceed(request, response, j)
}

// ParseGraphQLEnvelope decodes raw bytes as a {data?, errors?, extensions?}
// GraphQL response envelope into a server-sourced GraphQLResult. Exported so
// MultipartResponseParsing can reuse the same decode logic per part.
func ParseGraphQLEnvelope(raw []byte) (*graphchain.GraphQLResult, error) {
	var envelope graphQLEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, err
	}

	var data interface{}
	if envelope.Data != nil {
		dd := store.NewDataDict(envelope.Data, nil)
		data = &dd
	}

	return &graphchain.GraphQLResult{
		Data:       data,
		Errors:     graphchain.GraphQLErrors(envelope.Errors),
		Extensions: envelope.Extensions,
		Source:     graphchain.SourceServer,
	}, nil
}
