package interceptors

import (
	"encoding/json"
	"strings"

	"github.com/graphchain/graphchain-go/pkg/graphchain"
)

// MultipartResponseParsing splits a multipart/mixed response with a known
// boundary and subscriptionSpec/deferSpec marker into one chunk per part,
// calling chain.Proceed once per chunk so downstream interceptors deliver
// multiple results per HTTP round trip (spec.md 4.4). Responses that are
// not multipart-tagged this way are forwarded unchanged for
// JSONResponseParsing to handle as a single payload.
type MultipartResponseParsing struct{}

// chunkPayload is the wire shape of one multipart part's JSON body.
type chunkPayload struct {
	Payload json.RawMessage `json:"payload"`
}

// Intercept implements graphchain.Interceptor.
func (m *MultipartResponseParsing) Intercept(chain *graphchain.RequestChain, request *graphchain.HTTPRequest, response *graphchain.HTTPResponse) {
	if response == nil {
		chain.Proceed(request, response, m)
		return
	}

	contentType := response.Header.Get("Content-Type")
	boundary, ok := multipartBoundary(contentType)
	if !ok {
		chain.Proceed(request, response, m)
		return
	}

	parts, final := splitMultipartBody(response.RawBody, boundary)
	if len(parts) == 0 {
		chain.Proceed(request, response, m)
		return
	}

	for i, part := range parts {
		body := stripPartHeaders(part)

		var wrapped chunkPayload
		if err := json.Unmarshal(body, &wrapped); err != nil {
			chain.HandleErrorAsync(graphchain.WrapError("MultipartResponseParsing.Intercept", err, "failed to decode multipart part"), request, response)
			continue
		}

		result, err := ParseGraphQLEnvelope(wrapped.Payload)
		if err != nil {
			chain.HandleErrorAsync(graphchain.WrapError("MultipartResponseParsing.Intercept", err, "failed to decode part payload"), request, response)
			continue
		}

		isLast := final && i == len(parts)-1
		result.StreamEnded = isLast

		chunkResponse := &graphchain.HTTPResponse{
			StatusCode: response.StatusCode,
			Header:     response.Header,
			RawBody:    wrapped.Payload,
			Parsed:     result,
			Legacy:     response.Legacy,
		}
		chain.Proceed(request, chunkResponse, m)
	}
}

// multipartBoundary extracts the boundary token from a Content-Type header
// that also advertises subscriptionSpec or deferSpec, per spec.md 4.4.
func multipartBoundary(contentType string) (string, bool) {
	if !strings.HasPrefix(strings.TrimSpace(contentType), "multipart/mixed") {
		return "", false
	}
	if !strings.Contains(contentType, "subscriptionSpec=") && !strings.Contains(contentType, "deferSpec=") {
		return "", false
	}
	for _, param := range strings.Split(contentType, ";") {
		param = strings.TrimSpace(param)
		if strings.HasPrefix(param, "boundary=") {
			b := strings.TrimPrefix(param, "boundary=")
			b = strings.Trim(b, `"`)
			if b != "" {
				return b, true
			}
		}
	}
	return "", false
}

// splitMultipartBody splits raw by "--boundary" delimiters (CRLF-normalized)
// and reports whether the terminating "--boundary--" was observed.
func splitMultipartBody(raw []byte, boundary string) ([][]byte, bool) {
	normalized := strings.ReplaceAll(string(raw), "\r\n", "\n")
	delimiter := "--" + boundary
	terminator := delimiter + "--"

	final := strings.Contains(normalized, terminator)
	segments := strings.Split(normalized, delimiter)

	var parts [][]byte
	for _, seg := range segments {
		seg = strings.TrimPrefix(seg, "--")
		seg = strings.Trim(seg, "\n")
		if seg == "" {
			continue
		}
		parts = append(parts, []byte(seg))
	}
	return parts, final
}

// stripPartHeaders drops a part's header block (lines up to the first blank
// line) and returns the remaining JSON body.
func stripPartHeaders(part []byte) []byte {
	s := string(part)
	if idx := strings.Index(s, "\n\n"); idx >= 0 {
		return []byte(strings.TrimSpace(s[idx+2:]))
	}
	return []byte(strings.TrimSpace(s))
}
