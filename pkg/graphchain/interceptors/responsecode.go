package interceptors

import "github.com/graphchain/graphchain-go/pkg/graphchain"

// ResponseCodeInterceptor fails the chain when the HTTP response is not
// 2xx, carrying the status and body via *graphchain.InvalidResponseCodeError.
type ResponseCodeInterceptor struct{}

// Intercept implements graphchain.Interceptor.
func (r *ResponseCodeInterceptor) Intercept(chain *graphchain.RequestChain, request *graphchain.HTTPRequest, response *graphchain.HTTPResponse) {
	if response == nil || response.StatusCode < 200 || response.StatusCode >= 300 {
		status := 0
		var body []byte
		if response != nil {
			status = response.StatusCode
			body = response.RawBody
		}
		chain.HandleErrorAsync(graphchain.WrapError("ResponseCodeInterceptor.Intercept",
			&graphchain.InvalidResponseCodeError{Status: status, Body: body}, ""), request, response)
		return
	}
	chain.Proceed(request, response, r)
}
