package http

import "net/http"

type headerTransport struct {
	headers   http.Header
	transport http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqCopy := req.Clone(req.Context())
	for key, values := range t.headers {
		if reqCopy.Header.Get(key) != "" {
			continue
		}
		for _, v := range values {
			reqCopy.Header.Add(key, v)
		}
	}

	return t.transport.RoundTrip(reqCopy)
}

// WithDefaultHeader sets key on every request that does not already carry it
func WithDefaultHeader(key, value string) HttpOpts {
	headers := http.Header{}
	headers.Set(key, value)

	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &headerTransport{headers: headers, transport: rt}
	})
}

// WithAuthToken sends the token as a bearer credential
func WithAuthToken(token string) HttpOpts {
	return WithDefaultHeader("Authorization", "Bearer "+token)
}
