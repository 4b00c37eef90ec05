package httpclient

import "net/http"

// WithHeader sets a request header.
func WithHeader(key, value string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set(key, value)
	}
}

// WithGoogleAPIKey authenticates a Google Generative Language request.
// The key travels in a header so it never lands in logged URLs.
func WithGoogleAPIKey(key string) RequestOption {
	return WithHeader("x-goog-api-key", key)
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) RequestOption {
	return WithHeader("User-Agent", ua)
}
