package authsdk

import (
	"net/http"
	"strings"
	"time"
)

// DefaultHTTPTimeout bounds every outbound call made through an SDKClient.
const DefaultHTTPTimeout = 10 * time.Second

// SDKClient talks to the commerce API. On its own it only performs the
// unauthenticated token exchanges; authenticated calls go through a Session.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client for the API rooted at baseURL.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: DefaultHTTPTimeout,
		},
	}
}
