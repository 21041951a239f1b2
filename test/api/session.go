/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package api

import (
	"net/http"
	"sync"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
)

//go:generate mockgen -source=session.go -destination=mock/interfaces.go -package=mock

const (
	// APIKeyHeader carries the API key when no bearer token is configured.
	APIKeyHeader = "X-API-Key"

	contentTypeJSON = "application/json"
)

// HTTPDoer is the part of *http.Client a session requires.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Session carries default headers and authentication across requests.
// It is owned by a single spec and must be closed when the spec ends.
type Session struct {
	client  HTTPDoer
	headers http.Header
	release func()
	once    sync.Once
}

// NewSession creates a session from the configuration.  Retries, when
// enabled, are performed by go-retryablehttp, never by the session.  The
// last response is returned as is once retries are exhausted.
func NewSession(config *TestConfig) *Session {
	if config.RetryMax > 0 {
		retryClient := retryablehttp.NewClient()
		retryClient.RetryMax = config.RetryMax
		retryClient.Logger = nil
		retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

		client := retryClient.StandardClient()
		client.Timeout = config.Timeout

		return newSession(config, client, retryClient.HTTPClient.CloseIdleConnections)
	}

	client := cleanhttp.DefaultPooledClient()
	client.Timeout = config.Timeout

	return newSession(config, client, client.CloseIdleConnections)
}

// NewSessionWithDoer creates a session that sends requests through doer,
// closing it releases nothing.
func NewSessionWithDoer(config *TestConfig, doer HTTPDoer) *Session {
	return newSession(config, doer, func() {})
}

func newSession(config *TestConfig, client HTTPDoer, release func()) *Session {
	headers := http.Header{}
	headers.Set("Content-Type", contentTypeJSON)
	headers.Set("Accept", contentTypeJSON)

	// Bearer tokens take precedence over API keys, only one is ever sent.
	switch {
	case config.BearerToken != "":
		headers.Set("Authorization", "Bearer "+config.BearerToken)
	case config.APIKey != "":
		headers.Set(APIKeyHeader, config.APIKey)
	}

	return &Session{
		client:  client,
		headers: headers,
		release: release,
	}
}

// Headers returns a copy of the default headers.
func (s *Session) Headers() http.Header {
	return s.headers.Clone()
}

// Do applies the default headers and sends the request.  Headers already
// present on the request are left untouched.
func (s *Session) Do(req *http.Request) (*http.Response, error) {
	for name, values := range s.headers {
		if req.Header.Get(name) == "" {
			req.Header[name] = append([]string(nil), values...)
		}
	}

	return s.client.Do(req)
}

// Close releases pooled connections, it is safe to call more than once.
func (s *Session) Close() {
	s.once.Do(s.release)
}
