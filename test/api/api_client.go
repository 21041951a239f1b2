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

//nolint:revive // naming conventions acceptable in test code
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-logr/logr"
)

// RequestOptions enumerates what a caller may add to a request.
type RequestOptions struct {
	// Query is encoded and appended to the URL.
	Query url.Values
	// JSON is marshaled as the request body when not nil.
	JSON interface{}
	// Headers override the session defaults.
	Headers map[string]string
}

// APIClient prefixes paths with the base URL and sends them through a session.
type APIClient struct {
	baseURL   string
	session   *Session
	config    *TestConfig
	endpoints *Endpoints
	logger    logr.Logger
	validator *ResponseValidator
}

// NewAPIClient creates a client bound to the session, the session remains
// owned by the caller.
func NewAPIClient(config *TestConfig, session *Session, logger logr.Logger) *APIClient {
	return &APIClient{
		baseURL:   strings.TrimSuffix(config.BaseURL, "/"),
		session:   session,
		config:    config,
		endpoints: NewEndpoints(),
		logger:    logger,
	}
}

// WithValidator checks every response against the OpenAPI specification.
func (c *APIClient) WithValidator(validator *ResponseValidator) *APIClient {
	c.validator = validator
	return c
}

func (c *APIClient) Get(ctx context.Context, path string, options RequestOptions) (*Response, error) {
	return c.doRequest(ctx, http.MethodGet, path, options)
}

func (c *APIClient) Post(ctx context.Context, path string, options RequestOptions) (*Response, error) {
	return c.doRequest(ctx, http.MethodPost, path, options)
}

func (c *APIClient) Put(ctx context.Context, path string, options RequestOptions) (*Response, error) {
	return c.doRequest(ctx, http.MethodPut, path, options)
}

func (c *APIClient) Delete(ctx context.Context, path string, options RequestOptions) (*Response, error) {
	return c.doRequest(ctx, http.MethodDelete, path, options)
}

func (c *APIClient) Patch(ctx context.Context, path string, options RequestOptions) (*Response, error) {
	return c.doRequest(ctx, http.MethodPatch, path, options)
}

func (c *APIClient) buildURL(path string, query url.Values) string {
	fullURL := c.baseURL + path

	if len(query) == 0 {
		return fullURL
	}

	separator := "?"
	if strings.Contains(fullURL, "?") {
		separator = "&"
	}

	return fullURL + separator + query.Encode()
}

//nolint:cyclop // test code complexity is acceptable
func (c *APIClient) doRequest(ctx context.Context, method, path string, options RequestOptions) (*Response, error) {
	fullURL := c.buildURL(path, options.Query)

	var body io.Reader

	if options.JSON != nil {
		data, err := json.Marshal(options.JSON)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	// Add W3C Trace Context headers
	traceParent := createTraceParent()
	traceID := extractTraceID(traceParent)
	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Tracestate", "test-automation=ginkgo")

	for name, value := range options.Headers {
		req.Header.Set(name, value)
	}

	log := c.logger.WithValues("method", method, "url", fullURL, "traceID", traceID)

	log.Info(method + " " + fullURL)

	if c.config.LogRequests {
		log.Info("request details", "headers", redactHeaders(c.session.Headers(), req.Header), "body", redactBody(options.JSON))
	}

	start := time.Now()
	resp, err := c.session.Do(req)
	duration := time.Since(start)

	if err != nil {
		log.Error(err, "http request failed", "duration", duration)
		return nil, fmt.Errorf("%s %s failed (trace ID: %s): %w", method, path, traceID, err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error(err, "reading response body", "status", resp.StatusCode, "duration", duration)
		return nil, fmt.Errorf("reading response body (trace ID: %s): %w", traceID, err)
	}

	response := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
		Duration:   duration,
		TraceID:    traceID,
	}

	log.Info(fmt.Sprintf("Response: %d", resp.StatusCode), "duration", duration)

	if c.config.LogResponses && len(respBody) > 0 {
		log.Info("response body", "body", string(respBody))
	}

	if c.validator != nil {
		if err := c.validator.Validate(ctx, method, path, response); err != nil {
			log.Error(err, "response does not match the OpenAPI schema")
			return response, err
		}
	}

	return response, nil
}

//nolint:gochecknoglobals
var secretFields = map[string]struct{}{
	"password": {},
	"secret":   {},
	"token":    {},
}

// redactHeaders merges session and request headers for logging, hiding
// credentials.
func redactHeaders(defaults, request http.Header) map[string]string {
	out := map[string]string{}

	for _, headers := range []http.Header{defaults, request} {
		for name := range headers {
			value := headers.Get(name)

			switch http.CanonicalHeaderKey(name) {
			case "Authorization", APIKeyHeader:
				value = "REDACTED"
			}

			out[name] = value
		}
	}

	return out
}

// redactBody renders a request body for logging with secret fields hidden.
func redactBody(body interface{}) interface{} {
	if body == nil {
		return nil
	}

	data, err := json.Marshal(body)
	if err != nil {
		return body
	}

	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return body
	}

	return redactValue(value)
}

func redactValue(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		for key, field := range v {
			if _, ok := secretFields[strings.ToLower(key)]; ok {
				v[key] = "REDACTED"
				continue
			}

			v[key] = redactValue(field)
		}
	case []interface{}:
		for i := range v {
			v[i] = redactValue(v[i])
		}
	}

	return value
}

// Login posts credentials to the login endpoint.
func (c *APIClient) Login(ctx context.Context, payload interface{}) (*Response, error) {
	return c.Post(ctx, c.endpoints.Login(), RequestOptions{JSON: payload})
}

// CreateUser posts a user payload, the response is returned whatever the status.
func (c *APIClient) CreateUser(ctx context.Context, payload interface{}) (*Response, error) {
	return c.Post(ctx, c.endpoints.Users(), RequestOptions{JSON: payload})
}

// GetUser retrieves a specific user.
func (c *APIClient) GetUser(ctx context.Context, userID string) (*Response, error) {
	return c.Get(ctx, c.endpoints.User(userID), RequestOptions{})
}

// DeleteUser deletes a user.  Deleting a user that does not exist is not an
// error so repeated cleanup is idempotent.
func (c *APIClient) DeleteUser(ctx context.Context, userID string) error {
	resp, err := c.Delete(ctx, c.endpoints.User(userID), RequestOptions{})
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent, http.StatusNotFound:
		return nil
	default:
		return fmt.Errorf("deleting user '%s': unexpected status code: %d, body: %s (trace ID: %s)", userID, resp.StatusCode, string(resp.Body), resp.TraceID)
	}
}

// Health queries the service health endpoint.
func (c *APIClient) Health(ctx context.Context) (*Response, error) {
	return c.Get(ctx, c.endpoints.HealthCheck(), RequestOptions{})
}
