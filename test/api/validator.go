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
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3filter"

	"github.com/unikorn-cloud/apitest/pkg/openapi"
)

var (
	// ErrSchemaViolation is raised when a response does not match the
	// OpenAPI specification.
	ErrSchemaViolation = errors.New("response violates openapi specification")
)

// ResponseValidator checks responses against the user service specification.
type ResponseValidator struct {
	schema *openapi.Schema
}

// NewResponseValidator loads the embedded specification.
func NewResponseValidator(ctx context.Context) (*ResponseValidator, error) {
	schema, err := openapi.NewSchema(ctx)
	if err != nil {
		return nil, err
	}

	return &ResponseValidator{
		schema: schema,
	}, nil
}

// Validate resolves the operation from the method and relative path, then
// checks the status code, headers and body are documented.
func (v *ResponseValidator) Validate(ctx context.Context, method, path string, response *Response) error {
	req, err := http.NewRequestWithContext(ctx, method, path, nil)
	if err != nil {
		return fmt.Errorf("creating validation request: %w", err)
	}

	route, params, err := v.schema.FindRoute(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s is not documented: %w", ErrSchemaViolation, method, path, err)
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request:    req,
			PathParams: params,
			Route:      route,
		},
		Status: response.StatusCode,
		Header: response.Header,
		Body:   io.NopCloser(bytes.NewReader(response.Body)),
		Options: &openapi3filter.Options{
			IncludeResponseStatus: true,
		},
	}

	if err := openapi3filter.ValidateResponse(ctx, input); err != nil {
		return fmt.Errorf("%w: %s %s status %d (trace ID: %s): %w", ErrSchemaViolation, method, path, response.StatusCode, response.TraceID, err)
	}

	return nil
}
