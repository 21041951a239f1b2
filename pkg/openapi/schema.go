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

// Package openapi carries the OpenAPI description of the remote user service
// the harness tests against.
package openapi

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
)

//go:embed server.spec.yaml
var spec []byte

// Raw returns the unparsed specification document.
func Raw() []byte {
	return spec
}

// Schema is a parsed and validated specification with a router able to
// resolve requests to operations.
type Schema struct {
	// Spec is the OpenAPI document.
	Spec *openapi3.T

	router routers.Router
}

// NewSchema loads and validates the embedded specification.
func NewSchema(ctx context.Context) (*Schema, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(spec)
	if err != nil {
		return nil, fmt.Errorf("loading openapi specification: %w", err)
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validating openapi specification: %w", err)
	}

	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("creating openapi router: %w", err)
	}

	return &Schema{
		Spec:   doc,
		router: router,
	}, nil
}

// FindRoute resolves a request to an operation and its path parameters.
// The specification declares no servers, so only the path is considered.
func (s *Schema) FindRoute(r *http.Request) (*routers.Route, map[string]string, error) {
	return s.router.FindRoute(r)
}
