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
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Response is a fully read HTTP response, returned to the caller as the
// server sent it.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Duration   time.Duration
	TraceID    string
}

// JSON decodes the body into v.
func (r *Response) JSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("unmarshaling response body (trace ID: %s): %w", r.TraceID, err)
	}

	return nil
}

// Map decodes the body as a JSON object.
func (r *Response) Map() (map[string]interface{}, error) {
	var body map[string]interface{}
	if err := r.JSON(&body); err != nil {
		return nil, err
	}

	return body, nil
}

func (r *Response) String() string {
	return string(r.Body)
}

// GomegaString is used by Gomega when rendering failure messages, so a failed
// assertion records the full comparison.
func (r *Response) GomegaString() string {
	return fmt.Sprintf("status=%d duration=%s body=%s (trace ID: %s)", r.StatusCode, r.Duration, string(r.Body), r.TraceID)
}
