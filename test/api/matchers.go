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
	"errors"
	"strings"

	"github.com/onsi/gomega/gcustom"
	"github.com/onsi/gomega/types"
)

var errNilResponse = errors.New("response is nil")

// HaveStatus succeeds when the response has the expected status code.  The
// failure message carries the body and trace ID.
func HaveStatus(expected int) types.GomegaMatcher {
	return gcustom.MakeMatcher(func(response *Response) (bool, error) {
		if response == nil {
			return false, errNilResponse
		}

		return response.StatusCode == expected, nil
	}).WithTemplate("Expected response\n{{.FormattedActual}}\n{{.To}} have status code {{.Data}}", expected)
}

// HaveJSONKey succeeds when the body is a JSON object containing key.
func HaveJSONKey(key string) types.GomegaMatcher {
	return gcustom.MakeMatcher(func(response *Response) (bool, error) {
		if response == nil {
			return false, errNilResponse
		}

		body, err := response.Map()
		if err != nil {
			return false, err
		}

		_, ok := body[key]

		return ok, nil
	}).WithTemplate("Expected response body\n{{.FormattedActual}}\n{{.To}} contain key {{.Data}}", key)
}

// MentionField succeeds when the body's error mentions field.  Services
// report errors as a message, a list or an object keyed by field, all are
// accepted.
func MentionField(field string) types.GomegaMatcher {
	return gcustom.MakeMatcher(func(response *Response) (bool, error) {
		if response == nil {
			return false, errNilResponse
		}

		body, err := response.Map()
		if err != nil {
			return false, err
		}

		value, ok := body["error"]
		if !ok {
			return false, nil
		}

		return mentions(value, field), nil
	}).WithTemplate("Expected error in response\n{{.FormattedActual}}\n{{.To}} mention {{.Data}}", field)
}

func mentions(value interface{}, field string) bool {
	switch t := value.(type) {
	case string:
		return strings.Contains(t, field)
	case []interface{}:
		for _, item := range t {
			if mentions(item, field) {
				return true
			}
		}
	case map[string]interface{}:
		if _, ok := t[field]; ok {
			return true
		}

		for _, item := range t {
			if mentions(item, field) {
				return true
			}
		}
	}

	return false
}
