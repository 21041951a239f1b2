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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"net/http"

	"github.com/go-logr/logr"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// NewSessionWithCleanup creates a session that is closed when the current
// spec ends, whether it passes or fails.
func NewSessionWithCleanup(config *TestConfig) *Session {
	session := NewSession(config)

	DeferCleanup(session.Close)

	return session
}

// NewAPIClientWithCleanup creates a client on a fresh session scoped to the
// current spec.
func NewAPIClientWithCleanup(config *TestConfig, logger logr.Logger) *APIClient {
	return NewAPIClient(config, NewSessionWithCleanup(config), logger)
}

// ScheduleUserCleanup deletes the user described by a successful creation
// response when the spec ends.  Other responses are ignored.
func ScheduleUserCleanup(client *APIClient, ctx context.Context, response *Response) {
	if response == nil || response.StatusCode != http.StatusCreated {
		return
	}

	var user User
	if err := response.JSON(&user); err != nil || user.ID == "" {
		return
	}

	DeferCleanup(func() {
		GinkgoWriter.Printf("Cleaning up user: %s\n", user.ID)

		if err := client.DeleteUser(ctx, user.ID); err != nil {
			GinkgoWriter.Printf("Warning: Failed to delete user %s: %v\n", user.ID, err)
		}
	})
}

// CreateUserWithCleanup creates a user, expecting success, and schedules its
// deletion.
func CreateUserWithCleanup(client *APIClient, ctx context.Context, payload interface{}) User {
	response, err := client.CreateUser(ctx, payload)
	Expect(err).NotTo(HaveOccurred())
	Expect(response).To(HaveStatus(http.StatusCreated))

	var user User
	Expect(response.JSON(&user)).To(Succeed())

	GinkgoWriter.Printf("Created user with ID: %s\n", user.ID)

	ScheduleUserCleanup(client, ctx, response)

	return user
}
