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

package api_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unikorn-cloud/apitest/test/api"
)

var credentials = api.Credentials{
	Username: "test_user",
	Password: "Test@123",
	Email:    "test@example.com",
}

func TestUserPayloadBuilder(t *testing.T) {
	t.Parallel()

	payload := api.NewUserPayload(credentials).
		WithUsername("new_user").
		WithoutField("email").
		Build()

	require.Equal(t, map[string]interface{}{"username": "new_user", "password": "Test@123"}, payload)
}

func TestUserPayloadBuilderBuildCopies(t *testing.T) {
	t.Parallel()

	builder := api.NewUserPayload(credentials)

	payload := builder.Build()
	payload["username"] = "mutated"

	require.Equal(t, "test_user", builder.Build()["username"])
}

func TestUserPayloadBuilderTyped(t *testing.T) {
	t.Parallel()

	typed := api.NewUserPayload(credentials).BuildTyped()
	require.NotNil(t, typed.Email)
	require.Equal(t, "test@example.com", *typed.Email)

	typed = api.NewUserPayload(credentials).WithoutField("email").BuildTyped()
	require.Nil(t, typed.Email)

	data, err := json.Marshal(typed)
	require.NoError(t, err)
	require.JSONEq(t, `{"username":"test_user","password":"Test@123"}`, string(data))
}

func TestUniqueUserPayload(t *testing.T) {
	t.Parallel()

	a := api.NewUniqueUserPayload(credentials).Build()
	b := api.NewUniqueUserPayload(credentials).Build()

	require.NotEqual(t, a["username"], b["username"])
	require.Contains(t, a["email"], "@")
}

func TestFixtureData(t *testing.T) {
	t.Parallel()

	require.Equal(t, map[string]interface{}{
		"username": "test_user",
		"email":    "test@example.com",
		"password": "Test@123",
	}, api.ValidUserData(credentials))

	require.Equal(t, map[string]interface{}{
		"username": "",
		"email":    "invalid-email",
		"password": "123",
	}, api.InvalidUserData())

	require.Equal(t, api.LoginRequest{Username: "test_user", Password: "Test@123"}, api.LoginPayload(credentials))
}
