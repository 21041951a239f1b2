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
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"k8s.io/utils/ptr"
)

func generateRandomName(prefix string) string {
	bytes := make([]byte, 4) // 8 hex characters
	_, _ = rand.Read(bytes)

	return fmt.Sprintf("%s-%s", prefix, hex.EncodeToString(bytes))
}

func GenerateTestID() string {
	return generateRandomName("test")
}

// UserPayloadBuilder builds user creation payloads for testing.
type UserPayloadBuilder struct {
	payload map[string]interface{}
}

// NewUserPayload creates a valid user payload from the credentials.
func NewUserPayload(credentials Credentials) *UserPayloadBuilder {
	return &UserPayloadBuilder{
		payload: map[string]interface{}{
			"username": credentials.Username,
			"email":    credentials.Email,
			"password": credentials.Password,
		},
	}
}

// NewUniqueUserPayload creates a valid user payload with a generated
// username and email so it can be created repeatedly against a live service.
func NewUniqueUserPayload(credentials Credentials) *UserPayloadBuilder {
	name := generateRandomName("user")

	return NewUserPayload(credentials).
		WithUsername(name).
		WithEmail(name + "@example.com")
}

// WithUsername sets the username, an empty string is sent as is.
func (b *UserPayloadBuilder) WithUsername(username string) *UserPayloadBuilder {
	b.payload["username"] = username
	return b
}

// WithEmail sets the email address, an empty string is sent as is.
func (b *UserPayloadBuilder) WithEmail(email string) *UserPayloadBuilder {
	b.payload["email"] = email
	return b
}

// WithPassword sets the password, an empty string is sent as is.
func (b *UserPayloadBuilder) WithPassword(password string) *UserPayloadBuilder {
	b.payload["password"] = password
	return b
}

// WithoutField removes a field from the payload altogether.
func (b *UserPayloadBuilder) WithoutField(name string) *UserPayloadBuilder {
	delete(b.payload, name)
	return b
}

// Build returns a copy of the completed payload.
func (b *UserPayloadBuilder) Build() map[string]interface{} {
	out := make(map[string]interface{}, len(b.payload))

	for k, v := range b.payload {
		out[k] = v
	}

	return out
}

// BuildTyped returns the payload as a typed request, a removed email is
// left nil.
func (b *UserPayloadBuilder) BuildTyped() UserWrite {
	out := UserWrite{
		Username: b.stringField("username"),
		Password: b.stringField("password"),
	}

	if _, ok := b.payload["email"]; ok {
		out.Email = ptr.To(b.stringField("email"))
	}

	return out
}

func (b *UserPayloadBuilder) stringField(name string) string {
	value, _ := b.payload[name].(string)
	return value
}

// LoginPayload creates a login request from the credentials.
func LoginPayload(credentials Credentials) LoginRequest {
	return LoginRequest{
		Username: credentials.Username,
		Password: credentials.Password,
	}
}

// ValidUserData provides valid user test data.
func ValidUserData(credentials Credentials) map[string]interface{} {
	return NewUserPayload(credentials).Build()
}

// InvalidUserData provides invalid user test data for negative testing.
func InvalidUserData() map[string]interface{} {
	return NewUserPayload(Credentials{}).
		WithUsername("").
		WithEmail("invalid-email").
		WithPassword("123").
		Build()
}
