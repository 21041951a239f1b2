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

package fake

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrConflict is raised when a username is already taken.
	ErrConflict = errors.New("username already exists")
)

// User is a stored user.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`

	password string
}

// Store holds users and issued tokens in memory.
type Store struct {
	lock      sync.Mutex
	users     map[string]User
	usernames map[string]string
	tokens    map[string]string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:     map[string]User{},
		usernames: map[string]string{},
		tokens:    map[string]string{},
	}
}

// Create adds a user, usernames are unique.
func (s *Store) Create(username, email, password string) (User, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.usernames[username]; ok {
		return User{}, ErrConflict
	}

	user := User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     email,
		CreatedAt: time.Now().UTC(),
		password:  password,
	}

	s.users[user.ID] = user
	s.usernames[username] = user.ID

	return user, nil
}

// Get looks up a user by ID.
func (s *Store) Get(id string) (User, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	user, ok := s.users[id]

	return user, ok
}

// Delete removes a user, returning false if it did not exist.
func (s *Store) Delete(id string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	user, ok := s.users[id]
	if !ok {
		return false
	}

	delete(s.users, id)
	delete(s.usernames, user.Username)

	return true
}

// Login checks the credentials and issues a new token.
func (s *Store) Login(username, password string) (string, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	id, ok := s.usernames[username]
	if !ok || s.users[id].password != password {
		return "", false
	}

	token := uuid.NewString()
	s.tokens[token] = id

	return token, true
}

// ValidToken reports whether the token was issued by Login.
func (s *Store) ValidToken(token string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	_, ok := s.tokens[token]

	return ok
}
