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

// Package fake implements an in-memory user service that honours the
// contract the API suites test against.  It backs the harness' own tests
// and can be run locally with apitest-fake.
package fake

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"
	"github.com/spf13/pflag"

	"github.com/unikorn-cloud/apitest/pkg/openapi"
)

const (
	apiKeyHeader = "X-API-Key"

	minPasswordLength = 6
)

// Options allows behaviour to be defined on the CLI.
type Options struct {
	// Username, Password and Email seed a user that can log in.
	Username string
	Password string
	Email    string

	// RequireAuth protects the user endpoints.  Either a token issued by
	// login, BearerToken or APIKey is accepted.
	RequireAuth bool
	BearerToken string
	APIKey      string
}

func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.Username, "username", "test_user", "Username of the seeded user.")
	f.StringVar(&o.Password, "password", "Test@123", "Password of the seeded user.")
	f.StringVar(&o.Email, "email", "test@example.com", "Email address of the seeded user.")
	f.BoolVar(&o.RequireAuth, "require-auth", false, "Require authentication on user endpoints.")
	f.StringVar(&o.BearerToken, "bearer-token", "", "Static bearer token accepted when authentication is required.")
	f.StringVar(&o.APIKey, "api-key", "", "Static API key accepted when authentication is required.")
}

type Server struct {
	options Options
	store   *Store
	logger  logr.Logger
}

// New creates a server, seeding the configured user if any.
func New(options Options, logger logr.Logger) (*Server, error) {
	s := &Server{
		options: options,
		store:   NewStore(),
		logger:  logger,
	}

	if options.Username != "" {
		if _, err := s.store.Create(options.Username, options.Email, options.Password); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Store exposes the backing store for inspection.
func (s *Server) Store() *Store {
	return s.store
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", s.health)
	r.Get("/openapi.yaml", s.spec)
	r.Post("/login", s.login)

	r.Route("/users", func(r chi.Router) {
		r.Use(s.authenticate)

		r.Post("/", s.createUser)
		r.Get("/{userID}", s.getUser)
		r.Delete("/{userID}", s.deleteUser)
	})

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.Info("request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "duration", time.Since(start), "traceparent", r.Header.Get("Traceparent"))
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.options.RequireAuth || s.authorized(r) {
			next.ServeHTTP(w, r)
			return
		}

		writeError(w, http.StatusUnauthorized, "missing or invalid credentials")
	})
}

func (s *Server) authorized(r *http.Request) bool {
	if key := r.Header.Get(apiKeyHeader); key != "" {
		return s.options.APIKey != "" && key == s.options.APIKey
	}

	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		return false
	}

	if s.options.BearerToken != "" && token == s.options.BearerToken {
		return true
	}

	return s.store.ValidToken(token)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) spec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(openapi.Raw())
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	fields := map[string]string{}

	if req.Username == "" {
		fields["username"] = "username is required"
	}

	if req.Password == "" {
		fields["password"] = "password is required"
	}

	if len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": fields})
		return
	}

	token, ok := s.store.Login(req.Username, req.Password)
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token":    token,
		"username": req.Username,
	})
}

type userRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// validate returns a message per offending field.
func (u *userRequest) validate() map[string]string {
	fields := map[string]string{}

	if u.Username == "" {
		fields["username"] = "username is required"
	}

	switch {
	case u.Email == "":
		fields["email"] = "email is required"
	case !validEmail(u.Email):
		fields["email"] = "email is invalid"
	}

	if len(u.Password) < minPasswordLength {
		fields["password"] = "password must be at least 6 characters"
	}

	return fields
}

func validEmail(email string) bool {
	address, err := mail.ParseAddress(email)

	return err == nil && address.Address == email
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if fields := req.validate(); len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": fields})
		return
	}

	user, err := s.store.Create(req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			writeJSON(w, http.StatusConflict, map[string]any{"error": map[string]string{"username": err.Error()}})
			return
		}

		writeError(w, http.StatusInternalServerError, err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	user, ok := s.store.Get(chi.URLParam(r, "userID"))
	if !ok {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	if !s.store.Delete(chi.URLParam(r, "userID")) {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
