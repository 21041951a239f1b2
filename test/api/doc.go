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

// Package api provides the fixtures and client used by the API test suites.
//
// Configuration is read once from the environment, optionally seeded from a
// .env file, and is read only thereafter.  Each spec builds its own Session,
// which carries the default JSON headers and at most one credential, and an
// APIClient that exposes verb named methods over it.  The client never
// retries, network failures and timeouts are returned to the spec.
//
// Every request carries a W3C trace context so a failing request can be
// found in the service logs by its trace ID, which is also recorded in
// assertion failures.
package api
