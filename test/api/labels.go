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

// Spec labels.  They categorize specs for filtering with --label-filter and
// have no effect on the service under test.
const (
	LabelSmoke       = "smoke"
	LabelRegression  = "regression"
	LabelAPI         = "api"
	LabelAuth        = "auth"
	LabelNegative    = "negative"
	LabelIntegration = "integration"
)
