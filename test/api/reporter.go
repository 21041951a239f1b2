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
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/go-logr/logr"
	"github.com/onsi/ginkgo/v2/reporters"
	"github.com/onsi/ginkgo/v2/types"
	"github.com/spjmurray/go-util/pkg/set"
)

// JUnitReportName is created in the report directory.
const JUnitReportName = "junit.xml"

//nolint:gochecknoglobals
var registeredLabels = set.New[string](
	LabelSmoke,
	LabelRegression,
	LabelAPI,
	LabelAuth,
	LabelNegative,
	LabelIntegration,
)

// UnregisteredLabels returns, sorted, any labels not declared by this package.
func UnregisteredLabels(labels []string) []string {
	return slices.Sorted(set.New[string](labels...).Difference(registeredLabels).All())
}

// LogSpecReport records the outcome of a spec with a distinguishing marker.
func LogSpecReport(logger logr.Logger, report types.SpecReport) {
	name := report.FullText()

	switch {
	case report.State == types.SpecStatePassed:
		logger.Info("✓ PASSED: "+name, "duration", report.RunTime)
	case report.State.Is(types.SpecStateFailureStates):
		logger.Error(errors.New(report.Failure.Message), "✗ FAILED: "+name, "location", report.Failure.Location.String())
	case report.State.Is(types.SpecStateSkipped | types.SpecStatePending):
		logger.Info("⊘ SKIPPED: "+name, "reason", report.Failure.Message)
	}

	if unknown := UnregisteredLabels(report.Labels()); len(unknown) > 0 {
		logger.Info("spec uses unregistered labels", "spec", name, "labels", unknown)
	}
}

// WriteJUnitReport writes the suite report to the report directory.
func WriteJUnitReport(report types.Report, reportDir string) error {
	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}

	if err := reporters.GenerateJUnitReport(report, filepath.Join(reportDir, JUnitReportName)); err != nil {
		return fmt.Errorf("generating junit report: %w", err)
	}

	return nil
}
