package harness

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden executes a scenario and compares its trace against
// testdata/golden/<name>.golden. Regenerate golden files with
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) {
	t.Helper()

	result, err := Run(scenario)

	if scenario.ExpectError != "" {
		if err == nil {
			t.Fatalf("scenario %s: expected error containing %q, got none", scenario.Name, scenario.ExpectError)
		}
		if !strings.Contains(err.Error(), scenario.ExpectError) {
			t.Fatalf("scenario %s: error %q does not contain %q", scenario.Name, err, scenario.ExpectError)
		}
	} else if err != nil {
		t.Fatalf("scenario %s: %v", scenario.Name, err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		t.Fatalf("marshal trace: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)
}
