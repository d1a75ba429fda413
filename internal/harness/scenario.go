package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines one replay conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what the scenario validates.
	Description string `yaml:"description"`

	// Log is the inline event log to replay, header included.
	Log string `yaml:"log"`

	// DeviceBytes are the bytes the scripted device produces outward,
	// in order, one per non-interrupt event the replay consumes.
	DeviceBytes []int `yaml:"device_bytes,omitempty"`

	// ExpectError, when set, must be contained in the run's error.
	// Scenarios without it must run cleanly.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file. Unknown fields
// are rejected to catch typos.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Log == "" {
		return fmt.Errorf("log is required")
	}
	for i, b := range s.DeviceBytes {
		if b < 0 || b > 0xff {
			return fmt.Errorf("device_bytes[%d]: %d is not a byte", i, b)
		}
	}
	return nil
}
