package options

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every policy a bridge registry consults.
type Config struct {
	// Naming is the adapter naming strategy.
	Naming NamingEnum `yaml:"naming"`
	// UnmatchedContract governs contract methods without a viable target method.
	UnmatchedContract UnmatchedContractEnum `yaml:"unmatched_contract_method"`
	// UnmatchedTarget governs target methods absent from the contract.
	UnmatchedTarget UnmatchedTargetEnum `yaml:"unmatched_target_method"`
	// Enums is the enumeration matching policy.
	Enums EnumPolicy `yaml:"enum_policy"`
	// ArrayMismatch governs array back-mapping on length mismatch.
	ArrayMismatch ArrayMismatchEnum `yaml:"array_mismatch"`
	// NestedTiming selects eager or lazy resolution of nested specs.
	NestedTiming TimingEnum `yaml:"nested_timing"`
	// MarkerMethods synthesizes IsBridgeAdapter members instead of matching them.
	MarkerMethods bool `yaml:"marker_methods"`
	// IdentityAccessor synthesizes BridgeTarget members instead of matching them.
	IdentityAccessor bool `yaml:"identity_accessor"`
	// Accessibility is the visibility checking mode.
	Accessibility AccessibilityEnum `yaml:"accessibility"`
	// Sync is the registry synchronization mode.
	Sync SyncEnum `yaml:"sync"`
	// PassthroughAssignable lets assignable positions skip bridging.
	PassthroughAssignable bool `yaml:"passthrough_assignable"`
	// Scalars selects the trivial converters of the scalar chain.
	Scalars ScalarEnum `yaml:"scalars"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Naming:            NamingHash,
		UnmatchedContract: UnmatchedContractFailFast,
		UnmatchedTarget:   UnmatchedTargetIgnore,
		Enums:             EnumStrict,
		ArrayMismatch:     ArrayMismatchFail,
		NestedTiming:      TimingEager,
		Accessibility:     AccessibilityEnforce,
		Sync:              SyncGlobalLock,
		Scalars:           ScalarDefault,
	}
}

// LoadFile loads a YAML configuration from the given path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes YAML data on top of the default configuration.
// Keys absent from data keep their default values.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return cfg, nil
}

// Marshal serializes a Config to YAML.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// WriteFile writes a Config to the given path.
func WriteFile(cfg Config, path string) error {
	data, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}
