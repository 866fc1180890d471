package options

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	yaml := `
naming: sequence
unmatched_contract_method: stub
unmatched_target_method: expose
enum_policy: allow-additive
array_mismatch: allow-without-back-mapping
nested_timing: lazy
marker_methods: true
identity_accessor: true
accessibility: public-only
sync: none
passthrough_assignable: true
scalars: [identity, assignable, safe-number]
`

	cfg, err := Parse([]byte(yaml))
	require.NoError(t, err)

	want := Config{
		Naming:                NamingSequence,
		UnmatchedContract:     UnmatchedContractStub,
		UnmatchedTarget:       UnmatchedTargetExpose,
		Enums:                 EnumAllowAdditive,
		ArrayMismatch:         ArrayMismatchSkipBackMapping,
		NestedTiming:          TimingLazy,
		MarkerMethods:         true,
		IdentityAccessor:      true,
		Accessibility:         AccessibilityPublicOnly,
		Sync:                  SyncNone,
		PassthroughAssignable: true,
		Scalars:               ScalarIdentity | ScalarAssignable | ScalarSafeNumber,
	}

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_KeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("enum_policy: defer\n"))
	require.NoError(t, err)

	want := Default()
	want.Enums = EnumDefer
	assert.Equal(t, want, cfg)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown policy", "enum_policy: loose\n"},
		{"unknown scalar", "scalars: [identity, magic]\n"},
		{"scalars not a list", "scalars: identity\n"},
		{"unknown sync", "sync: sometimes\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Naming = NamingSequence
	cfg.Scalars = ScalarAll

	path := filepath.Join(t.TempDir(), "bridge.yaml")
	require.NoError(t, WriteFile(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "naming: sequence")
	assert.Contains(t, string(data), "- safe-number")

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestScalarEnum_String(t *testing.T) {
	assert.Equal(t, "none", ScalarNone.String())
	assert.Equal(t, "identity,assignable,casters,additive-enum", ScalarDefault.String())
	assert.True(t, ScalarAll.Has(ScalarSafeNumber))
	assert.False(t, ScalarDefault.Has(ScalarSafeNumber))
}

func TestPolicy_String(t *testing.T) {
	assert.Equal(t, "allow-additive", EnumAllowAdditive.String())
	assert.Equal(t, "global-lock", SyncGlobalLock.String())
	assert.Equal(t, "unknown", EnumPolicy(42).String())
}
