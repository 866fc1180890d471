package diagnostic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBridgeError(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(ErrValueUnbridgeable, "a.Color->b.Shade", "Paint", "value 2", cause)

	assert.ErrorIs(t, err, ErrValueUnbridgeable)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrSpecRejected)
	assert.Equal(t, "value cannot be bridged [a.Color->b.Shade] Paint: value 2: boom", err.Error())

	var be *BridgeError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "Paint", be.Member)
}

func TestDiagnostics_Error(t *testing.T) {
	var d Diagnostics
	assert.NoError(t, d.Error())

	d.AddWarning("stub", "installed stub", "a->b", "Close")
	assert.True(t, d.IsValid())

	d.AddError(ErrMethodUnmatched, "unmatched", "no viable target method", "a->b", "Open", "OpenFile", "Opener")
	err := d.Error()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMethodUnmatched)
	assert.Contains(t, err.Error(), "closest: OpenFile, Opener")

	d.AddError(nil, "rejected", "nothing matched", "a->b", "")
	err = d.Error()
	assert.ErrorIs(t, err, ErrMethodUnmatched)
	assert.ErrorIs(t, err, ErrSpecRejected)
}

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{Code: "stub", Message: "installed", TypePair: "a->b", Member: "Close"}
	assert.Equal(t, "[a->b] Close: [stub] installed", d.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "unknown", Severity(9).String())
	assert.Equal(t, "[stub] orphan", Diagnostic{Code: "stub", Message: "orphan"}.String())
}

func TestValueString(t *testing.T) {
	type point struct{ X, Y int }
	assert.Equal(t, "3", ValueString(3))
	assert.Equal(t, "{1 2}", ValueString(point{1, 2}))
	assert.Contains(t, Dump(point{1, 2}), "X: (int) 1")
}
