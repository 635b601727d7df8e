package oracle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeterministicOracle(t *testing.T) {
	o, err := New(&Config{Provider: "deterministic"})
	require.NoError(t, err)
	assert.True(t, Supports(o, CapabilityGeneral))
	assert.False(t, Supports(o, CapabilityCode))

	_, err = o.Continue(context.Background(), "what is the sun")
	assert.ErrorIs(t, err, ErrOracleUnavailable)
}

func TestNewRejectsMissingAPIKey(t *testing.T) {
	_, err := New(&Config{Provider: "openai"})
	assert.Error(t, err)
}

func TestConfigValidateTemperatureRange(t *testing.T) {
	c := &Config{Provider: "deterministic", Temperature: 3.0}
	assert.Error(t, c.Validate())
}
