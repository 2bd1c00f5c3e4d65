package engine

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigurationError_Message(t *testing.T) {
	err := newConfigError(ErrCodeEmptyLayers, "layers", "layers must not be empty")
	assert.Equal(t, "EMPTY_LAYERS: layers must not be empty (field=layers)", err.Error())

	bare := &ConfigurationError{Code: ErrCodeInvalidRate, Message: "bad"}
	assert.Equal(t, "INVALID_RATE: bad", bare.Error())
}

func TestIsConfigurationError_Wrapped(t *testing.T) {
	err := fmt.Errorf("build engine: %w", newConfigError(ErrCodeInvalidAgentCount, "agent_count", "x"))

	assert.True(t, IsConfigurationError(err))
	assert.False(t, IsConfigurationError(errors.New("other")))
	assert.False(t, IsConfigurationError(nil))
}
