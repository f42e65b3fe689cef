package utils

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaultConfig tests the DefaultConfig function
func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	require.NotNil(t, config)

	assert.Equal(t, "m31", config.Field)
	assert.Positive(t, config.NumQueries)
	assert.Equal(t, HashSHA3, config.HashFunction)
	assert.Equal(t, log.InfoLevel, config.Level())
	assert.NoError(t, config.Validate())
}

// TestConfigValidate tests the Validate method
func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		config    *Config
		expectErr bool
	}{
		{
			name:      "valid default config",
			config:    DefaultConfig(),
			expectErr: false,
		},
		{
			name:      "bls12-377 field",
			config:    DefaultConfig().WithField("bls12-377"),
			expectErr: false,
		},
		{
			name:      "unknown field",
			config:    DefaultConfig().WithField("babybear"),
			expectErr: true,
		},
		{
			name:      "zero queries",
			config:    DefaultConfig().WithNumQueries(0),
			expectErr: true,
		},
		{
			name:      "sha256 channel",
			config:    DefaultConfig().WithHashFunction(HashSHA256),
			expectErr: false,
		},
		{
			name:      "unsupported hash",
			config:    DefaultConfig().WithHashFunction("md5"),
			expectErr: true,
		},
		{
			name:      "bad log level",
			config:    DefaultConfig().WithLogLevel("loud"),
			expectErr: true,
		},
		{
			name:      "debug log level",
			config:    DefaultConfig().WithLogLevel("debug"),
			expectErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestConfigClone checks that Clone produces an independent copy
func TestConfigClone(t *testing.T) {
	original := DefaultConfig()
	clone := original.Clone()

	clone.WithNumQueries(7).WithField("bls12-377")

	assert.Equal(t, 40, original.NumQueries)
	assert.Equal(t, "m31", original.Field)
	assert.Equal(t, 7, clone.NumQueries)
}

func TestConfigLevelFallback(t *testing.T) {
	config := DefaultConfig().WithLogLevel("nonsense")
	assert.Equal(t, log.InfoLevel, config.Level())

	config.WithLogLevel("debug")
	assert.Equal(t, log.DebugLevel, config.Level())
}
