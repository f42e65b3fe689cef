package utils

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vybium/vybium-stack-vm/internal/vybium-stack-vm/core"
)

// Hash functions supported by the Fiat-Shamir channel
const (
	HashSHA3   = "sha3"
	HashSHA256 = "sha256"
)

// Config represents the configuration for executing, tracing and proving
// stack VM programs
type Config struct {
	// Field is the prime field the program is evaluated over ("m31", "goldilocks" or "bls12-377")
	Field string

	// NumQueries is the number of trace rows opened by the reference engine
	NumQueries int

	// HashFunction drives the Fiat-Shamir channel ("sha3" or "sha256")
	HashFunction string

	// LogLevel is a logrus level name
	LogLevel string
}

// DefaultConfig returns the default configuration over the Mersenne-31 field
func DefaultConfig() *Config {
	return &Config{
		Field:        core.FieldM31,
		NumQueries:   40,
		HashFunction: HashSHA3,
		LogLevel:     log.InfoLevel.String(),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := core.ParseFieldName(c.Field); err != nil {
		return err
	}

	if c.NumQueries <= 0 {
		return fmt.Errorf("number of queries must be positive, got %d", c.NumQueries)
	}

	if c.HashFunction != HashSHA3 && c.HashFunction != HashSHA256 {
		return fmt.Errorf("hash function must be '%s' or '%s', got '%s'", HashSHA3, HashSHA256, c.HashFunction)
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	return nil
}

// Level returns the configured logrus level, defaulting to Info
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// WithField sets the field name
func (c *Config) WithField(name string) *Config {
	c.Field = name
	return c
}

// WithNumQueries sets the number of opened rows
func (c *Config) WithNumQueries(queries int) *Config {
	c.NumQueries = queries
	return c
}

// WithHashFunction sets the hash function
func (c *Config) WithHashFunction(hashFunc string) *Config {
	c.HashFunction = hashFunc
	return c
}

// WithLogLevel sets the log level
func (c *Config) WithLogLevel(level string) *Config {
	c.LogLevel = level
	return c
}

// Clone creates a copy of the configuration
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
