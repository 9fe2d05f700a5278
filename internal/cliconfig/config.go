package cliconfig

import (
	"fmt"
	"strconv"
)

// Config holds CLI configuration for sample-grabber.
type Config struct {
	// OutPath is the file samples are saved to. Empty means samples are
	// captured (rates, integrity check) but not saved.
	OutPath string

	// Source is the acquisition source path: a file or named pipe fed by
	// the transport process, or "-" for stdin.
	Source string

	// Follow keeps reading the source as it grows instead of stopping at
	// end-of-file.
	Follow bool

	// SamplesWanted is the number of samples to collect before exiting.
	// 0 means collect until interrupted.
	SamplesWanted int64

	// SamplesPerByte is the sample packing ratio of the source hardware.
	SamplesPerByte int

	// FlushBytes is the number of initial bytes read out without saving,
	// to flush stale samples from the FPGA FIFO.
	FlushBytes int

	// SliceSize is the number of bytes written to disk at a time.
	SliceSize int

	// PipeCapacity bounds the relay queue between the capture callback and
	// the disk writer. 0 means unconstrained.
	PipeCapacity int

	// ChunkSize bounds the size of one chunk read from the source.
	ChunkSize int

	// Verbose enables per-chunk progress output.
	Verbose bool
}

// DefaultConfig returns a Config with default values. The capture constants
// match the original FIFO grabber defaults.
func DefaultConfig() Config {
	return Config{
		Source:         "-",
		Follow:         false,
		SamplesPerByte: 2,
		FlushBytes:     50000,
		SliceSize:      50,
		PipeCapacity:   0,
		ChunkSize:      16384,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Source == "" {
		return fmt.Errorf("source is required")
	}
	if c.SamplesWanted < 0 {
		return fmt.Errorf("size must not be negative")
	}
	if c.SamplesPerByte <= 0 {
		return fmt.Errorf("samples-per-byte must be positive")
	}
	if c.SamplesWanted > 0 && c.SamplesWanted < int64(c.SamplesPerByte) {
		return fmt.Errorf("invalid number of bytes to transfer")
	}
	if c.FlushBytes < 0 {
		return fmt.Errorf("flush-bytes must not be negative")
	}
	if c.SliceSize <= 0 {
		return fmt.Errorf("slice-size must be positive")
	}
	if c.PipeCapacity < 0 {
		return fmt.Errorf("pipe-capacity must not be negative")
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk-size must be positive")
	}
	return nil
}

// QuotaBytes converts the sample quota to a byte quota using the packing
// ratio. 0 means unlimited.
func (c *Config) QuotaBytes() uint64 {
	if c.SamplesWanted == 0 {
		return 0
	}
	return uint64(c.SamplesWanted) / uint64(c.SamplesPerByte)
}

// configSetter helps apply configuration values while respecting flag
// precedence. It only applies values if the corresponding flag hasn't been
// explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses and sets an int if valid and flag not changed.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	v, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = v
	return nil
}

// setBoolFromString parses and sets a bool if valid and flag not changed.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	v, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = v
	return nil
}

// setSamplesFromString parses a sample count (with optional k/M suffix) and
// sets it if the flag was not changed.
func (s *configSetter) setSamplesFromString(flag, value string, dst *int64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	v, err := ParseSampleCount(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = v
	return nil
}
