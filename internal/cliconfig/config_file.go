package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but keeps the sample count a string so TOML
// files can use the same k/M suffixes as the --size flag.
type FileConfig struct {
	OutPath        string `toml:"out_path"`
	Source         string `toml:"source"`
	Follow         *bool  `toml:"follow"`
	Size           string `toml:"size"`
	SamplesPerByte int    `toml:"samples_per_byte"`
	FlushBytes     int    `toml:"flush_bytes"`
	SliceSize      int    `toml:"slice_size"`
	PipeCapacity   int    `toml:"pipe_capacity"`
	ChunkSize      int    `toml:"chunk_size"`
	Verbose        *bool  `toml:"verbose"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.sample-grabber/config.toml if the home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".sample-grabber", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("out", fc.OutPath, &cfg.OutPath)
	s.setString("source", fc.Source, &cfg.Source)
	s.setBool("follow", fc.Follow, &cfg.Follow)

	if err := s.setSamplesFromString("size", fc.Size, &cfg.SamplesWanted); err != nil {
		return err
	}

	s.setInt("samples-per-byte", fc.SamplesPerByte, &cfg.SamplesPerByte)
	s.setInt("flush-bytes", fc.FlushBytes, &cfg.FlushBytes)
	s.setInt("slice-size", fc.SliceSize, &cfg.SliceSize)
	s.setInt("pipe-capacity", fc.PipeCapacity, &cfg.PipeCapacity)
	s.setInt("chunk-size", fc.ChunkSize, &cfg.ChunkSize)

	s.setBool("verbose", fc.Verbose, &cfg.Verbose)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
