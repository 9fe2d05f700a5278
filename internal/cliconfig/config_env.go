package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables
// (GRABBER_*). It respects flags that have been explicitly set (changed
// map). Returns an error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("out", os.Getenv("GRABBER_OUT_PATH"), &cfg.OutPath)
	s.setString("source", os.Getenv("GRABBER_SOURCE"), &cfg.Source)

	if err := s.setSamplesFromString("size", os.Getenv("GRABBER_SIZE"), &cfg.SamplesWanted); err != nil {
		return err
	}

	if err := s.setIntFromString("samples-per-byte", os.Getenv("GRABBER_SAMPLES_PER_BYTE"), &cfg.SamplesPerByte); err != nil {
		return err
	}
	if err := s.setIntFromString("flush-bytes", os.Getenv("GRABBER_FLUSH_BYTES"), &cfg.FlushBytes); err != nil {
		return err
	}
	if err := s.setIntFromString("slice-size", os.Getenv("GRABBER_SLICE_SIZE"), &cfg.SliceSize); err != nil {
		return err
	}
	if err := s.setIntFromString("pipe-capacity", os.Getenv("GRABBER_PIPE_CAPACITY"), &cfg.PipeCapacity); err != nil {
		return err
	}
	if err := s.setIntFromString("chunk-size", os.Getenv("GRABBER_CHUNK_SIZE"), &cfg.ChunkSize); err != nil {
		return err
	}

	if err := s.setBoolFromString("follow", os.Getenv("GRABBER_FOLLOW"), &cfg.Follow); err != nil {
		return err
	}
	if err := s.setBoolFromString("verbose", os.Getenv("GRABBER_VERBOSE"), &cfg.Verbose); err != nil {
		return err
	}

	return nil
}
