package cliconfig

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
	if cfg.FlushBytes != 50000 {
		t.Errorf("FlushBytes = %d, want 50000", cfg.FlushBytes)
	}
	if cfg.SamplesPerByte != 2 {
		t.Errorf("SamplesPerByte = %d, want 2", cfg.SamplesPerByte)
	}
	if cfg.SliceSize != 50 {
		t.Errorf("SliceSize = %d, want 50", cfg.SliceSize)
	}
	if cfg.PipeCapacity != 0 {
		t.Errorf("PipeCapacity = %d, want 0 (unconstrained)", cfg.PipeCapacity)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"with size and output", func(c *Config) {
			c.SamplesWanted = 16368000
			c.OutPath = "samples.bin"
		}, false},
		{"missing source", func(c *Config) { c.Source = "" }, true},
		{"negative size", func(c *Config) { c.SamplesWanted = -1 }, true},
		{"size below packing ratio", func(c *Config) { c.SamplesWanted = 1 }, true},
		{"zero samples per byte", func(c *Config) { c.SamplesPerByte = 0 }, true},
		{"negative flush bytes", func(c *Config) { c.FlushBytes = -1 }, true},
		{"zero slice size", func(c *Config) { c.SliceSize = 0 }, true},
		{"negative pipe capacity", func(c *Config) { c.PipeCapacity = -1 }, true},
		{"zero chunk size", func(c *Config) { c.ChunkSize = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_QuotaBytes(t *testing.T) {
	tests := []struct {
		name           string
		samplesWanted  int64
		samplesPerByte int
		want           uint64
	}{
		{"unlimited", 0, 2, 0},
		{"even division", 16368000, 2, 8184000},
		{"rounds down", 5, 2, 2},
		{"one sample per byte", 1000, 1, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.SamplesWanted = tt.samplesWanted
			cfg.SamplesPerByte = tt.samplesPerByte
			if got := cfg.QuotaBytes(); got != tt.want {
				t.Errorf("QuotaBytes() = %d, want %d", got, tt.want)
			}
		})
	}
}
