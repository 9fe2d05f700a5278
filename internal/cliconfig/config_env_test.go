package cliconfig

import (
	"os"
	"testing"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"GRABBER_OUT_PATH":   "/env/samples.bin",
				"GRABBER_SOURCE":     "/env/fifo",
				"GRABBER_SIZE":       "2k",
				"GRABBER_SLICE_SIZE": "100",
				"GRABBER_FOLLOW":     "true",
				"GRABBER_VERBOSE":    "true",
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				OutPath:       "/env/samples.bin",
				Source:        "/env/fifo",
				SamplesWanted: 2000,
				SliceSize:     100,
				Follow:        true,
				Verbose:       true,
			},
			wantErr: false,
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				"GRABBER_SOURCE": "/env/fifo",
				"GRABBER_SIZE":   "2k",
			},
			changed: map[string]bool{"source": true, "size": true},
			initial: Config{Source: "-"},
			expected: Config{
				Source: "-",
			},
			wantErr: false,
		},
		{
			name: "returns error for invalid size",
			envVars: map[string]string{
				"GRABBER_SIZE": "lots",
			},
			changed: map[string]bool{},
			initial: Config{},
			wantErr: true,
		},
		{
			name: "returns error for invalid int",
			envVars: map[string]string{
				"GRABBER_SLICE_SIZE": "not-a-number",
			},
			changed: map[string]bool{},
			initial: Config{},
			wantErr: true,
		},
		{
			name: "returns error for invalid bool",
			envVars: map[string]string{
				"GRABBER_VERBOSE": "yep",
			},
			changed: map[string]bool{},
			initial: Config{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}
			defer func() {
				for k := range tt.envVars {
					os.Unsetenv(k)
				}
			}()

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyEnvConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && cfg != tt.expected {
				t.Errorf("config = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}
