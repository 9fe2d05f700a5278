package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	grabber "github.com/mfkiwl/piksi-sample-grabber"
	"github.com/mfkiwl/piksi-sample-grabber/internal/cliconfig"
	logAdapter "github.com/mfkiwl/piksi-sample-grabber/pkg/log"
)

const helpDescription = `
Stream raw samples from the MAX2769 RF front end for post-processing and
analysis.

The capture source is a file or named pipe fed by the transport process
(or - for stdin). Samples are checked for the FPGA FIFO overflow flag and
written to the given file through a buffered relay so the acquisition path
never waits on disk.

Note: set_fifo_mode must be run before sample-grabber to configure the USB
hardware on the device for FIFO mode. Run set_uart_mode afterwards to set
the device back to UART mode for normal operation.
`

var longHelp = strings.TrimSpace(helpDescription)

var exampleUsage = strings.TrimSpace(`
  sample-grabber --source /tmp/sample-fifo --follow -v samples.bin
  sample-grabber --source capture.raw -s 16M samples.bin
  sample-grabber --config $HOME/.sample-grabber/config.toml samples.bin
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string
	var sizeArg string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "sample-grabber [filename]",
		Short:   "Stream raw samples from the MAX2769 RF front end to a file",
		Long:    longHelp,
		Example: exampleUsage,
		Args:    cobra.MaximumNArgs(1),
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default $HOME/.sample-grabber/config.toml),
			// then environment, then flag overrides.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// Apply environment variables (GRABBER_*)
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			// The --size flag is a string so it can carry k/M suffixes.
			if changed["size"] {
				samples, err := cliconfig.ParseSampleCount(sizeArg)
				if err != nil {
					return fmt.Errorf("invalid size argument: %w", err)
				}
				cfg.SamplesWanted = samples
			}

			// Positional argument: the dump file.
			if len(args) == 1 {
				cfg.OutPath = args[0]
			} else if cfg.OutPath == "" && cfg.Verbose {
				log.Info().Msg("no file name given, will not save samples to file")
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			log.Info().Interface("config", cfg).Msg("configuration")

			// SIGINT/SIGTERM end the capture cleanly through the drain path.
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			zerologAdapter := logAdapter.NewZerologAdapterWithLogger(log)
			if err := grabber.Run(ctx, cfg, grabber.WithLogger(zerologAdapter)); err != nil {
				return err
			}

			if cfg.Verbose {
				log.Info().Msg("capture ended")
			}
			return nil
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.sample-grabber/config.toml)")
	root.Flags().StringVarP(&sizeArg, "size", "s", "", "number of samples to collect before exiting (may be suffixed with k or M)")
	root.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "print per-chunk progress output")

	root.Flags().StringVar(&cfg.Source, "source", cfg.Source, "acquisition source: file or named pipe, - for stdin")
	root.Flags().BoolVar(&cfg.Follow, "follow", cfg.Follow, "keep reading the source as it grows")

	root.Flags().IntVar(&cfg.FlushBytes, "flush-bytes", cfg.FlushBytes, "initial bytes discarded to flush the FPGA FIFO")
	root.Flags().IntVar(&cfg.SliceSize, "slice-size", cfg.SliceSize, "bytes written to disk at a time")
	root.Flags().IntVar(&cfg.PipeCapacity, "pipe-capacity", cfg.PipeCapacity, "relay queue capacity in bytes (0 = unconstrained)")
	root.Flags().IntVar(&cfg.SamplesPerByte, "samples-per-byte", cfg.SamplesPerByte, "sample packing ratio of the source hardware")
	root.Flags().IntVar(&cfg.ChunkSize, "chunk-size", cfg.ChunkSize, "maximum bytes read from the source at a time")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("sample-grabber")
		os.Exit(1)
	}
}
