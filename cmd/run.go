package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/redd82/takatrelay/internal/config"
	"github.com/redd82/takatrelay/internal/ffmpeg"
	"github.com/redd82/takatrelay/internal/injection"
	"github.com/redd82/takatrelay/internal/link"
	"github.com/redd82/takatrelay/internal/logging"
	"github.com/redd82/takatrelay/internal/process"
	"github.com/spf13/cobra"
)

// CreateRunCmd creates the run command: the same copy pipeline as launch, but
// supervised in the foreground with the subprocess output folded into the
// structured log. Useful under systemd or when debugging a camera feed.
func CreateRunCmd() *cobra.Command {
	opts := &launchOptions{}

	cmd := &cobra.Command{
		Use:   "run <timeout> <inputURL> <outputProtocol> <relayPath> <cameraUID> <otp> <relayProtocol> <relayHost> [relayPort]",
		Short: "Run a stream copy in the foreground",
		Long: `Run builds the same FFmpeg copy command as launch but stays attached: ` +
			`output is parsed into the structured log, SIGINT/SIGTERM shut the ` +
			`subprocess down gracefully, and the command exits with the subprocess ` +
			`exit code. No callback notification is sent.`,
		Args:         cobra.RangeArgs(8, 9),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadConfig(opts, cmd); err != nil {
				return err
			}
			initLogging(opts.Config, opts.LogLevel, opts.LogJSON)
			logger := logging.GetLogger("run")

			timeout, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("timeout must be an integer (microseconds): %w", err)
			}
			relayPort := opts.RelayPort
			if len(args) > 8 {
				relayPort, err = strconv.Atoi(args[8])
				if err != nil {
					return fmt.Errorf("relayPort must be an integer: %w", err)
				}
			}

			if !link.ValidProtocol(args[2]) || !link.ValidProtocol(args[6]) {
				return injection.NewError(injection.ErrCodeValidation,
					fmt.Sprintf("protocol must be one of %v", link.AllowedProtocols), nil)
			}
			output, err := link.New(args[2], "127.0.0.1", relayPort, args[3])
			if err != nil {
				return injection.NewError(injection.ErrCodeValidation, "invalid output address", err)
			}

			command := ffmpeg.BuildRelayCommand(&ffmpeg.Params{
				TimeoutMicros:  timeout,
				InputURL:       args[1],
				UID:            args[4],
				OTP:            args[5],
				LinkedDevice:   opts.LinkedDevice,
				OutputProtocol: args[2],
				OutputURL:      output.String(),
			})

			runner := process.NewRunner(args[4], command, logger)
			runner.SetLogParser(logging.GetLogger("ffmpeg"), ffmpeg.ParseLogLevel)
			os.Exit(runner.Run())
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "Path to TOML configuration file")
	cmd.Flags().IntVar(&opts.RelayPort, "relay-port", 0, "Relay server port when not given positionally")
	cmd.Flags().StringVar(&opts.LinkedDevice, "linked-device", "", "Device UID stamped into the stream metadata")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	cmd.Flags().BoolVar(&opts.LogJSON, "log-json", false, "Emit logs as JSON")

	return cmd
}
