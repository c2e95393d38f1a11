// Package cmd wires the command-line surface to the internal packages.
package cmd

import (
	"fmt"
	"strconv"

	"github.com/redd82/takatrelay/internal/config"
	"github.com/redd82/takatrelay/internal/injection"
	"github.com/redd82/takatrelay/internal/logging"
	"github.com/redd82/takatrelay/internal/notify"
	"github.com/spf13/cobra"
)

// launchOptions holds everything not supplied positionally. Positional
// arguments, when present, win over all of these.
type launchOptions struct {
	Config           string `env:"CONFIG"`
	RelayPort        int    `toml:"relay.port" env:"RELAY_PORT"`
	CallbackProtocol string `toml:"callback.protocol" env:"CALLBACK_PROTOCOL"`
	CallbackHost     string `toml:"callback.host" env:"CALLBACK_HOST"`
	CallbackPort     int    `toml:"callback.port" env:"CALLBACK_PORT"`
	JWTUser          string `toml:"callback.jwt_user" env:"JWT_USER"`
	JWTToken         string `toml:"callback.jwt_token" env:"JWT_TOKEN"`
	LinkedDevice     string `env:"LINKED_DEVICE"`
	LogLevel         string
	LogJSON          bool
}

// CreateLaunchCmd creates the launch command.
func CreateLaunchCmd() *cobra.Command {
	opts := &launchOptions{}

	cmd := &cobra.Command{
		Use:   "launch <timeout> <inputURL> <outputProtocol> <relayPath> <cameraUID> <otp> <relayProtocol> <relayHost> [relayPort] [callbackProtocol] [callbackHost] [callbackPort] [jwtUser] [jwtToken]",
		Short: "Start a stream copy subprocess and report it ready",
		Long: `Launch validates its arguments, starts a detached FFmpeg process that ` +
			`copies the input stream to the relay server, and posts a "ready" ` +
			`notification with the new process ID to the callback endpoint. The ` +
			`subprocess outlives this command.`,
		Args:         cobra.RangeArgs(8, 14),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadConfig(opts, cmd); err != nil {
				return err
			}
			initLogging(opts.Config, opts.LogLevel, opts.LogJSON)
			logger := logging.GetLogger("launch")

			timeout, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("timeout must be an integer (microseconds): %w", err)
			}

			job := injection.Job{
				TimeoutMicros:    timeout,
				InputURL:         args[1],
				OutputProtocol:   args[2],
				RelayPath:        args[3],
				CameraUID:        args[4],
				OTP:              args[5],
				LinkedDevice:     opts.LinkedDevice,
				RelayProtocol:    args[6],
				RelayHost:        args[7],
				RelayPort:        opts.RelayPort,
				CallbackProtocol: opts.CallbackProtocol,
				CallbackHost:     opts.CallbackHost,
				CallbackPort:     opts.CallbackPort,
				JWTUser:          opts.JWTUser,
				JWTToken:         opts.JWTToken,
			}
			if len(args) > 8 {
				port, err := strconv.Atoi(args[8])
				if err != nil {
					return fmt.Errorf("relayPort must be an integer: %w", err)
				}
				job.RelayPort = port
			}
			if len(args) > 9 {
				job.CallbackProtocol = args[9]
			}
			if len(args) > 10 {
				job.CallbackHost = args[10]
			}
			if len(args) > 11 {
				port, err := strconv.Atoi(args[11])
				if err != nil {
					return fmt.Errorf("callbackPort must be an integer: %w", err)
				}
				job.CallbackPort = port
			}
			if len(args) > 12 {
				job.JWTUser = args[12]
			}
			if len(args) > 13 {
				job.JWTToken = args[13]
			}

			launcher := injection.NewLauncher(notify.NewClient(logger), logger)
			result, err := launcher.Launch(cmd.Context(), job)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "input:          %s\n", job.InputURL)
			fmt.Fprintf(cmd.OutOrStdout(), "output:         %s\n", result.OutputURL)
			fmt.Fprintf(cmd.OutOrStdout(), "virtual camera: %s\n", result.VirtualCameraURL)
			fmt.Fprintf(cmd.OutOrStdout(), "callback:       %s (status %d)\n", result.CallbackURL, result.CallbackStatus)
			fmt.Fprintf(cmd.OutOrStdout(), "pid:            %d\n", result.PID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "Path to TOML configuration file")
	cmd.Flags().IntVar(&opts.RelayPort, "relay-port", 0, "Relay server port when not given positionally")
	cmd.Flags().StringVar(&opts.CallbackProtocol, "callback-protocol", "http", "Callback protocol when not given positionally")
	cmd.Flags().StringVar(&opts.CallbackHost, "callback-host", "", "Callback host when not given positionally")
	cmd.Flags().IntVar(&opts.CallbackPort, "callback-port", 0, "Callback port when not given positionally")
	cmd.Flags().StringVar(&opts.LinkedDevice, "linked-device", "", "Device UID stamped into the stream metadata")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	cmd.Flags().BoolVar(&opts.LogJSON, "log-json", false, "Emit logs as JSON")

	return cmd
}

// initLogging loads the [logging] config section and applies CLI overrides.
func initLogging(configPath, level string, jsonFormat bool) {
	cfg := config.LoadLoggingConfig(configPath)
	if level != "" {
		cfg.Level = level
	}
	if jsonFormat {
		cfg.Format = "json"
	}
	logging.Initialize(cfg)
}
