package cmd

import (
	"fmt"

	"github.com/redd82/takatrelay/internal/config"
	"github.com/redd82/takatrelay/internal/ffmpeg"
	"github.com/redd82/takatrelay/internal/identity"
	"github.com/redd82/takatrelay/internal/injection"
	"github.com/redd82/takatrelay/internal/link"
	"github.com/redd82/takatrelay/internal/logging"
	"github.com/redd82/takatrelay/internal/relay"
	"github.com/spf13/cobra"
)

type registerOptions struct {
	Config        string `env:"CONFIG"`
	OTP           string `env:"OTP"`
	OTPLength     int    `toml:"otp.length" env:"OTP_LENGTH"`
	Timeout       int64  `toml:"relay.timeout" env:"TIMEOUT"`
	RelayAPI      string `toml:"relay.api" env:"RELAY_API"`
	RelayJWT      string `toml:"relay.jwt" env:"RELAY_JWT"`
	StreamingPort int    `toml:"relay.streaming_port" env:"STREAMING_PORT"`
	WriteConfig   string `toml:"relay.config_file" env:"WRITE_CONFIG"`
	LogLevel      string
	LogJSON       bool
}

// CreateRegisterCmd creates the register command.
func CreateRegisterCmd() *cobra.Command {
	opts := &registerOptions{}

	cmd := &cobra.Command{
		Use:   "register <cameraUID|-> <sourceURL>",
		Short: "Provision a relay path for a camera",
		Long: `Register creates the relay path a camera will be copied into. Pass "-" ` +
			`as the UID to generate a fresh one. By default the path is created ` +
			`through the relay control API; with --write-config it is merged into ` +
			`the relay's YAML configuration file instead.`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadConfig(opts, cmd); err != nil {
				return err
			}
			initLogging(opts.Config, opts.LogLevel, opts.LogJSON)
			logger := logging.GetLogger("register")

			uid := args[0]
			if uid == "-" {
				uid = identity.NewUID()
			}
			source := args[1]

			otp := opts.OTP
			if otp == "" {
				generated, err := identity.NewOTP(opts.OTPLength)
				if err != nil {
					return fmt.Errorf("failed to generate OTP: %w", err)
				}
				otp = generated
			} else if !identity.ValidOTP(otp) {
				return fmt.Errorf("OTP must be %d-%d URL-safe characters", identity.MinOTPLength, identity.MaxOTPLength)
			}

			pathName := uid + "/stream"
			ingest, err := link.New("rtsp", "127.0.0.1", opts.StreamingPort, pathName)
			if err != nil {
				return injection.NewError(injection.ErrCodeValidation, "invalid ingest address", err)
			}

			// The relay runs this command itself when the path initializes,
			// pulling the camera source into the path.
			pathConfig := relay.PathConfig{
				RunOnInit: ffmpeg.BuildRelayCommand(&ffmpeg.Params{
					TimeoutMicros:  opts.Timeout,
					InputURL:       source,
					UID:            uid,
					OTP:            otp,
					OutputProtocol: "rtsp",
					OutputURL:      ingest.String(),
				}),
				RunOnInitRestart: true,
			}

			if opts.WriteConfig != "" {
				cfg, err := relay.LoadFromFile(opts.WriteConfig)
				if err != nil {
					return err
				}
				if err := cfg.AddPath(pathName, pathConfig); err != nil {
					return err
				}
				if err := cfg.WriteToFile(opts.WriteConfig); err != nil {
					return err
				}
				logger.Info("Registered path in config file", "path", pathName, "file", opts.WriteConfig)
			} else {
				client := relay.NewClient(opts.RelayAPI, opts.RelayJWT, logger)
				if err := client.AddPath(cmd.Context(), pathName, pathConfig); err != nil {
					return injection.NewError(injection.ErrCodeRelayAPI, "failed to register path", err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "uid:    %s\n", uid)
			fmt.Fprintf(cmd.OutOrStdout(), "otp:    %s\n", otp)
			fmt.Fprintf(cmd.OutOrStdout(), "stream: rtsp://127.0.0.1:%d/%s\n", opts.StreamingPort, pathName)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "Path to TOML configuration file")
	cmd.Flags().StringVar(&opts.OTP, "otp", "", "One-time password to associate (generated when empty)")
	cmd.Flags().IntVar(&opts.OTPLength, "otp-length", 0, "Length of generated OTP (random in range when 0)")
	cmd.Flags().Int64Var(&opts.Timeout, "timeout", 5000000, "Source read timeout in microseconds for the relay pull command")
	cmd.Flags().StringVar(&opts.RelayAPI, "relay-api", "http://127.0.0.1:9997", "Relay control API base URL")
	cmd.Flags().StringVar(&opts.RelayJWT, "relay-jwt", "", "Bearer token for the relay control API")
	cmd.Flags().IntVar(&opts.StreamingPort, "streaming-port", 8554, "Relay RTSP port used for ingest and the printed stream URL")
	cmd.Flags().StringVar(&opts.WriteConfig, "write-config", "", "Merge the path into this YAML file instead of calling the API")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	cmd.Flags().BoolVar(&opts.LogJSON, "log-json", false, "Emit logs as JSON")

	return cmd
}

// CreateUnregisterCmd creates the unregister command.
func CreateUnregisterCmd() *cobra.Command {
	opts := &registerOptions{}

	cmd := &cobra.Command{
		Use:          "unregister <cameraUID>",
		Short:        "Remove a camera's relay path",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadConfig(opts, cmd); err != nil {
				return err
			}
			initLogging(opts.Config, opts.LogLevel, opts.LogJSON)
			logger := logging.GetLogger("register")

			pathName := args[0] + "/stream"

			if opts.WriteConfig != "" {
				cfg, err := relay.LoadFromFile(opts.WriteConfig)
				if err != nil {
					return err
				}
				cfg.RemovePath(pathName)
				if err := cfg.WriteToFile(opts.WriteConfig); err != nil {
					return err
				}
				logger.Info("Removed path from config file", "path", pathName, "file", opts.WriteConfig)
				return nil
			}

			client := relay.NewClient(opts.RelayAPI, opts.RelayJWT, logger)
			return client.DeletePath(cmd.Context(), pathName)
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "Path to TOML configuration file")
	cmd.Flags().StringVar(&opts.RelayAPI, "relay-api", "http://127.0.0.1:9997", "Relay control API base URL")
	cmd.Flags().StringVar(&opts.RelayJWT, "relay-jwt", "", "Bearer token for the relay control API")
	cmd.Flags().StringVar(&opts.WriteConfig, "write-config", "", "Remove the path from this YAML file instead of calling the API")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	cmd.Flags().BoolVar(&opts.LogJSON, "log-json", false, "Emit logs as JSON")

	return cmd
}
