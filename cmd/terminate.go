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

type terminateOptions struct {
	Config   string `env:"CONFIG"`
	JWTUser  string `toml:"callback.jwt_user" env:"JWT_USER"`
	JWTToken string `toml:"callback.jwt_token" env:"JWT_TOKEN"`
	LogLevel string
	LogJSON  bool
}

// CreateTerminateCmd creates the terminate command.
func CreateTerminateCmd() *cobra.Command {
	opts := &terminateOptions{}

	cmd := &cobra.Command{
		Use:   "terminate <cameraUID> <otp> <subprocessID> <callbackURL> [jwtUser] [jwtToken]",
		Short: "Stop a stream copy subprocess and report it gone",
		Long: `Terminate signals the FFmpeg subprocess identified by its process ID ` +
			`and posts a "not-ready" notification to the callback URL. The ` +
			`notification is sent even when the process is already gone, and its ` +
			`outcome never fails the command.`,
		Args:         cobra.RangeArgs(4, 6),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadConfig(opts, cmd); err != nil {
				return err
			}
			initLogging(opts.Config, opts.LogLevel, opts.LogJSON)
			logger := logging.GetLogger("terminate")

			pid, err := strconv.Atoi(args[2])
			if err != nil || pid <= 0 {
				return fmt.Errorf("subprocessID must be a positive integer, got %q", args[2])
			}

			req := injection.Request{
				CameraUID:   args[0],
				OTP:         args[1],
				PID:         pid,
				CallbackURL: args[3],
				JWTUser:     opts.JWTUser,
				JWTToken:    opts.JWTToken,
			}
			if len(args) > 4 {
				req.JWTUser = args[4]
			}
			if len(args) > 5 {
				req.JWTToken = args[5]
			}

			terminator := injection.NewTerminator(notify.NewClient(logger), logger)
			result, err := terminator.Terminate(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "pid:            %d (%s)\n", req.PID, result.Outcome)
			fmt.Fprintf(cmd.OutOrStdout(), "virtual camera: %s\n", result.VirtualCameraURL)
			fmt.Fprintf(cmd.OutOrStdout(), "callback:       %s (status %d)\n", req.CallbackURL, result.CallbackStatus)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "Path to TOML configuration file")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	cmd.Flags().BoolVar(&opts.LogJSON, "log-json", false, "Emit logs as JSON")

	return cmd
}
