package main

import (
	"fmt"
	"os"

	"github.com/redd82/takatrelay/cmd"
	"github.com/redd82/takatrelay/internal/version"
	"github.com/spf13/cobra"
)

func main() {
	info := version.Get()

	root := &cobra.Command{
		Use:   "takatrelay",
		Short: "Relay-side agent for camera stream injection",
		Long: `takatrelay starts and stops FFmpeg processes that copy a camera feed ` +
			`into a media relay server, reports stream lifecycle transitions to a ` +
			`callback endpoint, and provisions relay paths through the control API.`,
		Version: info.Version,
		// Subcommands only; running the bare binary prints usage.
		SilenceUsage: true,
	}
	root.SetVersionTemplate(fmt.Sprintf(
		"takatrelay %s (commit %s, built %s, %s)\n",
		info.Version, info.GitCommit, info.BuildDate, info.Platform,
	))

	root.AddCommand(cmd.CreateLaunchCmd())
	root.AddCommand(cmd.CreateTerminateCmd())
	root.AddCommand(cmd.CreateRunCmd())
	root.AddCommand(cmd.CreateRegisterCmd())
	root.AddCommand(cmd.CreateUnregisterCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
