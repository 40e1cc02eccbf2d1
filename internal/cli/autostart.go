package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"pomodoro/internal/config"
	"pomodoro/internal/platform"
)

func newAutostartCmd() *cobra.Command {
	service := platform.NewService()

	cmd := &cobra.Command{
		Use:   "autostart",
		Short: "Manage starting the tray at login",
	}

	enable := &cobra.Command{
		Use:   "enable",
		Short: "Start the tray at login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			execPath, err := os.Executable()
			if err != nil {
				return fmt.Errorf("resolve executable: %w", err)
			}
			if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
				execPath = resolved
			}
			if err := service.EnableAutostart(config.AppName, execPath, "tray"); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "autostart enabled")
			return nil
		},
	}

	disable := &cobra.Command{
		Use:   "disable",
		Short: "Stop starting the tray at login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := service.DisableAutostart(config.AppName); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "autostart disabled")
			return nil
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Report whether autostart is enabled",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enabled, err := service.AutostartEnabled(config.AppName)
			if err != nil {
				return err
			}
			label := "disabled"
			if enabled {
				label = "enabled"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "autostart %s\n", label)
			return nil
		},
	}

	cmd.AddCommand(enable, disable, status)
	return cmd
}
