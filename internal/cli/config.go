package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"pomodoro/internal/core/model"
	"pomodoro/internal/storage"
)

func newConfigCmd(state *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or edit the saved timer settings",
	}
	cmd.AddCommand(
		newConfigGetCmd(state),
		newConfigSetCmd(state),
		newConfigResetCmd(state),
		newConfigPathCmd(state),
	)
	return cmd
}

func newConfigGetCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:       "get [key]",
		Short:     "Print saved settings",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: storage.FieldKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := state.openStore()
			if err != nil {
				return err
			}
			settings, err := store.LoadSettings()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, field := range storage.Fields(settings) {
				if len(args) == 0 {
					fmt.Fprintf(out, "%s: %s\n", field.Key, field.Value)
					continue
				}
				if field.Key == storage.NormalizeKey(args[0]) {
					fmt.Fprintln(out, field.Value)
					return nil
				}
			}
			if len(args) > 0 {
				return fmt.Errorf("unknown setting %q", args[0])
			}
			return nil
		},
	}
}

func newConfigSetCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "set key value [key value...]",
		Short: "Change saved settings, e.g. 'config set working 25m cycle_count 4'",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || len(args)%2 != 0 {
				return errors.New("expected key value pairs")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := state.openStore()
			if err != nil {
				return err
			}
			settings, err := store.LoadSettings()
			if err != nil {
				return err
			}
			for i := 0; i < len(args); i += 2 {
				if err := storage.SetField(&settings, args[i], args[i+1]); err != nil {
					return err
				}
			}
			if err := store.SaveSettings(settings); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", store.Path())
			return nil
		},
	}
}

func newConfigResetCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Overwrite saved durations with the factory values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := state.openStore()
			if err != nil {
				return err
			}
			if err := store.Save(model.FactoryTimerConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "factory durations saved to %s\n", store.Path())
			return nil
		},
	}
}

func newConfigPathCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := state.openStore()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), store.Path())
			return nil
		},
	}
}
