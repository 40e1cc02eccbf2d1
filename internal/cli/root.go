// Package cli is the command-line entry point. It resolves options, configures
// logging and starts one of the session hosts.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pomodoro/internal/audio"
	"pomodoro/internal/config"
	"pomodoro/internal/logging"
	"pomodoro/internal/platform"
	"pomodoro/internal/session"
	"pomodoro/internal/storage"
)

// rootState is shared by the root command and its subcommands.
type rootState struct {
	viper     *viper.Viper
	options   config.Options
	verbosity int
	closeLog  func() error
}

// NewRootCmd creates the root command. Without a subcommand it starts the tray.
func NewRootCmd() *cobra.Command {
	state := &rootState{viper: config.New(), options: config.Default()}

	cmd := &cobra.Command{
		Use:               config.AppName,
		Short:             "Pomodoro timer for the system tray and the terminal",
		Long:              "Counts down working and resting phases, notifies at every phase change and\nremembers its durations between runs.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: state.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return state.teardown()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTray(cmd.Context(), state)
		},
	}

	config.RegisterFlags(cmd.PersistentFlags())
	cmd.PersistentFlags().CountVarP(&state.verbosity, "verbose", "v", "increase log verbosity (-v, -vv, ... up to 4)")

	cmd.AddCommand(
		newTrayCmd(state),
		newTUICmd(state),
		newShellCmd(state),
		newConfigCmd(state),
		newAutostartCmd(),
	)
	return cmd
}

// Execute runs the root command with args.
func Execute(ctx context.Context, args []string) error {
	root := NewRootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (state *rootState) setup(cmd *cobra.Command, args []string) error {
	if err := config.BindFlags(state.viper, cmd.Flags()); err != nil {
		return err
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	if err := config.ReadFile(state.viper, path); err != nil {
		return err
	}
	options, err := config.Load(state.viper)
	if err != nil {
		return err
	}
	state.options = options

	closeLog, err := config.ApplyLogging(options, state.verbosity)
	if err != nil {
		return err
	}
	state.closeLog = closeLog
	logging.Debugf("options: settings=%q level=%s tick=%s", options.SettingsPath, logging.LevelName(), options.TickInterval)
	return nil
}

func (state *rootState) teardown() error {
	if state.closeLog == nil {
		return nil
	}
	err := state.closeLog()
	state.closeLog = nil
	return err
}

func (state *rootState) openStore() (*storage.Store, error) {
	store, err := storage.NewStore(config.AppName, state.options.SettingsPath)
	if err != nil {
		return nil, fmt.Errorf("open settings: %w", err)
	}
	logging.Debugf("settings file: %s", store.Path())
	return store, nil
}

func (state *rootState) sessionOptions() []session.Option {
	return []session.Option{session.WithTickInterval(state.options.TickInterval)}
}

// bell prefers the configured sound command, then the platform's player, then
// the synthesized bell. It returns nil when none of them works; notifications
// stay silent then.
func (state *rootState) bell() platform.SoundPlayer {
	player, err := platform.NewBellPlayer(state.options.SoundCommand)
	if err == nil {
		return player
	}
	if !errors.Is(err, platform.ErrNoSoundPlayer) || strings.TrimSpace(state.options.SoundCommand) != "" {
		logging.Warnf("notification sound unavailable: %v", err)
		return nil
	}

	synth, synthErr := audio.NewBell()
	if synthErr != nil {
		logging.Warnf("notification sound unavailable: %v; %v", err, synthErr)
		return nil
	}
	logging.Debugf("no sound command found, using the synthesized bell")
	return synth
}

// serve runs sess in the background. The returned stop cancels the loop and
// waits until it has disarmed its ticker.
func serve(ctx context.Context, sess *session.Session) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	go func() {
		if err := sess.Run(ctx); err != nil {
			logging.Errorf("session: %v", err)
		}
	}()
	return func() {
		cancel()
		<-sess.Done()
	}
}

func silenceLogs() {
	logging.SetOutput(io.Discard)
}
