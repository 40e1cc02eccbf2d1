package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pomodoro/internal/ui/tui"
)

var errTerminalRequired = errors.New("tui needs an interactive terminal, try the shell command")

func newTUICmd(state *rootState) *cobra.Command {
	var inline bool
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the timer in a full-screen terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
				return errTerminalRequired
			}
			store, err := state.openStore()
			if err != nil {
				return err
			}
			// Log lines would tear the alternate screen.
			if state.options.LogFile == "" && !inline {
				silenceLogs()
			}
			return tui.Run(cmd.Context(), store, tui.Options{
				Bell:       state.bell(),
				BellOutput: cmd.ErrOrStderr(),
				AltScreen:  !inline,
			}, state.sessionOptions()...)
		},
	}
	cmd.Flags().BoolVar(&inline, "inline", false, "render below the prompt instead of on the alternate screen")
	return cmd
}
