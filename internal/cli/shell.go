package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/shlex"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"pomodoro/internal/core/notifier"
	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/logging"
	"pomodoro/internal/platform"
	"pomodoro/internal/session"
)

var errExit = errors.New("exit")

func newShellCmd(state *rootState) *cobra.Command {
	var prompt string
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Drive a live timer from an interactive shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd.Context(), state, prompt)
		},
	}
	cmd.Flags().StringVar(&prompt, "prompt", "pomodoro> ", "shell prompt")
	return cmd
}

func runShell(ctx context.Context, state *rootState, prompt string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     filepath.Join(os.TempDir(), "pomodoro-shell.history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    shellCompleter(),
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	store, err := state.openStore()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	out := rl.Stdout()
	sess, err := session.New(store, newShellPresenter(ctx, out, state.bell()), state.sessionOptions()...)
	if err != nil {
		return err
	}
	stop := serve(ctx, sess)
	defer stop()

	sh := &shell{session: sess, out: out, verbosity: state.verbosity}
	fmt.Fprintln(out, "Interactive shell. Type 'help' for commands, 'exit' to quit.")

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return err
		}

		tokens, err := shlex.Split(line)
		if err != nil {
			fmt.Fprintf(out, "parse error: %v\n", err)
			continue
		}
		if err := sh.execute(tokens); err != nil {
			if errors.Is(err, errExit) {
				fmt.Fprintln(out, "Bye!")
				return nil
			}
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}

func shellCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("start"),
		readline.PcItem("pause"),
		readline.PcItem("stop"),
		readline.PcItem("status"),
		readline.PcItem("set",
			readline.PcItem("work"),
			readline.PcItem("short"),
			readline.PcItem("long"),
		),
		readline.PcItem("cycles"),
		readline.PcItem("sound",
			readline.PcItem("on"),
			readline.PcItem("off"),
		),
		readline.PcItem("reload"),
		readline.PcItem("reset"),
		readline.PcItem("save"),
		readline.PcItem("log",
			readline.PcItem("--level"),
			readline.PcItem("--show"),
		),
		readline.PcItem("help"),
		readline.PcItem("exit"),
	)
}

// shellSession is the part of a session the shell drives.
type shellSession interface {
	Snapshot() (session.Status, error)
	StartTimer() error
	PauseTimer() error
	StopTimer() error
	SetWorkingDuration(hours, minutes, seconds int) error
	SetShortRestDuration(hours, minutes, seconds int) error
	SetLongRestDuration(hours, minutes, seconds int) error
	SetCycleCount(count int) error
	SetSoundEnabled(enabled bool) error
	ReloadConfig() error
	ResetConfig() error
	SaveConfig() error
}

type shell struct {
	session   shellSession
	out       io.Writer
	verbosity int
}

func (sh *shell) execute(tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}
	name, args := strings.ToLower(tokens[0]), tokens[1:]

	switch name {
	case "exit", "quit":
		return errExit
	case "help":
		printShellHelp(sh.out)
		return nil
	case "status":
		return sh.printStatus()
	case "start":
		return sh.session.StartTimer()
	case "pause":
		return sh.session.PauseTimer()
	case "stop":
		return sh.session.StopTimer()
	case "set":
		return sh.setDuration(args)
	case "cycles":
		if len(args) != 1 {
			return errors.New("usage: cycles N")
		}
		count, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("cycles: %q is not a number", args[0])
		}
		return sh.session.SetCycleCount(count)
	case "sound":
		if len(args) != 1 {
			return errors.New("usage: sound on|off")
		}
		switch strings.ToLower(args[0]) {
		case "on":
			return sh.session.SetSoundEnabled(true)
		case "off":
			return sh.session.SetSoundEnabled(false)
		}
		return fmt.Errorf("sound: expected on or off, got %q", args[0])
	case "reload":
		return sh.report(sh.session.ReloadConfig(), "configuration reloaded")
	case "reset":
		return sh.report(sh.session.ResetConfig(), "factory configuration restored (not saved)")
	case "save":
		return sh.report(sh.session.SaveConfig(), "configuration saved")
	case "log":
		return sh.handleLog(args)
	}
	return fmt.Errorf("unknown command %q (try 'help')", name)
}

func (sh *shell) report(err error, message string) error {
	if err != nil {
		return err
	}
	fmt.Fprintln(sh.out, message)
	return nil
}

func (sh *shell) setDuration(args []string) error {
	if len(args) != 4 {
		return errors.New("usage: set work|short|long H M S")
	}
	values := make([]int, 3)
	for i, raw := range args[1:] {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("set: %q is not a number", raw)
		}
		values[i] = value
	}

	switch strings.ToLower(args[0]) {
	case "work", "working":
		return sh.session.SetWorkingDuration(values[0], values[1], values[2])
	case "short":
		return sh.session.SetShortRestDuration(values[0], values[1], values[2])
	case "long":
		return sh.session.SetLongRestDuration(values[0], values[1], values[2])
	}
	return fmt.Errorf("set: unknown phase %q (work, short or long)", args[0])
}

func (sh *shell) printStatus() error {
	status, err := sh.session.Snapshot()
	if err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "%s  %s  %s\n", status.State, status.TimerText, status.PhaseLabel())
	sound := "off"
	if status.SoundEnabled {
		sound = "on"
	}
	fmt.Fprintf(sh.out, "work %s  short %s  long %s  cycles %d  sound %s\n",
		status.Config.Working, status.Config.ShortRest, status.Config.LongRest, status.Config.CycleCount, sound)
	return nil
}

func (sh *shell) handleLog(args []string) error {
	fs := pflag.NewFlagSet("log", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var vcount int
	var level string
	var show bool
	fs.CountVarP(&vcount, "verbose", "v", "increase verbosity (-v... up to 4)")
	fs.StringVar(&level, "level", "", "set level (error|warn|info|debug|trace)")
	fs.BoolVarP(&show, "show", "s", false, "show the current level")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	switch {
	case level != "":
		_, count, err := logging.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("log: %w", err)
		}
		sh.verbosity = count
	case vcount > 0:
		sh.verbosity = vcount
	default:
		fmt.Fprintf(sh.out, "log level: %s (-v x%d)\n", logging.LevelName(), logging.Verbosity())
		return nil
	}

	logging.SetVerbosity(sh.verbosity)
	fmt.Fprintf(sh.out, "log level set to %s (-v x%d)\n", logging.LevelName(), logging.Verbosity())
	return nil
}

func printShellHelp(out io.Writer) {
	fmt.Fprintln(out, `Commands:
  start | pause | stop        control the timer
  status                      show the timer and its configuration
  set work|short|long H M S   change a phase duration (while stopped)
  cycles N                    working phases before a long rest
  sound on|off                toggle the notification sound
  reload                      discard changes and reload the saved configuration
  reset                       restore factory durations
  save                        persist the current configuration
  log -vv | --level debug     change log verbosity
  log --show                  show the current log level
  exit | quit                 leave the shell`)
}

// shellPresenter prints notifications above the prompt.
type shellPresenter struct {
	ctx   context.Context
	out   io.Writer
	bell  platform.SoundPlayer
	state timekeeper.State
}

func newShellPresenter(ctx context.Context, out io.Writer, bell platform.SoundPlayer) *shellPresenter {
	return &shellPresenter{ctx: ctx, out: out, bell: bell}
}

// ShowStatus reports state transitions only; ticks are too chatty for a shell.
func (p *shellPresenter) ShowStatus(status session.Status) {
	if status.State == p.state {
		return
	}
	p.state = status.State
	fmt.Fprintf(p.out, "[%s] %s\n", status.State, status.PhaseLabel())
}

func (p *shellPresenter) ShowNotification(notification notifier.Notification) {
	fmt.Fprintf(p.out, ">> %s\n", notification.Text)
}

func (p *shellPresenter) PlaySound(cue string) {
	if p.bell == nil {
		fmt.Fprint(p.out, "\a")
		return
	}
	go func() {
		if err := p.bell.Play(p.ctx); err != nil {
			logging.Warnf("play %s: %v", cue, err)
		}
	}()
}
