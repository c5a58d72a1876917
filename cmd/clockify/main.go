package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"clockify-cli/internal/app"
	"clockify-cli/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	c := &cli{out: stdout, errOut: stderr}
	root := c.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		c.printError(err)
		return 1
	}
	return 0
}

// cli carries what every subcommand shares. app and log are built in the
// root's PersistentPreRunE.
type cli struct {
	out    io.Writer
	errOut io.Writer
	debug  bool

	log *slog.Logger
	app *app.App
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "clockify",
		Short:         "Track time in Clockify from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
	}
	root.PersistentFlags().BoolVarP(&c.debug, "debug", "d", false, "Enable verbose debug output")

	root.AddCommand(c.authCmd())
	root.AddCommand(c.timerCmd())
	root.AddCommand(c.entryCmd())
	root.AddCommand(c.projectCmd())
	root.AddCommand(c.taskCmd())
	root.AddCommand(c.reportCmd())
	root.AddCommand(c.configCmd())
	root.AddCommand(c.workspaceCmd())
	root.AddCommand(c.versionCmd())
	return root
}

func (c *cli) setup() error {
	cfg, err := config.Load()
	if err == nil && cfg.Debug {
		c.debug = true
	}
	level := slog.LevelWarn
	if c.debug {
		level = slog.LevelDebug
	}
	c.log = slog.New(slog.NewTextHandler(c.errOut, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(c.log)
	if err != nil {
		return err
	}

	a, err := app.New(c.log, cfg)
	if err != nil {
		return err
	}
	c.app = a
	c.log.Debug("configuration loaded",
		slog.String("base_url", cfg.BaseURL),
		slog.String("config_dir", cfg.ConfigDir),
		slog.Duration("timeout", cfg.Timeout),
		slog.Duration("min_interval", cfg.MinInterval),
	)
	return nil
}
