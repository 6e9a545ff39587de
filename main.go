package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/frontdesk/internal/commands"
	"github.com/colonyops/frontdesk/internal/core/config"
	"github.com/colonyops/frontdesk/internal/core/logging"
	"github.com/colonyops/frontdesk/internal/frontdesk"
	"github.com/colonyops/frontdesk/pkg/executil"
	"github.com/colonyops/frontdesk/pkg/logutils"
	"github.com/colonyops/frontdesk/pkg/utils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		logCloser func()
		heldLogs  *utils.DeferredWriter
		deskApp   = &frontdesk.App{}
	)

	flags := &commands.Flags{}

	app := commands.NewRoot(flags, deskApp)
	app.Version = build()
	app.Before = func(ctx context.Context, c *cli.Command) (context.Context, error) {
		interactive := c.Args().Len() == 0 || c.Args().First() == "center"

		var (
			logger zerolog.Logger
			err    error
		)
		if flags.LogFile == "" && interactive && logutils.StderrIsTerminal() {
			// The center owns the terminal; hold log lines until it exits.
			heldLogs = &utils.DeferredWriter{}
			logger, err = logutils.NewWriter(flags.LogLevel,
				zerolog.ConsoleWriter{Out: heldLogs, TimeFormat: logutils.TimeFormat},
				logging.ContextHook{},
			)
		} else {
			logger, logCloser, err = logutils.New(flags.LogLevel, flags.LogFile, logging.ContextHook{})
		}
		if err != nil {
			return ctx, fmt.Errorf("setup logger: %w", err)
		}
		log.Logger = logger

		cfg, err := config.Load(flags.ConfigPath)
		if err != nil {
			return ctx, fmt.Errorf("load config: %w", err)
		}
		flags.Config = cfg

		for _, w := range cfg.Warnings() {
			log.Debug().Str("category", w.Category).Str("item", w.Item).Msg(w.Message)
		}

		built, err := commands.BuildApp(cfg, &executil.RealExecutor{})
		if err != nil {
			return ctx, err
		}

		// Populate the pre-allocated App (commands already hold a pointer to it)
		*deskApp = *built

		return ctx, nil
	}
	app.After = func(ctx context.Context, c *cli.Command) error {
		if deskApp.Store != nil {
			deskApp.Close()
		}

		if heldLogs != nil {
			_ = heldLogs.Release(os.Stderr)
		}

		if logCloser != nil {
			logCloser()
		}
		return nil
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	stop()
	os.Exit(exitCode)
}
