package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	LogLevel string           `short:"l" help:"Log level (debug, info, warn, error), defaults to info"`
	NoColor  bool             `help:"Disable coloured output"`
	Version  kong.VersionFlag `short:"v" help:"Show version"`
}

type CLI struct {
	Globals

	Calc     CalcCmd     `cmd:"" help:"Calculate the probability of opening a hand"`
	Simulate SimulateCmd `cmd:"" help:"Check a probability by dealing random hands"`
	Serve    ServeCmd    `cmd:"" help:"Run the WebSocket calculation server"`
	Edit     EditCmd     `cmd:"" help:"Edit a deck interactively"`
	Init     InitCmd     `cmd:"" help:"Write an example deck file"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("handodds"),
		kong.Description("Opening hand probabilities for card games"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	if cli.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	logger := newLogger(cli.LogLevel)
	err := ctx.Run(&cli.Globals, logger)
	ctx.FatalIfErrorf(err)
}

func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	setLevel(logger, level)
	return logger
}

func setLevel(logger *log.Logger, level string) {
	lvl, err := log.ParseLevel(level)
	if err != nil || level == "" {
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
}
