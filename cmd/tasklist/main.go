package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/idilsaglam/tasklist/internal/cli"
	"github.com/idilsaglam/tasklist/internal/config"
	"github.com/idilsaglam/tasklist/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	fs := flag.NewFlagSet("tasklist", flag.ExitOnError)
	groupPending := fs.Bool("group", false, "group output by pending/done")
	fs.Usage = cli.PrintHelp

	cfg, err := config.Load(fs, os.Args[1:])
	if err != nil {
		ui.Fail(err.Error())
		os.Exit(2)
	}
	ui.SetTheme(cfg.Theme)

	// Hand the remaining args to the CLI runner.
	args := fs.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	code := cli.Run(args, cli.Options{
		Group:  *groupPending,
		Config: cfg,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
