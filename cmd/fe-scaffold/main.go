package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"

	"github.com/kxue43/fe-scaffold/config"
	"github.com/kxue43/fe-scaffold/scaffold"
	"github.com/kxue43/fe-scaffold/terminal"
	"github.com/kxue43/fe-scaffold/tui"
	"github.com/kxue43/fe-scaffold/version"
)

type CLI struct {
	Profile     string           `name:"profile" type:"existingfile" help:"TOML or YAML file listing the templates to offer. Defaults to the built-in profile."`
	WorkDir     string           `name:"workdir" type:"existingdir" help:"Create the project under this directory instead of the current one."`
	DebugTUILog string           `name:"debug-tui-log" type:"path" help:"Dump every message the prompt form receives into this file."`
	SkipInstall bool             `name:"skip-install" help:"Never run npm install, whatever the profile says."`
	Version     kong.VersionFlag `name:"version" help:"Show version information and quit."`
}

var logger = log.New(os.Stderr, "fe-scaffold: ", 0)

func (c *CLI) loadProfile() (config.Profile, error) {
	if c.Profile == "" {
		return config.Default()
	}

	return config.Load(c.Profile)
}

func (c *CLI) rootDir() (string, error) {
	if c.WorkDir != "" {
		return filepath.Abs(c.WorkDir)
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}

	return dir, nil
}

func (c *CLI) prompter(debugLog io.Writer) scaffold.Prompter {
	fd := os.Stdin.Fd()

	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return tui.FormPrompter{DebugLog: debugLog}
	}

	return tui.LinePrompter{In: os.Stdin, Out: os.Stdout}
}

// Run returns an error only for problems with the invocation itself. Failures of the
// scaffolding flow are reported and the process still exits normally.
func (c *CLI) Run() error {
	profile, err := c.loadProfile()
	if err != nil {
		return err
	}

	root, err := c.rootDir()
	if err != nil {
		return err
	}

	var debugLog io.Writer

	if c.DebugTUILog != "" {
		fd, err1 := os.OpenFile(filepath.Clean(c.DebugTUILog), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
		if err1 != nil {
			return fmt.Errorf("failed to open debug log file %q: %w", c.DebugTUILog, err1)
		}

		defer func() { _ = fd.Close() }()

		debugLog = fd
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	reporter := terminal.NewReporter(os.Stdout, os.Stderr)

	project := scaffold.Project{
		Prompter:    c.prompter(debugLog),
		Cloner:      scaffold.GitCloner{Progress: reporter.Progress()},
		Installer:   scaffold.NewNPMInstaller(),
		Reporter:    reporter,
		Root:        root,
		Profile:     profile,
		SkipInstall: c.SkipInstall,
	}

	err = project.Run(ctx)

	switch {
	case err == nil:
	case errors.Is(err, tui.ErrAborted):
		logger.Print("aborted, nothing was created")
	case errors.Is(err, scaffold.ErrTargetExists):
		reporter.Error(scaffold.ErrTargetExists.Error())
	default:
		reporter.Failure(err)
	}

	return nil
}

func main() {
	var cli CLI

	ctx := kong.Parse(
		&cli,
		kong.Name("fe-scaffold"),
		kong.Description("Create a frontend project from a template repository."),
		kong.Vars{"version": version.FromBuildInfo()},
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
