package scaffold

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

type NPMInstaller struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Command line to run; defaults to npm install with peer dependency conflicts ignored.
	Argv []string
}

var defaultInstallArgv = []string{"npm", "install", "--legacy-peer-deps"}

// NewNPMInstaller streams the installer's output live through the process's own standard streams.
func NewNPMInstaller() NPMInstaller {
	return NPMInstaller{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Non-nil returned error wraps [ErrInstall].
func (i NPMInstaller) Install(ctx context.Context, dir string) error {
	argv := i.Argv
	if len(argv) == 0 {
		argv = defaultInstallArgv
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdin = i.Stdin
	cmd.Stdout = i.Stdout
	cmd.Stderr = i.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %q in %q: %s", ErrInstall, strings.Join(argv, " "), dir, err.Error())
	}

	return nil
}
