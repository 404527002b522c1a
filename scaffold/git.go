package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"

	"github.com/kxue43/fe-scaffold/config"
)

type GitCloner struct {
	// Receives the remote's progress messages; nil discards them.
	Progress io.Writer
}

const gitDir = ".git"

// Guard creates target, refusing to touch anything that already exists at that path.
// Non-nil returned error wraps [ErrTargetExists] in that case.
func Guard(target string) error {
	_, err := os.Lstat(target)
	if err == nil {
		return fmt.Errorf("%w: %s", ErrTargetExists, target)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to check target directory %q: %w", target, err)
	}

	if err = os.Mkdir(target, 0750); err != nil {
		return fmt.Errorf("failed to create target directory %q: %w", target, err)
	}

	return nil
}

// Non-nil returned error wraps [ErrClone].
func (c GitCloner) Clone(ctx context.Context, tmpl config.Template, dest string) error {
	opts := git.CloneOptions{
		URL:      tmpl.URL,
		Progress: c.Progress,
	}

	if ref := tmpl.Reference(); ref != "" {
		opts.ReferenceName = ref
		opts.SingleBranch = true
	}

	if _, err := git.PlainCloneContext(ctx, dest, false, &opts); err != nil {
		return fmt.Errorf("%w: failed to clone %s into %q: %s", ErrClone, tmpl.URL, dest, err.Error())
	}

	return nil
}

// StripGit removes the .git folder of dir, if any.
func StripGit(dir string) error {
	if err := os.RemoveAll(filepath.Join(dir, gitDir)); err != nil {
		return fmt.Errorf("failed to delete the template's %s folder: %w", gitDir, err)
	}

	return nil
}

// GraftGit moves src into dir under its own base name. src is consumed, not copied,
// so grafting the same source twice fails.
func GraftGit(src, dir string) error {
	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("failed to access %q: %w", src, err)
	}

	dest := filepath.Join(dir, filepath.Base(filepath.Clean(src)))

	if err := os.Rename(src, dest); err != nil {
		return fmt.Errorf("failed to move %q to %q: %w", src, dest, err)
	}

	return nil
}
