package scaffold

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"

	"github.com/kxue43/fe-scaffold/jsonstream"
)

type WriteHook func(io.Writer) error

const (
	EnvFile      = ".env.local"
	ManifestFile = "package.json"
)

func WriteToFile(dir, name string, hook WriteHook) (err error) {
	fd, err := os.Create(filepath.Clean(filepath.Join(dir, name)))
	if err != nil {
		return fmt.Errorf("failed to create %q file: %w", name, err)
	}

	defer func() { _ = fd.Close() }()

	err = hook(fd)
	if err != nil {
		return fmt.Errorf("failed to write to %q: %w", name, err)
	}

	return nil
}

// EnvContents is written verbatim, values are not escaped.
func EnvContents(nameEN, nameCN string) string {
	return fmt.Sprintf("VITE_APP_ROUTER_PREFIX = '%s'\nVITE_APP_OUTPUT = './dist/%s'\nVITE_APP_TITLE_ZH='%s'\n", nameEN, nameEN, nameCN)
}

// WriteEnvFile overwrites .env.local in dir.
func WriteEnvFile(dir, nameEN, nameCN string) error {
	return WriteToFile(dir, EnvFile, func(fd io.Writer) error {
		_, err := io.WriteString(fd, EnvContents(nameEN, nameCN))

		return err
	})
}

// SetManifestName replaces the value of the top-level "name" field and leaves every other byte alone.
// Non-nil returned error wraps [ErrManifestName] if there is no such string field.
func SetManifestName(ctx context.Context, contents []byte, name string) ([]byte, error) {
	if !json.Valid(contents) {
		return nil, fmt.Errorf("%s is not valid JSON", ManifestFile)
	}

	locator, err := jsonstream.NewLocator(contents, ".name")
	if err != nil {
		return nil, fmt.Errorf("error from jsonstream.NewLocator: %w", err)
	}

	span, err := locator.Locate(ctx)
	if errors.Is(err, jsonstream.ErrNotFound) {
		return nil, ErrManifestName
	} else if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrManifestName, err.Error())
	}

	if _, ok := span.Value.(string); !ok {
		return nil, fmt.Errorf("%w: found %v instead", ErrManifestName, span.Value)
	}

	var encoded bytes.Buffer

	enc := json.NewEncoder(&encoded)
	enc.SetEscapeHTML(false)

	if err = enc.Encode(name); err != nil {
		return nil, fmt.Errorf("failed to encode %q as a JSON string: %w", name, err)
	}

	patched := make([]byte, 0, len(contents)+len(name))
	patched = append(patched, contents[:span.Start]...)
	patched = append(patched, bytes.TrimSuffix(encoded.Bytes(), []byte("\n"))...)
	patched = append(patched, contents[span.End:]...)

	if got := gjson.GetBytes(patched, "name"); got.Type != gjson.String || got.Str != name {
		return nil, fmt.Errorf("patched %s reads back name %q instead of %q", ManifestFile, got.String(), name)
	}

	return patched, nil
}

// PatchManifest sets the name field of package.json in dir. The file is left untouched on error.
// Non-nil returned error wraps [ErrManifestName] if there is no top-level string name field.
func PatchManifest(ctx context.Context, dir, name string) error {
	path := filepath.Clean(filepath.Join(dir, ManifestFile))

	contents, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", ManifestFile, err)
	}

	patched, err := SetManifestName(ctx, contents, name)
	if err != nil {
		return err
	}

	return WriteToFile(dir, ManifestFile, func(fd io.Writer) error {
		_, err1 := fd.Write(patched)

		return err1
	})
}
