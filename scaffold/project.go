// Package scaffold creates a frontend project from a remote template repository.
//
// A run collects the answers, guards against an existing target directory, clones the
// template, patches .env.local and package.json, replaces the template's .git folder and
// optionally installs dependencies.
package scaffold

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kxue43/fe-scaffold/config"
	"github.com/kxue43/fe-scaffold/terminal"
)

type (
	// Answers is gathered once per run and never persisted.
	Answers struct {
		NameEN    string
		NameCN    string
		Template  string
		GitFolder string
		Install   bool
	}

	Prompter interface {
		Collect(context.Context, config.Profile) (Answers, error)
	}

	Cloner interface {
		Clone(ctx context.Context, tmpl config.Template, dest string) error
	}

	Installer interface {
		Install(ctx context.Context, dir string) error
	}

	Project struct {
		Prompter  Prompter
		Cloner    Cloner
		Installer Installer
		Reporter  *terminal.Reporter
		// Parent directory of the new project.
		Root        string
		Profile     config.Profile
		SkipInstall bool
	}
)

var (
	ErrTargetExists    = errors.New("项目目录已存在，请选择其他名称。")
	ErrUnknownTemplate = errors.New("unknown template")
	ErrClone           = errors.New("template clone failure")
	ErrManifestName    = errors.New("package.json has no top-level string name field")
	ErrInstall         = errors.New("dependency install failure")
)

// Run collects the answers and scaffolds the project.
func (p *Project) Run(ctx context.Context) error {
	answers, err := p.Prompter.Collect(ctx, p.Profile)
	if err != nil {
		return fmt.Errorf("failed to collect answers: %w", err)
	}

	if !p.Profile.ConfirmInstall {
		answers.Install = true
	}

	if p.SkipInstall {
		answers.Install = false
	}

	return p.Scaffold(ctx, answers)
}

// Scaffold performs every filesystem step for a. Nothing is rolled back on failure.
// Non-nil returned error wraps [ErrTargetExists] if the target directory is already there,
// in which case nothing was written.
func (p *Project) Scaffold(ctx context.Context, a Answers) (err error) {
	tmpl, ok := p.Profile.Lookup(a.Template)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTemplate, a.Template)
	}

	target := filepath.Join(p.Root, a.NameEN)

	if err = Guard(target); err != nil {
		return err
	}

	p.Reporter.Created(a.NameEN, a.NameCN, a.Template)

	p.Reporter.Step(1, fmt.Sprintf("正在创建%s模板...", a.Template))

	if err = p.Cloner.Clone(ctx, tmpl, target); err != nil {
		return err
	}

	p.Reporter.Step(2, "模板创建成功,正在修改配置...")

	if err = WriteEnvFile(target, a.NameEN, a.NameCN); err != nil {
		return err
	}

	p.Reporter.Step(3, "update "+EnvFile+" success.")
	p.Reporter.Step(4, "update .env.dev|pre|prod success.")

	if err = PatchManifest(ctx, target, a.NameEN); err != nil {
		return err
	}

	p.Reporter.Step(5, "update "+ManifestFile+" success.")
	p.Reporter.Step(6, "del unused files...")

	if err = StripGit(target); err != nil {
		return err
	}

	gitFolder := CleanDroppedPath(a.GitFolder)

	if gitFolder != "" {
		p.Reporter.Step(7, "move .git folder...")

		if err = GraftGit(gitFolder, target); err != nil {
			return err
		}
	} else {
		p.Reporter.Step(7, "未选择新仓库.git(跳过)")
	}

	if a.Install {
		p.Reporter.Step(8, "正在安装依赖...")

		if err = p.Installer.Install(ctx, target); err != nil {
			return err
		}
	} else {
		p.Reporter.Step(8, "未选择自动安装依赖(跳过)")
	}

	p.Reporter.Summary(terminal.Summary{
		Target:     target,
		DevCommand: p.Profile.DevCommand,
		Grafted:    gitFolder != "",
		Installed:  a.Install,
	})

	return nil
}

// CleanDroppedPath undoes what terminals add when a folder is dragged onto them:
// surrounding whitespace, surrounding quotes and backslash-escaped spaces.
func CleanDroppedPath(raw string) string {
	s := strings.TrimSpace(raw)

	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}

	return strings.ReplaceAll(s, `\ `, " ")
}
