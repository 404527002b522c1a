// Package tui asks the scaffolding questions, either through a full-screen form when
// stdin is a terminal or line by line otherwise.
package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kxue43/fe-scaffold/config"
	"github.com/kxue43/fe-scaffold/scaffold"
)

type (
	Kind byte

	Question struct {
		Key        string
		Message    string
		EmptyError string
		Choices    []string
		Kind       Kind
		Required   bool
	}
)

const (
	Text Kind = iota
	Choice
)

const (
	KeyNameEN    = "projectNameEN"
	KeyNameCN    = "projectNameCN"
	KeyTemplate  = "templateType"
	KeyInstall   = "isInstall"
	KeyGitFolder = "newGitFolder"

	InstallYes = "是,请帮我安装依赖"
	InstallNo  = "否,我自己安装依赖"
)

var (
	ErrAborted = errors.New("prompt aborted")
)

// Questions lists what to ask, in order. The install question is only there when the
// profile wants installation confirmed.
func Questions(profile config.Profile) []Question {
	qs := []Question{
		{
			Key:        KeyNameEN,
			Kind:       Text,
			Message:    "请输入项目英文名称:",
			EmptyError: "项目英文名称不能为空",
			Required:   true,
		},
		{
			Key:        KeyNameCN,
			Kind:       Text,
			Message:    "请输入项目中文名称:",
			EmptyError: "项目中文名称不能为空",
			Required:   true,
		},
		{
			Key:     KeyTemplate,
			Kind:    Choice,
			Message: "请选择模板类型(ALL TS):",
			Choices: profile.TemplateNames(),
		},
	}

	if profile.ConfirmInstall {
		qs = append(qs, Question{
			Key:     KeyInstall,
			Kind:    Choice,
			Message: "请选择是否帮助安装依赖:",
			Choices: []string{InstallYes, InstallNo},
		})
	}

	return append(qs, Question{
		Key:     KeyGitFolder,
		Kind:    Text,
		Message: "请将新仓库.git文件夹拖动到此处(可选):",
	})
}

// Check validates a typed answer. A non-empty problem means the question has to be asked again.
func (q Question) Check(input string) (value, problem string) {
	if q.Kind == Text {
		if q.Required && strings.TrimSpace(input) == "" {
			return "", q.EmptyError
		}

		return input, ""
	}

	input = strings.TrimSpace(input)

	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(q.Choices) {
		return q.Choices[n-1], ""
	}

	for _, choice := range q.Choices {
		if choice == input {
			return choice, ""
		}
	}

	return "", fmt.Sprintf("请输入 1-%d 之间的序号", len(q.Choices))
}

func toAnswers(qs []Question, values []string) scaffold.Answers {
	var a scaffold.Answers

	for i, q := range qs {
		switch q.Key {
		case KeyNameEN:
			a.NameEN = values[i]
		case KeyNameCN:
			a.NameCN = values[i]
		case KeyTemplate:
			a.Template = values[i]
		case KeyInstall:
			a.Install = values[i] == InstallYes
		case KeyGitFolder:
			a.GitFolder = values[i]
		default:
			continue
		}
	}

	return a
}
