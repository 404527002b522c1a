package tui

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kxue43/fe-scaffold/config"
	"github.com/kxue43/fe-scaffold/scaffold"
)

func testProfile(t *testing.T) config.Profile {
	t.Helper()

	p, err := config.Default()
	require.NoError(t, err)

	return p
}

func TestLinePrompterCollect(t *testing.T) {
	var tests = []struct {
		input    string
		confirm  bool
		expected scaffold.Answers
		problems int
	}{
		{
			input:    "demo-app\n示例应用\n1\n2\n\n",
			confirm:  true,
			expected: scaffold.Answers{NameEN: "demo-app", NameCN: "示例应用", Template: "VUE3"},
		},
		{
			input:    "\n  \ndemo-app\n\n示例应用\nREACT\nVUE3\n是,请帮我安装依赖\n/tmp/x/.git\n",
			confirm:  true,
			expected: scaffold.Answers{NameEN: "demo-app", NameCN: "示例应用", Template: "VUE3", Install: true, GitFolder: "/tmp/x/.git"},
			problems: 4,
		},
		{
			input:    "demo-app\r\n示例应用\r\n1\r\n",
			confirm:  false,
			expected: scaffold.Answers{NameEN: "demo-app", NameCN: "示例应用", Template: "VUE3"},
		},
	}

	for _, test := range tests {
		var out bytes.Buffer

		profile := testProfile(t)
		profile.ConfirmInstall = test.confirm

		p := LinePrompter{In: strings.NewReader(test.input), Out: &out}

		answers, err := p.Collect(context.Background(), profile)
		require.NoError(t, err, test.input)

		assert.Equal(t, test.expected, answers, test.input)
		assert.Equal(t, test.problems, strings.Count(out.String(), ">> "), test.input)
		assert.Equal(t, test.confirm, strings.Contains(out.String(), "请选择是否帮助安装依赖:"), test.input)
	}
}

func TestLinePrompterEmptyNameMessages(t *testing.T) {
	var out bytes.Buffer

	p := LinePrompter{In: strings.NewReader("\ndemo-app\n\n示例应用\n1\n2\n"), Out: &out}

	_, err := p.Collect(context.Background(), testProfile(t))
	require.NoError(t, err)

	assert.Contains(t, out.String(), ">> 项目英文名称不能为空\n")
	assert.Contains(t, out.String(), ">> 项目中文名称不能为空\n")
	assert.Equal(t, 2, strings.Count(out.String(), "? 请输入项目英文名称:"), "the question is asked again")
}

func TestLinePrompterAborted(t *testing.T) {
	var out bytes.Buffer

	p := LinePrompter{In: strings.NewReader("demo-app\n"), Out: &out}

	_, err := p.Collect(context.Background(), testProfile(t))
	assert.ErrorIs(t, err, ErrAborted)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = LinePrompter{In: strings.NewReader("demo-app\n"), Out: &out}.Collect(ctx, testProfile(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestQuestions(t *testing.T) {
	profile := testProfile(t)

	qs := Questions(profile)
	require.Len(t, qs, 5)
	assert.Equal(t, []string{"VUE3"}, qs[2].Choices)
	assert.Equal(t, []string{InstallYes, InstallNo}, qs[3].Choices)

	profile.ConfirmInstall = false

	qs = Questions(profile)
	require.Len(t, qs, 4)

	for _, q := range qs {
		assert.NotEqual(t, KeyInstall, q.Key)
	}
}
