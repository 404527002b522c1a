package terminal

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummary(t *testing.T) {
	var tests = []struct {
		summary Summary
		present []string
		absent  []string
	}{
		{
			summary: Summary{Target: "/tmp/demo-app", DevCommand: "npm run dev"},
			present: []string{
				"项目创建完成!,接下来请:",
				"- 请将项目.git文件夹复制到/tmp/demo-app.",
				"- 请手动安装依赖.",
				"- 使用 `npm run dev` 启动项目.",
			},
		},
		{
			summary: Summary{Target: "/tmp/demo-app", DevCommand: "pnpm dev", Grafted: true, Installed: true},
			present: []string{"- 使用 `pnpm dev` 启动项目."},
			absent:  []string{".git文件夹", "请手动安装依赖"},
		},
	}

	for _, test := range tests {
		var out, errOut bytes.Buffer

		r := NewReporter(&out, &errOut)
		r.Summary(test.summary)

		for _, s := range test.present {
			assert.Contains(t, out.String(), s)
		}

		for _, s := range test.absent {
			assert.NotContains(t, out.String(), s)
		}

		assert.Empty(t, errOut.String())
	}
}

func TestStepAndFailure(t *testing.T) {
	var out, errOut bytes.Buffer

	r := NewReporter(&out, &errOut)

	r.Created("demo-app", "示例应用", "VUE3")
	r.Step(1, "正在创建VUE3模板...")
	r.Step(8, "未选择自动安装依赖(跳过)")
	r.Failure(errors.New("boom"))

	assert.Contains(t, out.String(), "项目 demo-app(示例应用)目录已创建，使用模板TS + VUE3\n")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, "[1/8] 正在创建VUE3模板...", lines[len(lines)-2])
	assert.Equal(t, "[8/8] 未选择自动安装依赖(跳过)", lines[len(lines)-1])

	// Buffers are not terminals, so no escape sequences.
	assert.Equal(t, "ERROR: boom\n", errOut.String())
}
