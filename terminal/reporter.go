// Package terminal prints scaffolding progress and the final summary for a human reader.
package terminal

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

type (
	Reporter struct {
		out     io.Writer
		errOut  io.Writer
		success lipgloss.Style
		hint    lipgloss.Style
		failure lipgloss.Style
	}

	Summary struct {
		Target     string
		DevCommand string
		Grafted    bool
		Installed  bool
	}
)

// TotalSteps is the number of numbered progress lines of a complete run.
const TotalSteps = 8

const separator = "\n---------------------\n"

var (
	palette = struct {
		green lipgloss.Color
		blue  lipgloss.Color
		red   lipgloss.Color
	}{
		green: lipgloss.Color("2"),
		blue:  lipgloss.Color("4"),
		red:   lipgloss.Color("1"),
	}
)

// NewReporter writes progress to out and failures to errOut.
// Colors are only emitted when the respective writer is a terminal.
func NewReporter(out, errOut io.Writer) *Reporter {
	outRenderer := lipgloss.NewRenderer(out)
	errRenderer := lipgloss.NewRenderer(errOut)

	return &Reporter{
		out:     out,
		errOut:  errOut,
		success: outRenderer.NewStyle().Foreground(palette.green).Bold(true),
		hint:    outRenderer.NewStyle().Foreground(palette.blue).Bold(true),
		failure: errRenderer.NewStyle().Foreground(palette.red),
	}
}

// Progress is where external tools stream their own output.
func (r *Reporter) Progress() io.Writer {
	return r.out
}

func (r *Reporter) Created(nameEN, nameCN, template string) {
	_, _ = fmt.Fprintf(r.out, "\n\n项目 %s(%s)目录已创建，使用模板TS + %s\n\n\n", nameEN, nameCN, template)
}

func (r *Reporter) Step(n int, msg string) {
	_, _ = fmt.Fprintf(r.out, "[%d/%d] %s\n", n, TotalSteps, msg)
}

func (r *Reporter) Summary(s Summary) {
	_, _ = fmt.Fprint(r.out, separator+"\n")
	_, _ = fmt.Fprintln(r.out, r.success.Render("项目创建完成!,接下来请:"))

	if !s.Grafted {
		_, _ = fmt.Fprintln(r.out, r.hint.Render(fmt.Sprintf("- 请将项目.git文件夹复制到%s.", s.Target)))
	}

	if !s.Installed {
		_, _ = fmt.Fprintln(r.out, r.hint.Render("- 请手动安装依赖."))
	}

	_, _ = fmt.Fprintln(r.out, r.hint.Render(fmt.Sprintf("- 使用 `%s` 启动项目.", s.DevCommand)))
}

// Error prints msg as is.
func (r *Reporter) Error(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.failure.Render(msg))
}

func (r *Reporter) Failure(err error) {
	r.Error("ERROR: " + err.Error())
}
