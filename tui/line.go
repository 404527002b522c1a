package tui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kxue43/fe-scaffold/config"
	"github.com/kxue43/fe-scaffold/scaffold"
)

// LinePrompter asks one question per line. It is meant for input that is not a terminal.
type LinePrompter struct {
	In  io.Reader
	Out io.Writer
}

func (p LinePrompter) ask(q Question) {
	if q.Kind == Text {
		_, _ = fmt.Fprintf(p.Out, "? %s ", q.Message)

		return
	}

	_, _ = fmt.Fprintf(p.Out, "? %s\n", q.Message)

	for i, choice := range q.Choices {
		_, _ = fmt.Fprintf(p.Out, "  %d) %s\n", i+1, choice)
	}

	_, _ = io.WriteString(p.Out, "> ")
}

// Non-nil returned error wraps [ErrAborted] if input ends before a required answer is given.
func (p LinePrompter) Collect(ctx context.Context, profile config.Profile) (scaffold.Answers, error) {
	qs := Questions(profile)
	values := make([]string, len(qs))
	reader := bufio.NewReader(p.In)

	for i, q := range qs {
		for {
			if err := ctx.Err(); err != nil {
				return scaffold.Answers{}, err
			}

			p.ask(q)

			line, err := reader.ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				return scaffold.Answers{}, fmt.Errorf("failed to read answer to %q: %w", q.Message, err)
			}

			eof := err != nil

			value, problem := q.Check(strings.TrimRight(line, "\r\n"))
			if problem == "" {
				values[i] = value

				break
			}

			_, _ = fmt.Fprintf(p.Out, ">> %s\n", problem)

			if eof {
				return scaffold.Answers{}, fmt.Errorf("%w: input ended at %q", ErrAborted, q.Message)
			}
		}
	}

	return toAnswers(qs, values), nil
}
