package rec2pdf

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// Chooser resolves one interactive decision point. Implementations return
// the selected index into candidates; def is a default index, or -1 when
// there is none.
type Chooser interface {
	Choose(ctx context.Context, prompt string, candidates []string, def int) (int, error)
}

// TerminalChooser prompts on Out and reads answers line by line from In.
// Blank input takes the default; otherwise a 1-based index or a literal
// candidate value is accepted, re-prompting until one is given.
type TerminalChooser struct {
	In  io.Reader
	Out io.Writer

	once  sync.Once
	lines chan lineResult
}

var _ Chooser = (*TerminalChooser)(nil)

type lineResult struct {
	text string
	err  error
}

func (c *TerminalChooser) Choose(ctx context.Context, prompt string, candidates []string, def int) (int, error) {
	if len(candidates) == 0 {
		return 0, errors.New("no candidates to choose from")
	}
	hasDefault := def >= 0 && def < len(candidates)
	for {
		suffix := ""
		if hasDefault {
			suffix = fmt.Sprintf(" [Enter=%d:%s]", def+1, candidates[def])
		}
		fmt.Fprintf(c.Out, "%s (1-%d)%s: ", prompt, len(candidates), suffix)

		answer, err := c.readLine(ctx)
		if err != nil {
			return 0, err
		}
		if answer == "" && hasDefault {
			return def, nil
		}
		if idx, ok := indexAnswer(answer, len(candidates)); ok {
			return idx, nil
		}
		if idx, ok := literalAnswer(answer, candidates); ok {
			return idx, nil
		}
		fmt.Fprintln(c.Out, "Enter a valid number or one of the listed values.")
	}
}

// readLine waits for the next input line or context cancellation. A single
// pump goroutine owns the reader, so an abandoned read cannot race a later
// one.
func (c *TerminalChooser) readLine(ctx context.Context) (string, error) {
	c.once.Do(c.start)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-c.lines:
		if !ok {
			return "", ErrInputClosed
		}
		if res.err != nil {
			if errors.Is(res.err, io.EOF) {
				return "", ErrInputClosed
			}
			return "", fmt.Errorf("%w: %v", ErrInputClosed, res.err)
		}
		return strings.TrimSpace(res.text), nil
	}
}

func (c *TerminalChooser) start() {
	c.lines = make(chan lineResult)
	go func() {
		scanner := bufio.NewScanner(c.In)
		for scanner.Scan() {
			c.lines <- lineResult{text: scanner.Text()}
		}
		err := scanner.Err()
		if err == nil {
			err = io.EOF
		}
		c.lines <- lineResult{err: err}
		close(c.lines)
	}()
}

// indexAnswer interprets an all-digit answer as a 1-based index. Signs and
// spaces disqualify, matching how literal values are otherwise matched.
func indexAnswer(answer string, n int) (int, bool) {
	if answer == "" {
		return 0, false
	}
	for _, r := range answer {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	idx, err := strconv.Atoi(answer)
	if err != nil || idx < 1 || idx > n {
		return 0, false
	}
	return idx - 1, true
}

// literalAnswer matches the answer against candidates exactly.
func literalAnswer(answer string, candidates []string) (int, bool) {
	for i, cand := range candidates {
		if cand == answer {
			return i, true
		}
	}
	return 0, false
}
