// Package prompt collects CVSS base metrics interactively.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/build-flow-labs/cvsscalc/cvss"
)

// ErrInputClosed is returned when input ends before a valid answer is read.
var ErrInputClosed = errors.New("input closed before all metrics were entered")

const (
	// Question is asked for every metric. The example is the same for all
	// dimensions.
	Question = "Enter your choice (e.g., N for NETWORK): "

	// InvalidInputMessage is printed after every rejected answer.
	InvalidInputMessage = "Invalid input. Please try again."
)

// Collector asks for metric values until each one is a member of its
// dimension's option table.
type Collector struct {
	prompt *prompter
	out    io.Writer
	logger *slog.Logger
}

// NewCollector creates a Collector reading answers from in and writing
// prompts to out. A nil logger discards log output.
func NewCollector(in io.Reader, out io.Writer, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Collector{
		prompt: newPrompter(in, out),
		out:    out,
		logger: logger,
	}
}

// Collect fills every metric of m that is not already set, in dimension
// order, and returns the completed set.
func (c *Collector) Collect(ctx context.Context, m cvss.Metrics) (cvss.Metrics, error) {
	for _, d := range cvss.Dimensions() {
		if m.Get(d.Key) != "" {
			continue
		}
		category, err := c.Metric(ctx, d)
		if err != nil {
			return m, err
		}
		if err := m.Set(d.Key, category); err != nil {
			return m, fmt.Errorf("prompt.Collect: %w", err)
		}
	}
	return m, nil
}

// Metric prints the dimension's options and reads codes until one matches,
// returning the corresponding category.
func (c *Collector) Metric(ctx context.Context, d cvss.Dimension) (string, error) {
	fmt.Fprintln(c.out, d.Label())
	for _, o := range d.Options {
		fmt.Fprintf(c.out, "%s: %s\n", o.Code, o.Category)
	}

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		answer, ok, err := c.prompt.ask(Question)
		if err != nil {
			return "", fmt.Errorf("prompt.Metric: reading %s: %w", d.Key, err)
		}
		if !ok {
			fmt.Fprintln(c.out)
			return "", ErrInputClosed
		}
		if category, found := d.Lookup(strings.ToUpper(answer)); found {
			c.logger.Debug("metric selected", "metric", d.Key, "value", category)
			return category, nil
		}
		c.logger.Debug("rejected answer", "metric", d.Key, "answer", answer)
		fmt.Fprintln(c.out, InvalidInputMessage)
	}
}
