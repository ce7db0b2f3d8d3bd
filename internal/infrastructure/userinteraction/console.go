package userinteraction

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"swaglabs-e2e/internal/application/port/output"
	"swaglabs-e2e/internal/domain/entity"
)

var _ output.ReporterPort = (*ConsoleReporter)(nil)

type ConsoleReporter struct {
	out io.Writer
}

func NewConsoleReporter() *ConsoleReporter {
	return NewConsoleReporterTo(os.Stdout)
}

func NewConsoleReporterTo(w io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: w}
}

func (r *ConsoleReporter) ShowScenarioStart(ctx context.Context, name, description string) {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprintf(r.out, "\n━━━ %s ━━━\n", name)
	if description != "" {
		dim := color.New(color.Faint)
		dim.Fprintf(r.out, "   %s\n", description)
	}
}

func (r *ConsoleReporter) ShowScenarioResult(ctx context.Context, result entity.ScenarioResult) {
	switch result.Status {
	case entity.ScenarioPassed:
		green := color.New(color.FgGreen)
		green.Fprintf(r.out, "✓ PASS %s (%.2fs)\n", result.Name, result.Duration.Seconds())
	case entity.ScenarioSkipped:
		yellow := color.New(color.FgYellow)
		yellow.Fprintf(r.out, "- SKIP %s\n", result.Name)
	default:
		red := color.New(color.FgRed, color.Bold)
		red.Fprintf(r.out, "✗ FAIL %s (%.2fs)\n", result.Name, result.Duration.Seconds())
		dim := color.New(color.Faint)
		dim.Fprintf(r.out, "   %s\n", truncate(result.Error, 500))
	}
}

func (r *ConsoleReporter) ShowSummary(ctx context.Context, results []entity.ScenarioResult) {
	counts := map[entity.ScenarioStatus]int{}
	for _, res := range results {
		counts[res.Status]++
	}

	line := fmt.Sprintf("%d passed, %d failed, %d skipped", counts[entity.ScenarioPassed], counts[entity.ScenarioFailed], counts[entity.ScenarioSkipped])
	fmt.Fprintln(r.out, "\n"+strings.Repeat("━", len(line)))
	if counts[entity.ScenarioFailed] > 0 {
		color.New(color.FgRed, color.Bold).Fprintln(r.out, line)
		return
	}
	color.New(color.FgGreen, color.Bold).Fprintln(r.out, line)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
