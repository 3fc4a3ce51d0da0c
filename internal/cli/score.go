package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/build-flow-labs/cvsscalc/cvss"
	"github.com/build-flow-labs/cvsscalc/internal/config"
	"github.com/build-flow-labs/cvsscalc/internal/prompt"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type scoreFlags struct {
	vector   string
	metrics  map[string]*string
	rounding string
	json     bool
	detail   bool
	failOn   string
}

// metricFlagNames maps dimension keys to their flag names.
var metricFlagNames = map[string]string{
	cvss.KeyAttackVector:       "av",
	cvss.KeyAttackComplexity:   "ac",
	cvss.KeyPrivilegesRequired: "pr",
	cvss.KeyUserInteraction:    "ui",
	cvss.KeyScope:              "s",
	cvss.KeyConfidentiality:    "c",
	cvss.KeyIntegrity:          "i",
	cvss.KeyAvailability:       "a",
}

func newScoreCmd(g *globalOptions) *cobra.Command {
	f := &scoreFlags{metrics: make(map[string]*string)}

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Compute a CVSS Base Score",
		Long: `Computes the CVSS Base Score for one set of base metrics.

Metrics come from, in order of precedence:
  --vector     a vector string, e.g. CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H
  --av ... --a one flag per metric, taking the code (N) or category (NETWORK)
  prompts      any metric not given by a flag is asked for interactively

Use --detail for sub-scores and severity, --json for a machine-readable report.
Use --fail-on to exit with status 2 when the severity reaches a rating.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd, g, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.vector, "vector", "", "CVSS v3.x vector string")
	for _, d := range cvss.Dimensions() {
		name := metricFlagNames[d.Key]
		codes := make([]string, 0, len(d.Options))
		for _, o := range d.Options {
			codes = append(codes, o.Code)
		}
		f.metrics[d.Key] = flags.String(name, "", fmt.Sprintf("%s (%s)", d.Label(), strings.Join(codes, "|")))
		cmd.MarkFlagsMutuallyExclusive("vector", name)
	}
	flags.StringVar(&f.rounding, "rounding", "", "Rounding policy: nearest or roundup (default from config)")
	flags.BoolVar(&f.json, "json", false, "Output a JSON report")
	flags.BoolVar(&f.detail, "detail", false, "Show vector, severity and sub-scores")
	flags.StringVar(&f.failOn, "fail-on", "", "Exit 2 if severity is at least: low, medium, high or critical")

	return cmd
}

// scoreReport is the JSON form of a scoring run.
type scoreReport struct {
	ID                  string        `json:"id"`
	GeneratedAt         string        `json:"generated_at"`
	Vector              string        `json:"vector"`
	Metrics             cvss.Metrics  `json:"metrics"`
	BaseScore           float64       `json:"base_score"`
	ImpactScore         float64       `json:"impact_score"`
	ExploitabilityScore float64       `json:"exploitability_score"`
	Severity            cvss.Severity `json:"severity"`
	Rounding            cvss.Rounding `json:"rounding"`
}

func runScore(cmd *cobra.Command, g *globalOptions, f *scoreFlags) error {
	cfg, logger, err := g.setup(cmd)
	if err != nil {
		return err
	}

	rounding, err := cfg.RoundingPolicy()
	if err != nil {
		return err
	}
	if f.rounding != "" {
		if rounding, err = cvss.ParseRounding(f.rounding); err != nil {
			return fmt.Errorf("--rounding: %w", err)
		}
	}

	var threshold cvss.Severity
	if f.failOn != "" {
		if threshold, err = cvss.ParseSeverity(f.failOn); err != nil {
			return fmt.Errorf("--fail-on: %w", err)
		}
		// Every score is at least None, so the gate would always trip.
		if threshold == cvss.SeverityNone {
			return fmt.Errorf("--fail-on: %s is not a usable threshold", threshold)
		}
	}

	asJSON := f.json || cfg.Output == config.OutputJSON

	var m cvss.Metrics
	if f.vector != "" {
		if m, err = cvss.ParseVector(f.vector); err != nil {
			return err
		}
		logger.Debug("metrics from vector", "vector", f.vector)
	} else {
		if m, err = metricsFromFlags(f.metrics); err != nil {
			return err
		}
		if missing := m.Missing(); len(missing) > 0 {
			logger.Debug("prompting for metrics", "missing", strings.Join(missing, ","))
			// Prompts must not mix with a JSON document on stdout.
			promptOut := cmd.OutOrStdout()
			if asJSON {
				promptOut = cmd.ErrOrStderr()
			}
			collector := prompt.NewCollector(cmd.InOrStdin(), promptOut, logger)
			if m, err = collector.Collect(cmd.Context(), m); err != nil {
				return err
			}
		}
	}

	res, err := cvss.NewCalculator(rounding).Score(m)
	if err != nil {
		return err
	}
	logger.Debug("score computed", "vector", res.Vector, "base_score", res.BaseScore, "rounding", string(rounding))

	out := cmd.OutOrStdout()
	switch {
	case asJSON:
		report := scoreReport{
			ID:                  "urn:uuid:" + uuid.New().String(),
			GeneratedAt:         time.Now().UTC().Format(time.RFC3339),
			Vector:              res.Vector,
			Metrics:             m,
			BaseScore:           res.BaseScore,
			ImpactScore:         res.ImpactScore,
			ExploitabilityScore: res.ExploitabilityScore,
			Severity:            res.Severity,
			Rounding:            rounding,
		}
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case f.detail:
		printDetailedScore(out, res, rounding)
	default:
		fmt.Fprintf(out, "CVSS Base Score: %.1f\n", res.BaseScore)
	}

	if threshold != "" && res.Severity.Rank() >= threshold.Rank() {
		return &ExitError{
			Code: 2,
			Err:  fmt.Errorf("severity %s meets fail threshold %s", res.Severity, threshold),
		}
	}
	return nil
}

// metricsFromFlags resolves each non-empty metric flag, accepting either the
// single-letter code or the full category name.
func metricsFromFlags(values map[string]*string) (cvss.Metrics, error) {
	var m cvss.Metrics
	for _, d := range cvss.Dimensions() {
		v, ok := values[d.Key]
		if !ok || *v == "" {
			continue
		}
		raw := strings.ToUpper(strings.TrimSpace(*v))
		category, found := d.Lookup(raw)
		if !found {
			category = raw
		}
		if err := m.Set(d.Key, category); err != nil {
			return m, fmt.Errorf("--%s: %w", metricFlagNames[d.Key], err)
		}
	}
	return m, nil
}

func printDetailedScore(out io.Writer, res *cvss.Result, rounding cvss.Rounding) {
	fmt.Fprintf(out, "CVSS Base Score: %.1f\n", res.BaseScore)
	fmt.Fprintln(out, strings.Repeat("─", 48))

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "  Vector\t%s\n", res.Vector)
	fmt.Fprintf(w, "  Severity\t%s\n", res.Severity)
	fmt.Fprintf(w, "  Impact\t%.1f\n", res.ImpactScore)
	fmt.Fprintf(w, "  Exploitability\t%.1f\n", res.ExploitabilityScore)
	fmt.Fprintf(w, "  Rounding\t%s\n", rounding)
	w.Flush()
}
