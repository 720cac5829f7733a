package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/tuneinsight/orthopoly/convergence"
)

type sweepReport struct {
	RunID      string                        `json:"run_id"`
	Parameters convergence.ParametersLiteral `json:"parameters"`
	Points     []convergence.Point           `json:"points"`
	Skipped    []int                         `json:"skipped"`
	Summary    *convergence.Summary          `json:"summary,omitempty"`
	Rate       *float64                      `json:"rate,omitempty"`
}

func newSweepCmd(a *app) *cobra.Command {

	var format string

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Measure the convergence of the quadrature basis",
		Long: `Orthonormalize the monomial basis under the quadrature rule for each sample
count and report the deviation of the result from orthonormality under the
exact inner product, the sample counts whose basis degenerated, summary
statistics of the errors and the empirical order of convergence.

Examples:
  orthopoly sweep
  orthopoly sweep --size 5 --samples 100,1000,10000 --workers 4
  orthopoly sweep --config sweep.yaml --format csv`,
		RunE: func(cmd *cobra.Command, args []string) (err error) {

			if format, err = checkFormat(format); err != nil {
				return
			}

			var report *sweepReport
			if report, err = a.sweep(a.sweepConfig(cmd)); err != nil {
				return
			}

			switch format {
			case formatJSON:
				return outputJSON(cmd.OutOrStdout(), report)
			case formatCSV:
				return outputCSV(cmd.OutOrStdout(), report.records())
			default:
				return report.table(cmd)
			}
		},
	}

	cmd.Flags().Int("size", convergence.DefaultParametersLiteral.BasisSize, "Number of basis polynomials")
	cmd.Flags().IntSlice("samples", convergence.DefaultParametersLiteral.SampleCounts, "Comma-separated sample counts")
	cmd.Flags().Int("workers", 1, "Number of concurrent trials")
	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table, json, csv")

	return cmd
}

// sweepConfig returns the sweep configuration overridden by the flags set on the command line.
func (a *app) sweepConfig(cmd *cobra.Command) (pl convergence.ParametersLiteral) {

	pl = a.config.Sweep

	if cmd.Flags().Changed("size") {
		pl.BasisSize, _ = cmd.Flags().GetInt("size")
	}

	if cmd.Flags().Changed("samples") {
		pl.SampleCounts, _ = cmd.Flags().GetIntSlice("samples")
	}

	if cmd.Flags().Changed("workers") {
		pl.Workers, _ = cmd.Flags().GetInt("workers")
	}

	return
}

func (a *app) sweep(pl convergence.ParametersLiteral) (report *sweepReport, err error) {

	var params convergence.Parameters
	if params, err = convergence.NewParametersFromLiteral(pl); err != nil {
		return
	}

	var h *convergence.Harness
	if h, err = convergence.NewHarness(params); err != nil {
		return
	}

	report = &sweepReport{
		RunID:      uuid.NewString(),
		Parameters: params.ParametersLiteral(),
		Skipped:    []int{},
	}

	logger := a.log.With().Str("run_id", report.RunID).Logger()

	logger.Info().
		Int("size", params.BasisSize()).
		Ints("sample_counts", params.SampleCounts()).
		Int("workers", params.Workers()).
		Msg("sweep started")

	start := time.Now()

	var curve convergence.ErrorCurve
	if curve, err = h.Run(); err != nil {
		return nil, err
	}

	for _, skip := range curve.Skipped {
		logger.Warn().Int("sample_count", skip.SampleCount).Err(skip.Err).Msg("basis degenerated, sample count skipped")
		report.Skipped = append(report.Skipped, skip.SampleCount)
	}

	report.Points = curve.Points

	if s, err := curve.Summary(); err != nil {
		logger.Warn().Err(err).Msg("no summary")
	} else {
		report.Summary = &s
	}

	if rate, err := curve.Rate(); err != nil {
		logger.Warn().Err(err).Msg("no convergence rate")
	} else {
		report.Rate = &rate
	}

	logger.Info().Dur("duration", time.Since(start)).Int("points", len(curve.Points)).Int("skipped", len(curve.Skipped)).Msg("sweep done")

	return report, nil
}

func (r *sweepReport) table(cmd *cobra.Command) error {

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "RUN\t%s\n", r.RunID)
	fmt.Fprintf(w, "SIZE\t%d\n\n", r.Parameters.BasisSize)

	fmt.Fprintln(w, "SAMPLES\tERROR\tCOEFFICIENT ERROR")
	for _, pt := range r.Points {
		fmt.Fprintf(w, "%d\t%s\t%s\n", pt.SampleCount, formatFloat(pt.Error), formatFloat(pt.CoefficientError))
	}

	if len(r.Skipped) > 0 {
		fmt.Fprintf(w, "\nSKIPPED\t%v\n", r.Skipped)
	}

	if r.Summary != nil {
		fmt.Fprintf(w, "\nMEAN\t%s\n", formatFloat(r.Summary.Mean))
		fmt.Fprintf(w, "MEDIAN\t%s\n", formatFloat(r.Summary.Median))
		fmt.Fprintf(w, "MIN\t%s\n", formatFloat(r.Summary.Min))
		fmt.Fprintf(w, "MAX\t%s\n", formatFloat(r.Summary.Max))
		fmt.Fprintf(w, "STDDEV\t%s\n", formatFloat(r.Summary.StdDev))
	}

	if r.Rate != nil {
		fmt.Fprintf(w, "RATE\t%s\n", formatFloat(*r.Rate))
	}

	return w.Flush()
}

// records returns one row per sample count, skipped counts having empty errors.
func (r *sweepReport) records() (records [][]string) {

	records = append(records, []string{"run_id", "sample_count", "error", "coefficient_error", "skipped"})

	for _, pt := range r.Points {
		records = append(records, []string{r.RunID, fmt.Sprint(pt.SampleCount), formatFloat(pt.Error), formatFloat(pt.CoefficientError), "false"})
	}

	for _, n := range r.Skipped {
		records = append(records, []string{r.RunID, fmt.Sprint(n), "", "", "true"})
	}

	return
}
