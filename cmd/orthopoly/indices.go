package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tuneinsight/orthopoly/orthogonal"
	"github.com/tuneinsight/orthopoly/separable"
)

type indicesReport struct {
	Dims    int     `json:"dims"`
	Degree  int     `json:"degree"`
	Count   int     `json:"count"`
	Indices [][]int `json:"indices"`
}

func newIndicesCmd(a *app) *cobra.Command {

	var format string
	var dims, degree int

	cmd := &cobra.Command{
		Use:   "indices",
		Short: "List the multi-indices of a total degree basis",
		Long: `List the multi-indices of a given dimension and total degree at most the
given degree, ranked in the order eval --rank refers to.

Examples:
  orthopoly indices --dims 2 --degree 3
  orthopoly indices --dims 4 --degree 2 --format csv`,
		RunE: func(cmd *cobra.Command, args []string) (err error) {

			if format, err = checkFormat(format); err != nil {
				return
			}

			var report *indicesReport
			if report, err = a.indices(dims, degree); err != nil {
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

	cmd.Flags().IntVar(&dims, "dims", 1, "Number of dimensions")
	cmd.Flags().IntVar(&degree, "degree", 0, "Maximal total degree")
	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table, json, csv")

	return cmd
}

func (a *app) indices(dims, degree int) (report *indicesReport, err error) {

	if dims < 1 || degree < 0 {
		return nil, fmt.Errorf("%w: --dims=%d must be at least 1 and --degree=%d non-negative", orthogonal.ErrInvalidArgument, dims, degree)
	}

	report = &indicesReport{
		Dims:   dims,
		Degree: degree,
		Count:  separable.Count(dims, degree),
	}

	for _, m := range separable.Enumerate(dims, degree) {
		report.Indices = append(report.Indices, m)
	}

	a.log.Debug().Int("dims", dims).Int("degree", degree).Int("count", report.Count).Msg("multi-indices enumerated")

	return
}

func (r *indicesReport) table(cmd *cobra.Command) error {

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "DIMS\t%d\n", r.Dims)
	fmt.Fprintf(w, "DEGREE\t%d\n", r.Degree)
	fmt.Fprintf(w, "COUNT\t%d\n\n", r.Count)

	fmt.Fprintln(w, "RANK\tINDEX\tDEGREE")
	for i, m := range r.Indices {
		fmt.Fprintf(w, "%d\t%v\t%d\n", i, m, separable.MultiIndex(m).Degree())
	}

	return w.Flush()
}

// records returns one row per multi-index: its rank followed by its entries.
func (r *indicesReport) records() (records [][]string) {

	header := []string{"rank"}
	for d := 0; d < r.Dims; d++ {
		header = append(header, fmt.Sprintf("i%d", d))
	}
	records = append(records, header)

	for i, m := range r.Indices {
		record := []string{fmt.Sprint(i)}
		for _, v := range m {
			record = append(record, fmt.Sprint(v))
		}
		records = append(records, record)
	}

	return
}
