package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tuneinsight/orthopoly/orthogonal"
	"github.com/tuneinsight/orthopoly/separable"
	"github.com/tuneinsight/orthopoly/utils/sampling"
)

type evalReport struct {
	Strategy string      `json:"strategy"`
	Index    []int       `json:"index"`
	Degree   int         `json:"degree"`
	Rank     *int        `json:"rank,omitempty"`
	Points   [][]float64 `json:"points"`
	Values   []float64   `json:"values"`

	Gradients [][]float64 `json:"gradients,omitempty"`

	Against      []int    `json:"against,omitempty"`
	InnerProduct *float64 `json:"inner_product,omitempty"`
}

// evalOptions are the optional outputs of the eval command.
type evalOptions struct {
	// maxDegree is the total degree bound the rank of the index is reported for, or -1.
	maxDegree int
	against   separable.MultiIndex
	gradient  bool
}

func newEvalCmd(a *app) *cobra.Command {

	var format, pointsPath, seed string
	var index, against []int
	var random, rank, dims, degree int
	var gradient bool

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate a separable basis function",
		Long: `Evaluate the product prod_d basis[index[d]](x[d]) of one-dimensional basis
polynomials at points read from a CSV file, one point per row, or at
random points of [-1, 1]^d. Random points are reproducible when a seed
is given and drawn from the system source otherwise.

The basis function is selected either by its multi-index or by its rank
among the multi-indices of a dimension and a maximal total degree, in the
order listed by the indices command. With --degree, the rank of the index
is reported. With --against, the Monte-Carlo estimate of the inner product
of the two basis functions over the points is reported, and with --gradient
the partial derivatives at each point.

Examples:
  orthopoly eval --size 5 --index 1,0,2,3 --points points.csv
  cat points.csv | orthopoly eval --index 0,4 --points -
  orthopoly eval --size 5 --index 1,0,2,3 --random 10 --seed demo
  orthopoly eval --rank 7 --dims 2 --degree 3 --gradient
  orthopoly eval --index 1,2 --against 1,2 --random 10000`,
		RunE: func(cmd *cobra.Command, args []string) (err error) {

			if format, err = checkFormat(format); err != nil {
				return
			}

			opts := evalOptions{maxDegree: -1, gradient: gradient}

			if cmd.Flags().Changed("degree") {
				if degree < 0 {
					return fmt.Errorf("%w: --degree=%d must be non-negative", orthogonal.ErrInvalidArgument, degree)
				}
				opts.maxDegree = degree
			}

			switch {
			case cmd.Flags().Changed("rank") && len(index) != 0:
				return fmt.Errorf("%w: --index and --rank are exclusive", orthogonal.ErrInvalidArgument)
			case cmd.Flags().Changed("rank"):
				if opts.maxDegree < 0 {
					return fmt.Errorf("%w: --rank requires --degree", orthogonal.ErrInvalidArgument)
				}
				var m separable.MultiIndex
				if m, err = separable.At(rank, dims, degree); err != nil {
					return
				}
				index = m
			case len(index) == 0:
				return fmt.Errorf("%w: empty --index", orthogonal.ErrInvalidArgument)
			}

			if len(against) != 0 {
				opts.against = against
			}

			var points [][]float64
			switch {
			case pointsPath != "" && cmd.Flags().Changed("random"):
				return fmt.Errorf("%w: --points and --random are exclusive", orthogonal.ErrInvalidArgument)
			case pointsPath == "-":
				points, err = readPoints(cmd.InOrStdin())
			case pointsPath != "":
				var f *os.File
				if f, err = os.Open(pointsPath); err != nil {
					return fmt.Errorf("failed to open points file: %w", err)
				}
				defer f.Close()
				points, err = readPoints(f)
			default:
				points, err = randomPoints(random, len(index), seed)
			}

			if err != nil {
				return
			}

			var report *evalReport
			if report, err = a.eval(a.basisConfig(cmd), separable.MultiIndex(index), points, opts); err != nil {
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

	addBasisFlags(cmd)
	cmd.Flags().IntSliceVar(&index, "index", nil, "Comma-separated multi-index, one basis index per dimension")
	cmd.Flags().IntVar(&rank, "rank", 0, "Rank of the multi-index among those of --dims dimensions and total degree at most --degree")
	cmd.Flags().IntVar(&dims, "dims", 1, "Number of dimensions of the multi-index selected by --rank")
	cmd.Flags().IntVar(&degree, "degree", 0, "Maximal total degree of the enumeration --rank refers to, also reports the rank of --index")
	cmd.Flags().IntSliceVar(&against, "against", nil, "Second multi-index, reports the inner product estimated over the points")
	cmd.Flags().BoolVar(&gradient, "gradient", false, "Also report the partial derivatives at each point")
	cmd.Flags().StringVar(&pointsPath, "points", "", "CSV file of points, - for standard input")
	cmd.Flags().IntVar(&random, "random", 10, "Number of random points when no points file is given")
	cmd.Flags().StringVar(&seed, "seed", "", "Seed of the random points, drawn from the system source if empty")
	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table, json, csv")

	return cmd
}

// readPoints parses one point per CSV row. Empty lines and lines starting with # are ignored.
func readPoints(r io.Reader) (points [][]float64, err error) {

	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = 0
	reader.TrimLeadingSpace = true

	for line := 1; ; line++ {

		var record []string
		if record, err = reader.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read points: %w", err)
		}

		point := make([]float64, len(record))
		for d, field := range record {
			if point[d], err = strconv.ParseFloat(strings.TrimSpace(field), 64); err != nil {
				return nil, fmt.Errorf("failed to read points: record %d: %w", line, err)
			}
		}

		points = append(points, point)
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("%w: no point", orthogonal.ErrInvalidArgument)
	}

	return points, nil
}

// randomPoints draws n points of [-1, 1]^dims from a PRNG keyed with seed, or
// from the system source if seed is empty.
func randomPoints(n, dims int, seed string) (points [][]float64, err error) {

	if n < 1 {
		return nil, fmt.Errorf("%w: --random=%d must be at least 1", orthogonal.ErrInvalidArgument, n)
	}

	var prng sampling.PRNG
	if seed != "" {
		if prng, err = sampling.NewKeyedPRNG([]byte(seed)); err != nil {
			return
		}
	} else if prng, err = sampling.NewPRNG(); err != nil {
		return
	}

	return sampling.Points(prng, n, dims, -1, 1)
}

func (a *app) eval(cfg BasisConfig, index separable.MultiIndex, points [][]float64, opts evalOptions) (report *evalReport, err error) {

	var basis orthogonal.Basis
	var ip orthogonal.InnerProduct
	if basis, ip, err = a.newBasis(cfg); err != nil {
		return
	}

	report = &evalReport{
		Strategy: ip.String(),
		Index:    index,
		Degree:   index.Degree(),
		Points:   points,
	}

	if report.Values, err = separable.EvaluatePoints(basis, index, points); err != nil {
		return nil, err
	}

	if opts.maxDegree >= 0 {
		var rank int
		if rank, err = separable.IndexOf(index, opts.maxDegree); err != nil {
			return nil, err
		}
		report.Rank = &rank
	}

	if opts.gradient {
		report.Gradients = make([][]float64, len(points))
		for i := range points {
			if report.Gradients[i], err = separable.Gradient(basis, index, points[i]); err != nil {
				return nil, err
			}
		}
	}

	if opts.against != nil {
		var v float64
		if v, err = separable.PointInnerProduct(basis, index, opts.against, points); err != nil {
			return nil, err
		}
		report.Against = opts.against
		report.InnerProduct = &v
	}

	a.log.Debug().Ints("index", index).Int("points", len(points)).Msg("basis function evaluated")

	return
}

func (r *evalReport) table(cmd *cobra.Command) error {

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "STRATEGY\t%s\n", r.Strategy)
	fmt.Fprintf(w, "INDEX\t%v\n", r.Index)
	fmt.Fprintf(w, "DEGREE\t%d\n", r.Degree)
	if r.Rank != nil {
		fmt.Fprintf(w, "RANK\t%d\n", *r.Rank)
	}
	if r.InnerProduct != nil {
		fmt.Fprintf(w, "AGAINST\t%v\n", r.Against)
		fmt.Fprintf(w, "INNER PRODUCT\t%s\n", formatFloat(*r.InnerProduct))
	}
	fmt.Fprintln(w)

	if r.Gradients != nil {
		fmt.Fprintln(w, "POINT\tVALUE\tGRADIENT")
		for i := range r.Points {
			fmt.Fprintf(w, "%s\t%s\t%s\n", formatFloats(r.Points[i]), formatFloat(r.Values[i]), formatFloats(r.Gradients[i]))
		}
		return w.Flush()
	}

	fmt.Fprintln(w, "POINT\tVALUE")
	for i := range r.Points {
		fmt.Fprintf(w, "%s\t%s\n", formatFloats(r.Points[i]), formatFloat(r.Values[i]))
	}

	return w.Flush()
}

// records returns one row per point: its coordinates followed by the value and,
// if computed, the partial derivatives.
func (r *evalReport) records() (records [][]string) {

	header := make([]string, 0, 2*len(r.Index)+1)
	for d := range r.Index {
		header = append(header, fmt.Sprintf("x%d", d))
	}
	header = append(header, "value")
	if r.Gradients != nil {
		for d := range r.Index {
			header = append(header, fmt.Sprintf("dx%d", d))
		}
	}
	records = append(records, header)

	for i := range r.Points {
		record := make([]string, 0, len(header))
		for _, x := range r.Points[i] {
			record = append(record, formatFloat(x))
		}
		record = append(record, formatFloat(r.Values[i]))
		if r.Gradients != nil {
			for _, g := range r.Gradients[i] {
				record = append(record, formatFloat(g))
			}
		}
		records = append(records, record)
	}

	return
}
