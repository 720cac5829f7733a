package main

import (
	"encoding/hex"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tuneinsight/orthopoly/orthogonal"
	"github.com/tuneinsight/orthopoly/utils"
)

type basisReport struct {
	Strategy     string      `json:"strategy"`
	Size         int         `json:"size"`
	Polynomials  []string    `json:"polynomials"`
	Coefficients [][]float64 `json:"coefficients"`
	// Gram, Deviation and Condition are measured under the analytic inner product.
	Gram      [][]float64 `json:"gram"`
	Deviation float64     `json:"deviation"`
	Condition float64     `json:"condition"`
	Digest    string      `json:"digest"`

	Reference         [][]float64 `json:"reference,omitempty"`
	ReferenceDistance *float64    `json:"reference_distance,omitempty"`

	// Lut holds the values of each polynomial on evenly spaced points of [-1, 1].
	Lut [][]float64 `json:"lut,omitempty"`
}

func newBasisCmd(a *app) *cobra.Command {

	var format string
	var reference bool
	var lut int

	cmd := &cobra.Command{
		Use:   "basis",
		Short: "Orthonormalize the monomial basis",
		Long: `Orthonormalize the monomials 1, x, ..., x^(N-1) with the Gram-Schmidt process
under the selected inner product and report the coefficients, the Gram matrix
under the exact inner product, its deviation from the identity, its condition
number and a digest of the coefficients. With --lut, the values of each
polynomial on evenly spaced points of [-1, 1] are also reported.

Examples:
  orthopoly basis --size 5
  orthopoly basis --size 5 --strategy quadrature --samples 100 --reference
  orthopoly basis --size 8 --strategy gauss --samples 8 --format json
  orthopoly basis --size 4 --lut 11 --format csv`,
		RunE: func(cmd *cobra.Command, args []string) (err error) {

			if format, err = checkFormat(format); err != nil {
				return
			}

			if cmd.Flags().Changed("lut") && lut < 2 {
				return fmt.Errorf("%w: --lut=%d must be at least 2", orthogonal.ErrInvalidArgument, lut)
			}

			cfg := a.basisConfig(cmd)

			var report *basisReport
			if report, err = a.buildBasis(cfg, reference, lut); err != nil {
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
	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table, json, csv")
	cmd.Flags().BoolVar(&reference, "reference", false, "Also report the closed-form Legendre basis and the distance to it")
	cmd.Flags().IntVar(&lut, "lut", 0, "Also report the values of each polynomial on this many evenly spaced points of [-1, 1]")

	return cmd
}

func addBasisFlags(cmd *cobra.Command) {
	cmd.Flags().Int("size", 5, "Number of basis polynomials")
	cmd.Flags().String("strategy", "analytic", "Inner product: analytic, quadrature, gauss")
	cmd.Flags().Int("samples", 1000, "Number of quadrature samples or Gauss-Legendre nodes")
}

// basisConfig returns the basis configuration overridden by the flags set on the command line.
func (a *app) basisConfig(cmd *cobra.Command) (cfg BasisConfig) {

	cfg = a.config.Basis

	if cmd.Flags().Changed("size") {
		cfg.Size, _ = cmd.Flags().GetInt("size")
	}

	if cmd.Flags().Changed("strategy") {
		cfg.Strategy, _ = cmd.Flags().GetString("strategy")
	}

	if cmd.Flags().Changed("samples") {
		cfg.Samples, _ = cmd.Flags().GetInt("samples")
	}

	return
}

func (a *app) newBasis(cfg BasisConfig) (basis orthogonal.Basis, ip orthogonal.InnerProduct, err error) {

	if cfg.Size < 1 {
		return nil, nil, fmt.Errorf("%w: basis size %d must be at least 1", orthogonal.ErrInvalidArgument, cfg.Size)
	}

	if ip, err = cfg.InnerProduct(); err != nil {
		return
	}

	a.log.Info().Int("size", cfg.Size).Stringer("strategy", ip).Msg("orthonormalizing basis")

	if basis, err = orthogonal.NewOrthonormalBasis(cfg.Size, ip); err != nil {
		return nil, nil, err
	}

	return
}

// buildBasis orthonormalizes the basis described by cfg. The Legendre reference is
// attached if reference is set, and the look-up tables if lut is at least 2.
func (a *app) buildBasis(cfg BasisConfig, reference bool, lut int) (report *basisReport, err error) {

	var basis orthogonal.Basis
	var ip orthogonal.InnerProduct
	if basis, ip, err = a.newBasis(cfg); err != nil {
		return
	}

	report = &basisReport{
		Strategy:     ip.String(),
		Size:         len(basis),
		Coefficients: basis.Coefficients(),
	}

	for i := range basis {
		report.Polynomials = append(report.Polynomials, basis[i].String())
	}

	g, err := basis.GramMatrix(orthogonal.Analytic{})
	if err != nil {
		return nil, err
	}

	report.Gram = make([][]float64, len(basis))
	for i := range report.Gram {
		report.Gram[i] = make([]float64, len(basis))
		for j := range report.Gram[i] {
			report.Gram[i][j] = g.At(i, j)
		}
	}

	if report.Deviation, err = basis.Deviation(orthogonal.Analytic{}); err != nil {
		return nil, err
	}

	if report.Condition, err = basis.Condition(orthogonal.Analytic{}); err != nil {
		return nil, err
	}

	digest, err := basis.Digest()
	if err != nil {
		return nil, err
	}
	report.Digest = hex.EncodeToString(digest[:])

	if reference {
		legendre := orthogonal.NewLegendreBasis(len(basis))
		report.Reference = legendre.Coefficients()

		var dist float64
		for i := range basis {
			if d := utils.MaxAbsDiff(basis[i].Coeffs, legendre[i].Coeffs); d > dist {
				dist = d
			}
		}
		report.ReferenceDistance = &dist
	}

	if lut >= 2 {
		report.Lut = basis.Lut(lut)
	}

	a.log.Debug().Float64("deviation", report.Deviation).Float64("condition", report.Condition).Str("digest", report.Digest).Msg("basis ready")

	return
}

func (r *basisReport) table(cmd *cobra.Command) error {

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "STRATEGY\t%s\n", r.Strategy)
	fmt.Fprintf(w, "SIZE\t%d\n\n", r.Size)

	fmt.Fprintln(w, "INDEX\tPOLYNOMIAL")
	for i, p := range r.Polynomials {
		fmt.Fprintf(w, "%d\t%s\n", i, p)
	}

	fmt.Fprintln(w, "\nGRAM (analytic)")
	for i := range r.Gram {
		fmt.Fprintf(w, "%d\t%s\n", i, formatFloats(r.Gram[i]))
	}

	fmt.Fprintf(w, "\nDEVIATION\t%s\n", formatFloat(r.Deviation))
	fmt.Fprintf(w, "CONDITION\t%s\n", formatFloat(r.Condition))
	fmt.Fprintf(w, "DIGEST\t%s\n", r.Digest)

	if r.ReferenceDistance != nil {
		fmt.Fprintln(w, "\nREFERENCE (Legendre)")
		for i := range r.Reference {
			fmt.Fprintf(w, "%d\t%s\n", i, formatFloats(r.Reference[i]))
		}
		fmt.Fprintf(w, "DISTANCE\t%s\n", formatFloat(*r.ReferenceDistance))
	}

	if r.Lut != nil {
		fmt.Fprintln(w, "\nLUT")
		for i := range r.Lut {
			fmt.Fprintf(w, "%d\t%s\n", i, formatFloats(r.Lut[i]))
		}
	}

	return w.Flush()
}

// records returns one "kind,i,j,value" row per coefficient, Gram entry and scalar.
func (r *basisReport) records() (records [][]string) {

	records = append(records, []string{"kind", "i", "j", "value"})

	for i := range r.Coefficients {
		for k, c := range r.Coefficients[i] {
			records = append(records, []string{"coefficient", fmt.Sprint(i), fmt.Sprint(k), formatFloat(c)})
		}
	}

	for i := range r.Gram {
		for j, g := range r.Gram[i] {
			records = append(records, []string{"gram", fmt.Sprint(i), fmt.Sprint(j), formatFloat(g)})
		}
	}

	for i := range r.Reference {
		for k, c := range r.Reference[i] {
			records = append(records, []string{"reference", fmt.Sprint(i), fmt.Sprint(k), formatFloat(c)})
		}
	}

	for i := range r.Lut {
		for k, v := range r.Lut[i] {
			records = append(records, []string{"lut", fmt.Sprint(i), fmt.Sprint(k), formatFloat(v)})
		}
	}

	records = append(records,
		[]string{"deviation", "", "", formatFloat(r.Deviation)},
		[]string{"condition", "", "", formatFloat(r.Condition)},
		[]string{"digest", "", "", r.Digest},
	)

	if r.ReferenceDistance != nil {
		records = append(records, []string{"reference_distance", "", "", formatFloat(*r.ReferenceDistance)})
	}

	return
}
