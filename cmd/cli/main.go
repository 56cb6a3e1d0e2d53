package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"goagree/adapters/excel"
	"goagree/domain/agreement"
	"goagree/internal/analysis"
	"goagree/internal/testkit"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "goagree",
		Short: "Method-agreement analysis for paired measurement series",
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newDemoCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	var alpha float64
	var ratio, sd, correlation, regression, proportionalNoise, logTransform bool
	var sheet string

	cmd := &cobra.Command{
		Use:   "analyze [data-file]",
		Short: "Run an agreement analysis on a CSV or XLSX file",
		Long: `Run an agreement analysis on paired measurement series.

The file has one row per subject with an even number of value columns: the
first half are the X-method replicates, the second half the Y-method
replicates. A non-numeric first row is treated as a header. Blank cells mean
a subject has fewer replicates than the others.

Example: goagree analyze bp.xlsx --correlation --regression`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y, err := loadFile(args[0], sheet)
			if err != nil {
				return err
			}

			req := agreement.Request{
				Alpha:       alpha,
				Ratio:       ratio,
				SD:          sd,
				Correlation: correlation,
				Regression: agreement.RegressionRequest{
					Enabled:                  regression,
					ConstantResidualVariance: !proportionalNoise,
				},
			}
			if logTransform {
				req.Transform = math.Log
			}

			result, err := analysis.NewAnalyzer().Analyze(x, y, req)
			if err != nil {
				return err
			}

			// On the log scale the statistics back-transform to ratios.
			if logTransform {
				inv := agreement.ExpCombiner(agreement.DifferenceCombiner())
				d := result.Difference
				fmt.Printf("Back-transformed ratio scale: bias %.4f, limits [%.4f, %.4f]\n",
					inv.Inverse(d.Mu), inv.Inverse(d.Loa.Lower), inv.Inverse(d.Loa.Upper))
			}
			return printResult(result)
		},
	}

	cmd.Flags().Float64Var(&alpha, "alpha", 0.05, "Two-sided significance level for intervals")
	cmd.Flags().BoolVar(&ratio, "ratio", false, "Also analyze the ratio x/y of each pair")
	cmd.Flags().BoolVar(&sd, "sd", false, "Also analyze the per-subject replicate spread")
	cmd.Flags().BoolVar(&correlation, "correlation", false, "Report Pearson correlation between the raw series")
	cmd.Flags().BoolVar(&regression, "regression", false, "Model bias as a function of the measurement magnitude")
	cmd.Flags().BoolVar(&proportionalNoise, "proportional-noise", false, "Let the limit bands widen with magnitude (with --regression)")
	cmd.Flags().BoolVar(&logTransform, "log", false, "Apply a natural log to both series before analysis")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet name for xlsx input (default: first sheet)")

	return cmd
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the analysis on the embedded blood-pressure dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y := testkit.BloodPressure()

			req := agreement.DefaultRequest()
			req.Correlation = true

			result, err := analysis.NewAnalyzer().Analyze(x, y, req)
			if err != nil {
				return err
			}

			fmt.Printf("Subjects: %d (%s)\n", result.Subjects, result.Mode)
			fmt.Printf("Bias: %.2f mmHg\n", result.Difference.Mu)
			fmt.Printf("Limits of agreement: [%.2f, %.2f]\n",
				result.Difference.Loa.Lower, result.Difference.Loa.Upper)
			fmt.Printf("Pearson r: %.3f (p=%.4g)\n\n", result.Correlation.Rho, result.Correlation.P)
			return printResult(result)
		},
	}
}

func loadFile(path, sheet string) (x, y agreement.Subjects, err error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return excel.NewReader(path, sheet).Read()
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()

		r := csv.NewReader(f)
		r.FieldsPerRecord = -1
		rows, err := r.ReadAll()
		if err != nil {
			return nil, nil, fmt.Errorf("read csv: %w", err)
		}
		return excel.ParseRows(rows)
	default:
		return nil, nil, fmt.Errorf("unsupported file type %q (want .csv or .xlsx)", filepath.Ext(path))
	}
}

func printResult(result *agreement.Result) error {
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
