package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"simout/adapters/postgres"
	"simout/adapters/report"
	"simout/adapters/table"
	"simout/domain/simdata"
	"simout/internal/analyze"
	"simout/internal/compare"
	"simout/internal/config"
	"simout/internal/extract"
	"simout/internal/gather"
	"simout/ports"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "simout",
		Short: "Extract, analyze and compare statistical summaries of simulation output",
	}

	rootCmd.AddCommand(
		newGatherCmd(),
		newAnalyzeCmd(),
		newCompareCmd(),
		newPairwiseCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// extractorFromFlags builds the extraction strategy, falling back to
// environment configuration for unset flags.
func extractorFromFlags(cfg *config.Config, strategy string, startIter int, iters []int) (extract.Extractor, error) {
	if strategy == "" {
		strategy = cfg.Extract.Strategy
	}
	switch strategy {
	case "steady":
		if startIter == 0 {
			startIter = cfg.Extract.StartIter
		}
		return extract.NewSteadyState(startIter), nil
	case "snapshots":
		if len(iters) == 0 {
			iters = cfg.Extract.Iters
		}
		if len(iters) == 0 {
			return nil, fmt.Errorf("snapshots extractor needs --iters")
		}
		return extract.NewSnapshots(iters), nil
	default:
		return nil, fmt.Errorf("unknown extractor %q (use steady or snapshots)", strategy)
	}
}

// parseTests parses the per-summary test selector. An empty selector
// defaults to parametric tests for every summary of the extractor.
func parseTests(spec string, ex extract.Extractor) ([]compare.TestKind, error) {
	if spec == "" {
		plain, _ := ex.Names()
		return make([]compare.TestKind, len(plain)), nil
	}
	return compare.ParseTestKinds(strings.Split(spec, ","))
}

// parseOutputs accepts either an integer count or comma-separated names.
func parseOutputs(spec string) ([]string, error) {
	if n, err := strconv.Atoi(spec); err == nil {
		if n < 1 {
			return nil, fmt.Errorf("output count must be positive")
		}
		return simdata.AutoOutputs(n), nil
	}
	names := strings.Split(spec, ",")
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
		if names[i] == "" {
			return nil, fmt.Errorf("empty output name in %q", spec)
		}
	}
	return names, nil
}

// gatherDatasets gathers one dataset per "name=pattern" spec.
func gatherDatasets(ctx context.Context, g *gather.Gatherer, specs []string, outputs []string) ([]*simdata.Dataset, error) {
	datasets := make([]*simdata.Dataset, len(specs))
	for i, spec := range specs {
		name, pattern, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("dataset spec %q is not name=pattern", spec)
		}
		ds, err := g.Gather(ctx, name, pattern, outputs)
		if err != nil {
			return nil, err
		}
		datasets[i] = ds
	}
	return datasets, nil
}

func openStore(cfg *config.Config) (ports.ResultStore, error) {
	if cfg.Store.DatabaseURL == "" {
		return nil, nil
	}
	return postgres.NewResultStore(cfg.Store.DatabaseURL)
}

func newGatherCmd() *cobra.Command {
	var outputSpec, strategy, outFile string
	var startIter int
	var iters []int

	cmd := &cobra.Command{
		Use:   "gather [name] [pattern]",
		Short: "Gather per-file summaries from replication output files into a dataset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			outputs, err := parseOutputs(outputSpec)
			if err != nil {
				return err
			}
			ex, err := extractorFromFlags(cfg, strategy, startIter, iters)
			if err != nil {
				return err
			}

			g := gather.New(table.NewGlobLister(), table.NewFileReader(), ex)
			ds, err := g.Gather(cmd.Context(), args[0], args[1], outputs)
			if err != nil {
				return err
			}

			if store, err := openStore(cfg); err != nil {
				return err
			} else if store != nil {
				defer store.Close()
				if err := store.SaveDataset(cmd.Context(), ds); err != nil {
					return err
				}
				log.Printf("archived dataset %s", ds.ID)
			}

			return writeJSON(outFile, ds)
		},
	}

	cmd.Flags().StringVar(&outputSpec, "outputs", "1", "Output count or comma-separated output names")
	cmd.Flags().StringVar(&strategy, "extractor", "", "Extraction strategy: steady or snapshots")
	cmd.Flags().IntVar(&startIter, "start-iter", 0, "Steady-state truncation iteration (1-based)")
	cmd.Flags().IntSliceVar(&iters, "iters", nil, "Snapshot iteration indices (1-based)")
	cmd.Flags().StringVar(&outFile, "out", "", "Write dataset JSON to file instead of stdout")

	return cmd
}

func newAnalyzeCmd() *cobra.Command {
	var alpha float64
	var format, xlsxFile string

	cmd := &cobra.Command{
		Use:   "analyze [dataset.json]",
		Short: "Compute distributional statistics for every focal measure of a gathered dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if alpha == 0 {
				alpha = cfg.Analysis.Alpha
			}

			ds, err := readDataset(args[0])
			if err != nil {
				return err
			}
			a, err := analyze.AnalyzeDataset(ds, alpha)
			if err != nil {
				return err
			}

			if store, err := openStore(cfg); err != nil {
				return err
			} else if store != nil {
				defer store.Close()
				if err := store.SaveAnalysis(cmd.Context(), a); err != nil {
					return err
				}
			}

			if xlsxFile != "" {
				if err := report.ExportWorkbook(xlsxFile, []*simdata.Dataset{ds}, []*simdata.Analysis{a}); err != nil {
					return err
				}
			}

			switch format {
			case "text":
				fmt.Print(report.AnalysisText(ds, a))
			case "latex":
				fmt.Print(report.AnalysisLaTeX(ds, a))
			case "json":
				return writeJSON("", a)
			default:
				return fmt.Errorf("unknown format %q", format)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&alpha, "alpha", 0, "Significance level (default from SIMOUT_ALPHA or 0.05)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, latex or json")
	cmd.Flags().StringVar(&xlsxFile, "xlsx", "", "Also export dataset and analysis to an xlsx workbook")

	return cmd
}

func newCompareCmd() *cobra.Command {
	var outputSpec, strategy, testSpec, format string
	var startIter int
	var iters []int
	var alpha float64

	cmd := &cobra.Command{
		Use:   "compare [name=pattern] [name=pattern...]",
		Short: "Run per-focal-measure hypothesis tests across implementations",
		Long: `Gather one dataset per name=pattern argument and test every focal
measure across them. Two datasets use two-sample tests (t-test or
Mann-Whitney); more use n-sample tests (ANOVA or Kruskal-Wallis).

Example: simout compare matlab='runs/m/*.tsv' java='runs/j/*.tsv' --outputs 6 --start-iter 1000 --tests p,n,p,n,p,n`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, cmpResult, cfg, err := runComparison(cmd.Context(), args, outputSpec, strategy, startIter, iters, testSpec, alpha)
			if err != nil {
				return err
			}

			if store, err := openStore(cfg); err != nil {
				return err
			} else if store != nil {
				defer store.Close()
				if err := store.SaveComparison(cmd.Context(), cmpResult); err != nil {
					return err
				}
			}

			switch format {
			case "text":
				fmt.Print(report.ComparisonText(ds, cmpResult))
			case "latex":
				fmt.Print(report.ComparisonLaTeX(ds, cmpResult))
			case "markdown":
				fmt.Print(report.ComparisonMarkdown(ds, cmpResult, nil))
			case "json":
				return writeJSON("", cmpResult)
			default:
				return fmt.Errorf("unknown format %q", format)
			}
			return nil
		},
	}

	addCompareFlags(cmd, &outputSpec, &strategy, &testSpec, &startIter, &iters, &alpha)
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, latex, markdown or json")

	return cmd
}

func newPairwiseCmd() *cobra.Command {
	var outputSpec, strategy, testSpec string
	var startIter int
	var iters []int
	var alpha float64

	cmd := &cobra.Command{
		Use:   "pairwise [name=pattern] [name=pattern] [name=pattern...]",
		Short: "Build the pairwise conflict matrix across implementations",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if alpha == 0 {
				alpha = cfg.Analysis.Alpha
			}
			outputs, err := parseOutputs(outputSpec)
			if err != nil {
				return err
			}
			ex, err := extractorFromFlags(cfg, strategy, startIter, iters)
			if err != nil {
				return err
			}
			tests, err := parseTests(testSpec, ex)
			if err != nil {
				return err
			}

			g := gather.New(table.NewGlobLister(), table.NewFileReader(), ex)
			datasets, err := gatherDatasets(cmd.Context(), g, args, outputs)
			if err != nil {
				return err
			}

			m, err := compare.ComparePairwise(alpha, tests, datasets)
			if err != nil {
				return err
			}
			fmt.Print(report.ConflictText(m))
			return nil
		},
	}

	addCompareFlags(cmd, &outputSpec, &strategy, &testSpec, &startIter, &iters, &alpha)

	return cmd
}

func addCompareFlags(cmd *cobra.Command, outputSpec, strategy, testSpec *string, startIter *int, iters *[]int, alpha *float64) {
	cmd.Flags().StringVar(outputSpec, "outputs", "1", "Output count or comma-separated output names")
	cmd.Flags().StringVar(strategy, "extractor", "", "Extraction strategy: steady or snapshots")
	cmd.Flags().IntVar(startIter, "start-iter", 0, "Steady-state truncation iteration (1-based)")
	cmd.Flags().IntSliceVar(iters, "iters", nil, "Snapshot iteration indices (1-based)")
	cmd.Flags().StringVar(testSpec, "tests", "", "Per-summary test kinds, e.g. p,n,p,n,p,n")
	cmd.Flags().Float64Var(alpha, "alpha", 0, "Significance level (default from SIMOUT_ALPHA or 0.05)")
}

func runComparison(ctx context.Context, specs []string, outputSpec, strategy string, startIter int, iters []int, testSpec string, alpha float64) (*simdata.Dataset, *simdata.Comparison, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	if alpha == 0 {
		alpha = cfg.Analysis.Alpha
	}
	outputs, err := parseOutputs(outputSpec)
	if err != nil {
		return nil, nil, nil, err
	}
	ex, err := extractorFromFlags(cfg, strategy, startIter, iters)
	if err != nil {
		return nil, nil, nil, err
	}
	tests, err := parseTests(testSpec, ex)
	if err != nil {
		return nil, nil, nil, err
	}

	g := gather.New(table.NewGlobLister(), table.NewFileReader(), ex)
	datasets, err := gatherDatasets(ctx, g, specs, outputs)
	if err != nil {
		return nil, nil, nil, err
	}

	cmpResult, err := compare.Compare(alpha, tests, datasets)
	if err != nil {
		return nil, nil, nil, err
	}
	return datasets[0], cmpResult, cfg, nil
}

func readDataset(path string) (*simdata.Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ds simdata.Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dataset %s: %w", path, err)
	}
	return &ds, nil
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
