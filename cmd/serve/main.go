// Command serve computes one cross-implementation comparison at
// startup and serves the rendered report over HTTP.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"simout/adapters/report"
	"simout/adapters/table"
	"simout/domain/simdata"
	"simout/internal/compare"
	"simout/internal/config"
	"simout/internal/extract"
	"simout/internal/gather"
)

func main() {
	_ = godotenv.Load()

	outputSpec := flag.String("outputs", "1", "output count or comma-separated names")
	startIter := flag.Int("start-iter", 0, "steady-state truncation iteration (1-based)")
	testSpec := flag.String("tests", "", "per-summary test kinds, e.g. p,n,p,n,p,n")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	specs := flag.Args()
	if len(specs) < 2 {
		fmt.Fprintln(os.Stderr, "usage: serve [flags] name=pattern name=pattern...")
		os.Exit(1)
	}

	ds, cmpResult, conflicts, err := run(cfg, specs, *outputSpec, *startIter, *testSpec)
	if err != nil {
		log.Fatal(err)
	}

	md := report.ComparisonMarkdown(ds, cmpResult, conflicts)
	page := report.ToHTML(md)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	})
	r.Get("/api/comparison", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(cmpResult)
	})
	r.Get("/api/conflicts", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(conflicts)
	})

	addr := ":" + cfg.Server.Port
	log.Printf("serving comparison report on %s", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}

func run(cfg *config.Config, specs []string, outputSpec string, startIter int, testSpec string) (*simdata.Dataset, *simdata.Comparison, *simdata.ConflictMatrix, error) {
	outputs, err := parseOutputs(outputSpec)
	if err != nil {
		return nil, nil, nil, err
	}
	if startIter == 0 {
		startIter = cfg.Extract.StartIter
	}
	ex := extract.NewSteadyState(startIter)
	var tests []compare.TestKind
	if testSpec == "" {
		plain, _ := ex.Names()
		tests = make([]compare.TestKind, len(plain))
	} else if tests, err = compare.ParseTestKinds(strings.Split(testSpec, ",")); err != nil {
		return nil, nil, nil, err
	}

	g := gather.New(table.NewGlobLister(), table.NewFileReader(), ex)
	datasets := make([]*simdata.Dataset, len(specs))
	for i, spec := range specs {
		name, pattern, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, nil, nil, fmt.Errorf("dataset spec %q is not name=pattern", spec)
		}
		if datasets[i], err = g.Gather(context.Background(), name, pattern, outputs); err != nil {
			return nil, nil, nil, err
		}
	}

	cmpResult, err := compare.Compare(cfg.Analysis.Alpha, tests, datasets)
	if err != nil {
		return nil, nil, nil, err
	}

	var conflicts *simdata.ConflictMatrix
	if len(datasets) > 2 {
		if conflicts, err = compare.ComparePairwise(cfg.Analysis.Alpha, tests, datasets); err != nil {
			return nil, nil, nil, err
		}
	}
	return datasets[0], cmpResult, conflicts, nil
}

func parseOutputs(spec string) ([]string, error) {
	var n int
	if _, err := fmt.Sscanf(spec, "%d", &n); err == nil && !strings.Contains(spec, ",") {
		return simdata.AutoOutputs(n), nil
	}
	names := strings.Split(spec, ",")
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}
	return names, nil
}
