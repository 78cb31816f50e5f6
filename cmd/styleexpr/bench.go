package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/martykuc/styleexpr/internal/propvalue"
)

// runBench parses the input once and evaluates it n times, reporting
// humanized throughput. Grounded on the teacher's go.mod carrying
// dustin/go-humanize as a direct dependency with no retrieved call site in
// this subset; CLI benchmark output is a natural, low-risk home for it.
func runBench(args []string, runID string) error {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	file := fs.String("f", "-", "input file (- for stdin)")
	outType := fs.String("type", "*", "expected output type: number, string, boolean, color, *")
	zoom := fs.Float64("zoom", 0, "current zoom level")
	props := fs.String("props", "", "feature properties as a JSON/YAML object file")
	n := fs.Int("n", 100000, "number of evaluations to run")
	fs.Parse(args)

	et, err := parseOutType(*outType)
	if err != nil {
		return err
	}
	dpv, errs, err := loadPropertyValue(*file, et)
	if err != nil {
		return err
	}
	if len(errs) > 0 {
		printConvertErrors(errs)
		return fmt.Errorf("%d parse error(s)", len(errs))
	}
	if dpv.Undefined || dpv.Kind == propvalue.KindConstant {
		fmt.Println("nothing to benchmark: input evaluates to a constant")
		return nil
	}

	ctx, err := buildEvalContext(*zoom, *props)
	if err != nil {
		return err
	}

	start := time.Now()
	for i := 0; i < *n; i++ {
		if _, err := dpv.Node.Evaluate(ctx); err != nil {
			return fmt.Errorf("evaluate: %w", err)
		}
	}
	elapsed := time.Since(start)

	fmt.Printf("%s evaluations in %s (%s/s)\n",
		humanize.Comma(int64(*n)),
		elapsed.Round(time.Microsecond),
		humanize.Comma(int64(float64(*n)/elapsed.Seconds())))
	return nil
}
