// Package operations orchestrates a sales processing run.
//
// A Pipeline executes four stages strictly in order and stops at the first
// failure:
//
//	read → calculate → write (output.csv) → report (report.txt)
//
// Everything a run depends on from its surroundings (artifact paths, the
// clock stamping the report, the console receiving progress lines, logger,
// tracer and metrics) is passed in through Env.
//
//	p, err := operations.NewPipeline(operations.Env{
//	    Paths:   config.NewPaths(dir),
//	    Console: os.Stdout,
//	    Metrics: telemetry.Metrics,
//	})
//	report, err := p.Run(ctx, "sales.csv")
package operations
