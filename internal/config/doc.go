// Package config provides configuration management for salesreport.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern SALES_* for namespacing:
//
//	SALES_LOGGING_LEVEL=debug
//	SALES_LOGGING_OUTPUT=both
//	SALES_TELEMETRY_TRACE_EXPORTER=stdout
//	SALES_TELEMETRY_METRICS_TEXTFILE=/var/lib/node_exporter/salesreport.prom
//
// The config file is $SALES_CONFIG_FILE, or salesreport.yaml / configs/salesreport.yaml
// in the working directory.
//
// # Paths
//
// Output artifacts have fixed names (output.csv, report.txt). Paths resolves
// them against an explicit output directory so callers never depend on the
// process working directory implicitly:
//
//	paths := config.NewPaths(dir)
//	writer.Write(ctx, ds, paths.OutputCSV)
package config
