// Command catform converts earthquake catalogs between the CSV, CSZ, and
// EVENTTXT formats, detects the format of a file, and summarizes catalog
// tables.
//
// Usage:
//
//	catform convert -in events.txt -from EVENTTXT -out events.csz -to CSZ -compress
//	catform detect events.csz
//	catform info -only mag events.csv
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/seistools/catform/catalog"
	"github.com/seistools/catform/formats"
	"github.com/seistools/catform/formats/csvtab"
	"github.com/seistools/catform/formats/csz"
	"github.com/seistools/catform/formats/eventtxt"
	"github.com/seistools/catform/internal/config"
	"github.com/seistools/catform/observability"
	"github.com/seistools/catform/table"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "convert":
		err = runConvert(cfg, logger, os.Args[2:])
	case "detect":
		err = runDetect(os.Args[2:])
	case "info":
		err = runInfo(logger, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: catform <convert|detect|info> [flags]")
}

func runConvert(cfg *config.Config, logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	in := fs.String("in", "", "input file")
	out := fs.String("out", "", "output file")
	from := fs.String("from", "", "input format (default: detect)")
	to := fs.String("to", "CSV", "output format")
	fields := fs.String("fields", "", "event field template or preset")
	magtype := fs.String("magtype", cfg.DefaultMagType, "default magnitude type")
	depthUnit := fs.String("depth-unit", defaultDepthUnit(cfg), "depth unit in text columns (km or m)")
	compress := fs.Bool("compress", false, "deflate-compress CSZ members")
	stats := fs.Bool("stats", false, "log codec counters after converting")
	fs.Parse(args)

	if *in == "" || *out == "" {
		return fmt.Errorf("convert: -in and -out are required")
	}
	depth, err := parseDepthUnit(*depthUnit)
	if err != nil {
		return err
	}

	metrics := observability.NewMetrics()

	src := formats.PathSource(*in)
	name := *from
	if name == "" {
		f, err := formats.Detect(src)
		if err != nil {
			return err
		}
		name = f.Name
		logger.Info("detected input format", "format", name, "file", *in)
	}

	cat, err := readCatalog(name, src, depth, *magtype, logger, metrics)
	if err != nil {
		return err
	}
	logger.Info("catalog read", "events", cat.Len(), "format", name)

	dst := formats.PathDest(*out)
	if err := writeCatalog(*to, cat, dst, depth, *fields, *compress, logger, metrics); err != nil {
		return err
	}
	logger.Info("catalog written", "file", *out, "format", *to)

	if *stats {
		logMetrics(logger)
	}
	return nil
}

func readCatalog(name string, src formats.Source, depth csvtab.DepthUnit, magtype string, logger *slog.Logger, metrics *observability.Metrics) (*catalog.Catalog, error) {
	defaults := csvtab.Defaults{MagType: magtype}
	switch strings.ToUpper(name) {
	case "CSV":
		rcfg := csvtab.DefaultReadConfig()
		rcfg.Depth = depth
		rcfg.Default = defaults
		rcfg.Logger = logger
		rcfg.Metrics = metrics
		return csvtab.Read(src, rcfg)
	case "CSZ":
		return csz.Read(src, csz.ReadConfig{Depth: depth, Default: defaults, Logger: logger, Metrics: metrics})
	case "EVENTTXT":
		return eventtxt.Read(src, eventtxt.Config{Default: defaults, Logger: logger, Metrics: metrics})
	default:
		f, err := formats.Get(name)
		if err != nil {
			return nil, err
		}
		return f.Read(src)
	}
}

func writeCatalog(name string, cat *catalog.Catalog, dst formats.Dest, depth csvtab.DepthUnit, fields string, compress bool, logger *slog.Logger, metrics *observability.Metrics) error {
	switch strings.ToUpper(name) {
	case "CSV":
		wcfg := csvtab.DefaultWriteConfig()
		wcfg.Depth = depth
		if fields != "" {
			wcfg.Fields = fields
		}
		wcfg.Logger = logger
		wcfg.Metrics = metrics
		return csvtab.Write(cat, dst, wcfg)
	case "CSZ":
		return csz.Write(cat, dst, csz.WriteConfig{
			Fields:   fields,
			Depth:    depth,
			Compress: compress,
			Logger:   logger,
			Metrics:  metrics,
		})
	default:
		return fmt.Errorf("format %s does not support writing", name)
	}
}

func runDetect(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("detect: exactly one file argument required")
	}
	f, err := formats.Detect(formats.PathSource(args[0]))
	if err != nil {
		return err
	}
	fmt.Println(f.Name)
	return nil
}

func runInfo(logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	only := fs.String("only", "", "comma-separated column subset")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("info: exactly one file argument required")
	}

	cfg := table.Config{}
	if *only != "" {
		cfg.Only = strings.Split(*only, ",")
	}
	t, err := table.Load(formats.PathSource(fs.Arg(0)), cfg)
	if err != nil {
		return err
	}
	logger.Info("catalog table", "file", fs.Arg(0), "rows", t.Len(), "columns", strings.Join(t.Names(), ","))

	if col, ok := t.Column("mag"); ok && col.Len() > 0 {
		lo, hi := col.Floats[0], col.Floats[0]
		for _, v := range col.Floats[1:] {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		logger.Info("magnitude range", "min", lo, "max", hi)
	}
	return nil
}

func defaultDepthUnit(cfg *config.Config) string {
	if cfg.DepthInKm {
		return "km"
	}
	return "m"
}

func parseDepthUnit(s string) (csvtab.DepthUnit, error) {
	switch strings.ToLower(s) {
	case "km":
		return csvtab.DepthKilometers, nil
	case "m":
		return csvtab.DepthMeters, nil
	default:
		return 0, fmt.Errorf("invalid depth unit %q: want km or m", s)
	}
}

// logMetrics dumps the catform counters from the default registry.
func logMetrics(logger *slog.Logger) {
	fams, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		logger.Warn("gather metrics failed", "error", err)
		return
	}
	for _, fam := range fams {
		if !strings.HasPrefix(fam.GetName(), "catform_") {
			continue
		}
		for _, m := range fam.GetMetric() {
			if c := m.GetCounter(); c != nil {
				logger.Info("counter", "name", fam.GetName(), "value", c.GetValue())
			}
		}
	}
}
