// Package main is the gotix command line tool.
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/evdnx/gotix/config"
	"github.com/evdnx/gotix/indicator/core"
	"github.com/evdnx/gotix/internal/api"
	"github.com/evdnx/gotix/internal/feed"
	"github.com/evdnx/gotix/internal/metrics"
	"github.com/evdnx/gotix/registry"
)

// Version information (set by build flags).
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "version", "-v", "--version":
		cmdVersion()
	case "help", "-h", "--help":
		printUsage()
	case "list":
		err = cmdList(os.Args[2:], os.Stdout)
	case "compute":
		err = cmdCompute(os.Args[2:], os.Stdout)
	case "serve":
		err = cmdServe(os.Args[2:])
	case "validate":
		err = cmdValidate(os.Args[2:], os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`gotix - technical indicator engine

Usage:
  gotix <command> [options]

Commands:
  list       List indicators and their parameters
  compute    Compute one indicator over a CSV file
  serve      Start the HTTP API
  validate   Validate a configuration file
  version    Show version information
  help       Show this help message

Examples:
  gotix compute rsi --data bars.csv --param period=21
  gotix compute bollinger --data bars.csv --format csv
  gotix serve --config gotix.yaml

Use "gotix <command> --help" for more information about a command.`)
}

func cmdVersion() {
	fmt.Printf("gotix version %s\n", Version)
	fmt.Printf("  Build time: %s\n", BuildTime)
	fmt.Printf("  Git commit: %s\n", GitCommit)
}

// paramFlag collects repeated --param name=value flags.
type paramFlag map[string]string

func (p paramFlag) String() string {
	parts := make([]string, 0, len(p))
	for k, v := range p {
		parts = append(parts, k+"="+v)
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

func (p paramFlag) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(name) == "" {
		return fmt.Errorf("expected name=value, got %q", s)
	}
	p[strings.TrimSpace(name)] = value
	return nil
}

// loadConfig returns DefaultConfig when path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		cfg := config.DefaultConfig()
		return &cfg, nil
	}
	return config.Load(path)
}

func newRegistry(cfg *config.Config) (*registry.Registry, error) {
	reg := registry.Default()
	if err := cfg.ApplyDefaults(reg); err != nil {
		return nil, err
	}
	return reg, nil
}

func cmdList(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to configuration file")
	asJSON := fs.Bool("json", false, "Print schemas as JSON")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	reg, err := newRegistry(cfg)
	if err != nil {
		return err
	}

	if *asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(reg.List())
	}
	for _, h := range reg.List() {
		fmt.Fprintf(out, "%-16s %s\n", h.ID, h.Description)
		p, err := reg.Resolve(h.ID, nil)
		if err != nil {
			return err
		}
		for _, ps := range h.Params {
			fmt.Fprintf(out, "    %-16s %-5s default %-6s %s\n",
				ps.Name, ps.Kind, strconv.FormatFloat(p[ps.Name], 'f', -1, 64), ps.Description)
		}
	}
	return nil
}

func cmdCompute(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("compute", flag.ExitOnError)
	dataPath := fs.String("data", "", "Path to CSV data file (required)")
	configPath := fs.String("config", "", "Path to configuration file")
	format := fs.String("format", "json", "Output format: json, csv")
	verbose := fs.Bool("verbose", false, "Verbose output")
	params := paramFlag{}
	fs.Var(params, "param", "Indicator parameter name=value (repeatable)")

	// the indicator id comes first: gotix compute <id> [flags]
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		fs.Usage()
		return fmt.Errorf("indicator id is required")
	}
	id := args[0]
	fs.Parse(args[1:])

	if *dataPath == "" {
		fs.Usage()
		return fmt.Errorf("--data is required")
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	reg, err := newRegistry(cfg)
	if err != nil {
		return err
	}

	series, err := feed.LoadCSV(*dataPath)
	if err != nil {
		return err
	}
	logger.Debug("loaded series", "path", *dataPath, "bars", series.Len())

	raw, err := registry.ParseParams(params)
	if err != nil {
		return err
	}
	res, err := registry.NewDispatcher(reg, registry.WithLogger(logger)).Compute(id, series, raw)
	if err != nil {
		return err
	}
	return writeResult(out, res, *format)
}

func writeResult(out io.Writer, res *core.Result, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "csv":
		if res.Kind == core.KindLabels {
			return writeLabelsCSV(out, res)
		}
		text, err := core.FormatPlotDataCSV(res.PlotData())
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, text)
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeLabelsCSV(out io.Writer, res *core.Result) error {
	w := csv.NewWriter(out)
	if err := w.Write(append([]string{"timestamp"}, res.Names...)); err != nil {
		return err
	}
	for i, t := range res.Times {
		row := []string{t.Format(time.RFC3339)}
		for _, name := range res.Names {
			row = append(row, res.Labels[name][i])
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func cmdServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to configuration file")
	addr := fs.String("addr", "", "Listen address (overrides server.addr)")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	logger := cfg.Log.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	reg, err := newRegistry(cfg)
	if err != nil {
		return err
	}
	reporter := metrics.NewReporter()
	dispatcher := registry.NewDispatcher(reg,
		registry.WithReporter(reporter),
		registry.WithLogger(logger),
	)
	srv := api.New(dispatcher, api.Options{
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
		MaxBars:        cfg.Server.MaxBars,
		Workers:        cfg.Suite.Workers,
		MaxRequests:    cfg.Suite.MaxRequests,
		Logger:         logger,
		Reporter:       reporter,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("gotix starting", "version", Version, "indicators", len(reg.List()))
	return srv.Run(ctx, cfg.Server.Addr,
		time.Duration(cfg.Server.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.Server.WriteTimeoutSec)*time.Second)
}

func cmdValidate(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	configPath := fs.String("config", "gotix.yaml", "Path to configuration file")
	fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if _, err := newRegistry(cfg); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	fmt.Fprintln(out, "Configuration is valid!")
	fmt.Fprintf(out, "  Listen address: %s\n", cfg.Server.Addr)
	fmt.Fprintf(out, "  Rate limit: %.1f req/s (burst %d)\n", cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
	fmt.Fprintf(out, "  Log: %s/%s\n", cfg.Log.Level, cfg.Log.Format)
	fmt.Fprintf(out, "  Default overrides: %d indicator(s)\n", len(cfg.Defaults))
	return nil
}
