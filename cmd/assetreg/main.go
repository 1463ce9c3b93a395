package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tidwall/sjson"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	assetregistry "github.com/riftlab/asset-registry"
	"github.com/riftlab/asset-registry/config"
	"github.com/riftlab/asset-registry/registry"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to a registry config file (YAML)")
		root        = flag.String("root", "", "Content root, overrides the config")
		logLevel    = flag.String("log", "", "Log level: debug, info, warn, error")
		list        = flag.Bool("list", false, "List loaded assets and exit")
		watch       = flag.Bool("watch", false, "Keep running, refreshing every interval")
		interval    = flag.Duration("interval", time.Second, "Refresh interval for -watch")
		auditOut    = flag.String("audit-out", "", "Write the shutdown audit report to this JSON file")
		interactive = flag.Bool("i", false, "Interactive asset browser")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if *root != "" {
		cfg.Root = *root
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: -i needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	logger := buildLogger(cfg.Level())
	defer logger.Sync()

	if err := run(cfg, logger, *list, *watch, *interval, *auditOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func buildLogger(level zapcore.Level) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func run(cfg *config.Config, log *zap.Logger, listOnly, watch bool, interval time.Duration, auditOut string) error {
	ctx := context.Background()

	reg := registry.New(cfg, registry.WithLogger(log))
	if err := reg.Initialize(ctx); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}

	if listOnly {
		printAssets(reg)
	} else if watch {
		if err := watchLoop(ctx, reg, interval, log); err != nil {
			reg.Shutdown(ctx)
			return err
		}
	}

	report, err := reg.Shutdown(ctx)
	if err != nil {
		return err
	}
	if auditOut != "" {
		if err := writeAuditReport(auditOut, report); err != nil {
			return fmt.Errorf("audit report: %w", err)
		}
		log.Info("audit report written",
			zap.String("path", auditOut),
			zap.Int("unused", report.TotalUnused()))
	}
	return nil
}

func printAssets(reg *registry.Registry) {
	for _, cat := range assetregistry.Categories() {
		names := reg.Names(cat)
		fmt.Printf("%s (%d)\n", cat, len(names))
		for _, name := range names {
			fmt.Printf("  %s\n", name)
		}
	}
}

// watchLoop refreshes the registry every interval until interrupted.
func watchLoop(ctx context.Context, reg *registry.Registry, interval time.Duration, log *zap.Logger) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("watching for changes", zap.Duration("interval", interval))
	for {
		select {
		case <-ticker.C:
			if err := reg.Refresh(ctx); err != nil {
				return err
			}
		case <-stop:
			log.Info("interrupted, shutting down")
			return nil
		}
	}
}

// writeAuditReport serializes the shutdown audit as JSON.
func writeAuditReport(path string, report *registry.AuditReport) error {
	out := "{}"
	var err error
	if out, err = sjson.Set(out, "generated", time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	if out, err = sjson.Set(out, "unused_total", report.TotalUnused()); err != nil {
		return err
	}
	for _, c := range report.Categories {
		base := "categories." + string(c.Category)
		if out, err = sjson.Set(out, base+".loaded", c.Loaded); err != nil {
			return err
		}
		if out, err = sjson.Set(out, base+".used", c.Used); err != nil {
			return err
		}
		unused := c.Unused
		if unused == nil {
			unused = []string{}
		}
		if out, err = sjson.Set(out, base+".unused", unused); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(out), 0o644)
}
