package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"bmcaudit/internal/audit"
	"bmcaudit/internal/checker"
	"bmcaudit/internal/config"
)

var auditCommand = &cobra.Command{
	Use:   "audit",
	Short: "run all verification passes against a source file",
	Long:  ``,
	RunE: func(*cobra.Command, []string) error {
		return auditExec()
	},
}

var (
	auditFile      string
	auditConfig    string
	auditChecker   string
	auditChecks    string
	auditIntent    string
	auditMode      string
	auditTimeout   int
	auditThreading bool
)

func init() {
	auditCommand.Flags().StringVar(&auditFile, "file", "", "source file to verify")
	auditCommand.Flags().StringVar(&auditConfig, "config", config.DefaultFile, "audit config file")
	auditCommand.Flags().StringVar(&auditChecker, "checker", "", "model checker binary (overrides config)")
	auditCommand.Flags().StringVar(&auditChecks, "checks", "", "checks to run: memory,overflow,concurrency,ub-shift or all (overrides config)")
	auditCommand.Flags().StringVar(&auditIntent, "intent", "", "bug-hunting or prove (overrides config)")
	auditCommand.Flags().StringVar(&auditMode, "mode", "", "pass scheduling: seq or par (overrides config)")
	auditCommand.Flags().IntVar(&auditTimeout, "timeout", 0, "per-pass timeout in seconds (overrides config)")
	auditCommand.Flags().BoolVar(&auditThreading, "threads-detected", false, "artifact uses threads; enables the concurrency pass")
	_ = auditCommand.MarkFlagRequired("file")
}

func auditExec() error {
	cfg, err := config.Load(auditConfig)
	if err != nil {
		return err
	}
	if auditChecker != "" {
		cfg.Checker = auditChecker
	}
	if auditChecks != "" {
		cfg.Checks = auditChecks
	}
	if auditIntent != "" {
		cfg.Intent = auditIntent
	}
	if auditMode != "" {
		cfg.Mode = auditMode
	}
	if auditTimeout > 0 {
		cfg.TimeoutSeconds = auditTimeout
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	auditor := &audit.Auditor{
		Runner:            checker.NewExecRunner(cfg.Checker),
		Timeout:           cfg.Timeout(),
		Checks:            cfg.CheckSet(),
		Intent:            cfg.IntentValue(),
		Mode:              cfg.ModeValue(),
		ThreadingDetected: auditThreading,
	}
	rep, err := auditor.Run(ctx, auditFile)
	if err != nil {
		return err
	}
	fmt.Println(rep)
	return nil
}
