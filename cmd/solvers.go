package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"bmcaudit/internal/audit"
	"bmcaudit/internal/checker"
	"bmcaudit/internal/config"
	"bmcaudit/internal/solver"
)

var solversCommand = &cobra.Command{
	Use:   "solvers",
	Short: "probe available SMT back-ends",
	Long:  ``,
	RunE: func(*cobra.Command, []string) error {
		return solversExec()
	},
}

var solversChecker string

func init() {
	solversCommand.Flags().StringVar(&solversChecker, "checker", "", "model checker binary (overrides config)")
}

func solversExec() error {
	cfg, err := config.Load(config.DefaultFile)
	if err != nil {
		return err
	}
	if solversChecker != "" {
		cfg.Checker = solversChecker
	}

	available, chosen, err := audit.Probe(context.Background(), checker.NewExecRunner(cfg.Checker))
	for _, c := range []solver.Choice{solver.Boolector, solver.Bitwuzla, solver.Z3} {
		mark := " "
		if available[c] {
			mark = "x"
		}
		fmt.Printf("[%s] %s\n", mark, c)
	}
	if err != nil {
		return err
	}
	fmt.Printf("selected: %s\n", chosen)
	return nil
}
