package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"bmcaudit/internal/checker"
	"bmcaudit/internal/config"
)

var loopsCommand = &cobra.Command{
	Use:   "loops",
	Short: "discover loops in a source file and print their bounds",
	Long:  ``,
	RunE: func(*cobra.Command, []string) error {
		return loopsExec()
	},
}

var (
	loopsFile    string
	loopsChecker string
)

func init() {
	loopsCommand.Flags().StringVar(&loopsFile, "file", "", "source file to profile")
	loopsCommand.Flags().StringVar(&loopsChecker, "checker", "", "model checker binary (overrides config)")
	_ = loopsCommand.MarkFlagRequired("file")
}

func loopsExec() error {
	cfg, err := config.Load(config.DefaultFile)
	if err != nil {
		return err
	}
	if loopsChecker != "" {
		cfg.Checker = loopsChecker
	}

	profile, err := checker.ShowLoops(context.Background(), checker.NewExecRunner(cfg.Checker), loopsFile)
	if err != nil {
		return err
	}
	if len(profile) == 0 {
		fmt.Println("no loops found")
		return nil
	}
	for _, l := range profile {
		if l.BoundKnown {
			fmt.Printf("%-24s bound %d\n", l.ID, l.Bound)
		} else {
			fmt.Printf("%-24s bound unknown\n", l.ID)
		}
	}
	return nil
}
