package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/uaclassify/uaclassify/ruledef"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	root := &cobra.Command{
		Use:          "uaclassify",
		Short:        "Rule-driven user agent classifier",
		SilenceUsage: true,
	}

	root.AddCommand(newClassifyCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newVersionCmd())

	if err := root.Execute(); err != nil {
		var verr *ruledef.ValidationError
		if errors.As(err, &verr) {
			for _, msg := range verr.Problems {
				fmt.Fprintln(os.Stderr, msg)
			}
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newValidateCmd() *cobra.Command {
	var rulesPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a rule definition file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if rulesPath == "" {
				return errors.New("rules path is required")
			}
			defs, err := ruledef.Load(rulesPath)
			if err != nil {
				return err
			}
			if err := defs.Validate(); err != nil {
				return err
			}
			rules, err := defs.Compile()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "rules ok: %d agent, %d os, %d device\n",
				rules.NumAgentRules(), rules.NumOSRules(), rules.NumDeviceRules())
			return err
		},
	}

	cmd.Flags().StringVarP(&rulesPath, "rules", "r", "", "Path to rule definition file")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "version=%s commit=%s buildDate=%s\n", version, commit, buildDate)
		},
	}
}
