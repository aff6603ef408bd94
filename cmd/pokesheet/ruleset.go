package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pokesheet/internal/rulesets"
)

func newRulesetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ruleset",
		Short: "Work with ruleset documents",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "validate <file.yaml>",
		Short: "Check a ruleset document and compile every formula",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := rulesets.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ruleset %q is valid\n", args[0], rs.Name)
			return nil
		},
	})

	return cmd
}
