package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pokesheet/internal/formula"
)

func newEvalCmd() *cobra.Command {
	var missing float64

	cmd := &cobra.Command{
		Use:   "eval <template> [name=value ...]",
		Short: "Evaluate a ruleset formula against ad hoc stats",
		Example: `  pokesheet eval "min(floor({staged_defense} / 5), 6)" staged_defense=17
  pokesheet eval "{level} + {total_hp} * 3 + 10" level=10 total_hp=4`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := parseStatArgs(args[1:])
			if err != nil {
				return err
			}

			evaluator := formula.NewEvaluator(&formula.EvaluatorConfig{
				MissingValue: &missing,
				OnMissing: func(name string) {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: no stat named %q\n", name)
				},
			})

			value, err := evaluator.Evaluate(args[0], stats)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(value, 'g', -1, 64))
			return nil
		},
	}

	cmd.Flags().Float64Var(&missing, "missing", formula.DefaultMissingValue, "value substituted for unknown stats")
	return cmd
}

// parseStatArgs reads name=value pairs
func parseStatArgs(args []string) (map[string]float64, error) {
	stats := make(map[string]float64, len(args))
	for _, arg := range args {
		name, raw, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("expected name=value, got %q", arg)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", name, err)
		}
		stats[name] = value
	}
	return stats, nil
}
