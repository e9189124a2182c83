package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func suggestCmd() *cobra.Command {
	var (
		tenantFlag      string
		descriptionFlag string
		amountFlag      string
		maxFlag         int
	)

	cmd := &cobra.Command{
		Use:   "suggest <merchant>",
		Short: "List category suggestions for a merchant, best first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tenant, err := requireTenant(tenantFlag)
			if err != nil {
				return err
			}

			amount, err := parseAmount(amountFlag)
			if err != nil {
				return err
			}

			app, err := buildApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.cleanup()

			suggestions, err := app.engine.Suggestions(cmd.Context(), tenant, args[0], descriptionFlag, amount, maxFlag)
			if err != nil {
				return err
			}

			if len(suggestions) == 0 {
				fmt.Printf("no suggestions for %q\n", args[0])
				return nil
			}

			for i, s := range suggestions {
				fmt.Printf("%d. %s  (%s)  score=%.2f", i+1, s.CategoryName, s.GroupName, s.Score)
				if s.Rationale != "" {
					fmt.Printf("  (%s)", s.Rationale)
				}
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tenantFlag, "tenant", "", "tenant identifier (required)")
	cmd.Flags().StringVar(&descriptionFlag, "description", "", "free-text transaction description")
	cmd.Flags().StringVar(&amountFlag, "amount", "", "transaction amount")
	cmd.Flags().IntVar(&maxFlag, "max", 6, "maximum number of suggestions")
	_ = cmd.MarkFlagRequired("tenant")

	return cmd
}
