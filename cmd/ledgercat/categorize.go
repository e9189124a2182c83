package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgercat/ledgercat/internal/common"
	"github.com/ledgercat/ledgercat/internal/model"
)

func categorizeCmd() *cobra.Command {
	var (
		tenantFlag      string
		descriptionFlag string
		amountFlag      string
		methodFlag      string
	)

	cmd := &cobra.Command{
		Use:   "categorize <merchant>",
		Short: "Resolve a category for a merchant",
		Long: `Resolve a category for a merchant: merchant memory first, then the
requested strategy. A miss is reported as "no result", not an error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tenant, err := requireTenant(tenantFlag)
			if err != nil {
				return err
			}

			method, err := model.ParseMethod(methodFlag)
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

			result, err := app.engine.Categorize(cmd.Context(), tenant, args[0], descriptionFlag, amount, method)
			if errors.Is(err, common.ErrNoResult) {
				fmt.Printf("no result for %q; still uncategorized\n", args[0])
				return nil
			}
			if err != nil {
				return err
			}

			printResult(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&tenantFlag, "tenant", "", "tenant identifier (required)")
	cmd.Flags().StringVar(&descriptionFlag, "description", "", "free-text transaction description")
	cmd.Flags().StringVar(&amountFlag, "amount", "", "transaction amount")
	cmd.Flags().StringVar(&methodFlag, "method", "automatic", "categorization method (automatic, hybrid, manual)")
	_ = cmd.MarkFlagRequired("tenant")

	return cmd
}
