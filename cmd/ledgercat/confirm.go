package main

import (
	"github.com/spf13/cobra"

	"github.com/ledgercat/ledgercat/internal/model"
)

func confirmCmd() *cobra.Command {
	var (
		tenantFlag   string
		categoryFlag string
		methodFlag   string
	)

	cmd := &cobra.Command{
		Use:   "confirm <merchant>",
		Short: "Confirm a category for a merchant",
		Long: `Confirm a category for a merchant. The choice is remembered for the
tenant and inherited by every future transaction from that merchant;
re-confirming overwrites the previous choice.`,
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

			app, err := buildApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.cleanup()

			result, err := app.engine.Confirm(cmd.Context(), tenant, args[0], categoryFlag, method)
			if err != nil {
				return err
			}

			printResult(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&tenantFlag, "tenant", "", "tenant identifier (required)")
	cmd.Flags().StringVar(&categoryFlag, "category", "", "category identifier (required)")
	cmd.Flags().StringVar(&methodFlag, "method", "manual", "confirmation method (manual, hybrid)")
	_ = cmd.MarkFlagRequired("tenant")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}
