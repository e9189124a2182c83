package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgercat/ledgercat/internal/tenant"
)

func merchantsCmd() *cobra.Command {
	var (
		tenantFlag     string
		allTenantsFlag bool
	)

	cmd := &cobra.Command{
		Use:   "merchants",
		Short: "List learned merchant categorizations",
		Long: `List learned merchant categorizations for one tenant, or across all
tenants with the explicit --all-tenants administrative override.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var scope tenant.Scope
			if allTenantsFlag {
				scope = tenant.AllTenants()
			} else {
				t, err := requireTenant(tenantFlag)
				if err != nil {
					return err
				}
				scope = tenant.One(t)
			}

			app, err := buildApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.cleanup()

			entries, err := app.store.ListMemoryScoped(cmd.Context(), scope)
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Println("no learned merchants")
				return nil
			}

			for _, e := range entries {
				fmt.Printf("%-20s %-30s %-30s %-10s %s\n",
					e.Tenant, e.MerchantKey, e.Result.CategoryName,
					e.Result.Method, formatUpdatedAt(e.Result.UpdatedAt))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tenantFlag, "tenant", "", "tenant identifier")
	cmd.Flags().BoolVar(&allTenantsFlag, "all-tenants", false, "span every tenant (administrative)")

	return cmd
}
