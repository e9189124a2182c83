package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories [group]",
		Short: "List the category catalog, optionally for one group",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := buildCatalog()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				categories, err := cat.ByGroup(args[0])
				if err != nil {
					return err
				}
				for _, c := range categories {
					fmt.Printf("%-10s %s\n", c.ID, c.Name)
				}
				return nil
			}

			grouped := cat.Grouped()
			for _, group := range cat.GroupNames() {
				fmt.Printf("%s:\n", group)
				for _, c := range grouped[group] {
					fmt.Printf("  %-10s %s\n", c.ID, c.Name)
				}
			}
			return nil
		},
	}
}
