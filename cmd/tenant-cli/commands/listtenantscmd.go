package commands

import (
	"context"

	"github.com/spf13/cobra"
)

// NewListTenantsCmd creates a Cobra command that lists registry entries.
func (f *CommandFactory) NewListTenantsCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tenants. Usage: tenantctl list [--skip N] [--top N]",
		Long:  "List tenants ordered by slug, with optional paging. Usage: tenantctl list --skip [offset] --top [limit]",
		Args:  cobra.ExactArgs(0),

		RunE: func(cmd *cobra.Command, _ []string) error {
			skip, _ := cmd.Flags().GetInt("skip")
			top, _ := cmd.Flags().GetInt("top")

			tenants, count, err := f.tm.ListTenants(cmd.Context(), skip, top)
			if err != nil {
				cmd.PrintErrf("Failed to list tenants: %v\n", err)
				return err
			}

			for _, tenant := range tenants {
				cmd.Printf("%-36s %-24s %-12s %s\n", tenant.ID, tenant.Slug, tenant.Status, tenant.SchemaName)
			}

			cmd.Printf("%d of %d tenants\n", len(tenants), count)

			return nil
		},
	}

	var skip, top int

	cmd.Flags().IntVar(&skip, "skip", 0, "Number of tenants to skip")
	cmd.Flags().IntVar(&top, "top", 0, "Maximum number of tenants to return (0 uses the default page size)")

	cmd.SetContext(ctx)

	return cmd
}
