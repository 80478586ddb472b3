package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/adk-labs/platform/internal/errs"
	"github.com/adk-labs/platform/internal/manager"
)

// NewDeprovisionTenantCmd creates a Cobra command that drops the schema
// of a deleted tenant and removes its registry row.
func (f *CommandFactory) NewDeprovisionTenantCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deprovision",
		Short: "Drop a deleted tenant's schema. Usage: tenantctl deprovision -s [slug]",
		Long: "Drop the schema of a tenant and remove its registry entry. The tenant must " +
			"already be in status deleted; the drop is irreversible. " +
			"Usage: tenantctl deprovision --slug [slug]",
		Args: cobra.ExactArgs(0),

		RunE: func(cmd *cobra.Command, _ []string) error {
			slug, _ := cmd.Flags().GetString("slug")

			if slug == "" {
				cmd.Println("Tenant slug is required")
				return ErrSlugRequired
			}

			err := f.tm.DeprovisionTenant(cmd.Context(), slug)
			if err != nil {
				switch {
				case errors.Is(err, errs.ErrNotFound):
					cmd.Printf("Tenant with slug %s not found\n", slug)
				case errors.Is(err, manager.ErrTenantNotDeleted):
					cmd.Printf("Tenant %s is not in status deleted; update its status first\n", slug)
				default:
					cmd.PrintErrf("Failed to deprovision tenant %s: %v\n", slug, err)
				}

				return err
			}

			cmd.Printf("Tenant %s deprovisioned\n", slug)

			return nil
		},
	}

	var slug string
	cmd.Flags().StringVarP(&slug, "slug", "s", "", "Tenant slug")

	err := cmd.MarkFlagRequired("slug")
	if err != nil {
		cmd.PrintErrf("failed to mark flag 'slug' as required: %v\n", err)
	}

	cmd.SetContext(ctx)

	return cmd
}
