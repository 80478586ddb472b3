package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/adk-labs/platform/internal/errs"
	"github.com/adk-labs/platform/internal/model"
)

// NewCreateTenantCmd creates a Cobra command that provisions a tenant.
func (f *CommandFactory) NewCreateTenantCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Provision a new tenant. Usage: tenantctl create -n [name] -s [slug] -t [tier]",
		Long: "Provision a new tenant: registers the tenant under the given slug and " +
			"creates its database schema. Usage: tenantctl create --name [name] --slug [slug] --tier [tier]",
		Args: cobra.ExactArgs(0),

		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("name")
			slug, _ := cmd.Flags().GetString("slug")
			tier, _ := cmd.Flags().GetString("tier")

			tenant := &model.Tenant{
				Name: name,
				Slug: slug,
				Tier: tier,
			}

			err := f.tm.CreateTenant(cmd.Context(), tenant)
			if err != nil {
				if errors.Is(err, errs.ErrValidation) {
					cmd.PrintErrf("Rejected tenant %q: %v\n", slug, err)
				} else {
					cmd.PrintErrf("Failed to provision tenant %q: %v\n", slug, err)
				}

				return err
			}

			cmd.Printf("Tenant %s provisioned with schema %s\n", tenant.Slug, tenant.SchemaName)

			return nil
		},
	}

	var name, slug, tier string

	cmd.Flags().StringVarP(&name, "name", "n", "", "Tenant display name")
	cmd.Flags().StringVarP(&slug, "slug", "s", "", "Tenant slug")
	cmd.Flags().StringVarP(&tier, "tier", "t", "starter", "Tenant tier")

	err := cmd.MarkFlagRequired("name")
	if err != nil {
		cmd.PrintErrf("failed to mark flag 'name' as required: %v\n", err)
	}

	err = cmd.MarkFlagRequired("slug")
	if err != nil {
		cmd.PrintErrf("failed to mark flag 'slug' as required: %v\n", err)
	}

	cmd.SetContext(ctx)

	return cmd
}
