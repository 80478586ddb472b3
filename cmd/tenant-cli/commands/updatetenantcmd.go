package commands

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/adk-labs/platform/internal/manager"
	"github.com/adk-labs/platform/internal/model"
)

// NewUpdateTenantCmd creates a Cobra command that patches registry fields.
// Status changes go through the lifecycle state machine, so this is also
// how an operator suspends a tenant or marks it deleted ahead of a
// deprovision run.
func (f *CommandFactory) NewUpdateTenantCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update tenant fields. Usage: tenantctl update -s [slug] [--name N] [--tier T] [--status S]",
		Long: "Update the mutable registry fields of a tenant. Only the flags you pass are changed; " +
			"slug and schema name are immutable. Usage: tenantctl update --slug [slug] --status suspended",
		Args: cobra.ExactArgs(0),

		RunE: func(cmd *cobra.Command, _ []string) error {
			slug, _ := cmd.Flags().GetString("slug")

			if slug == "" {
				cmd.Println("Tenant slug is required")
				return ErrSlugRequired
			}

			var update manager.TenantUpdate

			if cmd.Flags().Changed("name") {
				name, _ := cmd.Flags().GetString("name")
				update.Name = &name
			}

			if cmd.Flags().Changed("tier") {
				tier, _ := cmd.Flags().GetString("tier")
				update.Tier = &tier
			}

			if cmd.Flags().Changed("status") {
				status, _ := cmd.Flags().GetString("status")
				tenantStatus := model.TenantStatus(status)
				update.Status = &tenantStatus
			}

			tenant, err := f.tm.UpdateTenant(cmd.Context(), slug, update)
			if err != nil {
				cmd.PrintErrf("Failed to update tenant %s: %v\n", slug, err)
				return err
			}

			out, err := json.MarshalIndent(tenant, "", "  ")
			if err != nil {
				return err
			}

			cmd.Println(string(out))

			return nil
		},
	}

	var slug, name, tier, status string

	cmd.Flags().StringVarP(&slug, "slug", "s", "", "Tenant slug")
	cmd.Flags().StringVarP(&name, "name", "n", "", "New display name")
	cmd.Flags().StringVarP(&tier, "tier", "t", "", "New tier")
	cmd.Flags().StringVar(&status, "status", "", "New lifecycle status (active, suspended, deleted)")

	err := cmd.MarkFlagRequired("slug")
	if err != nil {
		cmd.PrintErrf("failed to mark flag 'slug' as required: %v\n", err)
	}

	cmd.SetContext(ctx)

	return cmd
}
