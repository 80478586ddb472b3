package commands

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/adk-labs/platform/internal/errs"
)

// NewGetTenantCmd creates a Cobra command that prints one registry entry.
func (f *CommandFactory) NewGetTenantCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get tenant by slug. Usage: tenantctl get -s [slug]",
		Long:  "Get tenant by slug. Usage: tenantctl get --slug [slug]",
		Args:  cobra.ExactArgs(0),

		RunE: func(cmd *cobra.Command, _ []string) error {
			slug, _ := cmd.Flags().GetString("slug")

			if slug == "" {
				cmd.Println("Tenant slug is required")
				return ErrSlugRequired
			}

			tenant, err := f.tm.GetTenantBySlug(cmd.Context(), slug)
			if err != nil {
				if errors.Is(err, errs.ErrNotFound) {
					cmd.Printf("Tenant with slug %s not found\n", slug)
					return ErrTenantNotFound
				}

				cmd.PrintErrf("Failed to get tenant %s: %v\n", slug, err)

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

	var slug string
	cmd.Flags().StringVarP(&slug, "slug", "s", "", "Tenant slug")

	err := cmd.MarkFlagRequired("slug")
	if err != nil {
		cmd.PrintErrf("failed to mark flag 'slug' as required: %v\n", err)
	}

	cmd.SetContext(ctx)

	return cmd
}
