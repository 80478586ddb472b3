package commands

import (
	"context"

	"github.com/spf13/cobra"
)

// NewMigrateCmd creates a Cobra command that applies the versioned goose
// migrations: first over the shared schema, then over every tenant schema
// recorded in the registry.
func (f *CommandFactory) NewMigrateCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending migrations. Usage: tenantctl migrate [--shared-only]",
		Long: "Apply pending goose migrations to the shared schema and to each tenant schema " +
			"in the registry. Each schema tracks its own migration version. " +
			"Usage: tenantctl migrate --shared-only",
		Args: cobra.ExactArgs(0),

		RunE: func(cmd *cobra.Command, _ []string) error {
			sharedOnly, _ := cmd.Flags().GetBool("shared-only")

			err := f.migrator.MigrateSharedToLatest(cmd.Context())
			if err != nil {
				cmd.PrintErrf("Failed to migrate shared schema: %v\n", err)
				return err
			}

			cmd.Println("Shared schema migrated")

			if sharedOnly {
				return nil
			}

			schemas, err := f.tenantSchemas(cmd.Context())
			if err != nil {
				cmd.PrintErrf("Failed to load tenant schemas: %v\n", err)
				return err
			}

			err = f.migrator.MigrateTenantsToLatest(cmd.Context(), schemas)
			if err != nil {
				cmd.PrintErrf("Failed to migrate tenant schemas: %v\n", err)
				return err
			}

			cmd.Printf("%d tenant schemas migrated\n", len(schemas))

			return nil
		},
	}

	var sharedOnly bool
	cmd.Flags().BoolVar(&sharedOnly, "shared-only", false, "Skip the tenant schemas")

	cmd.SetContext(ctx)

	return cmd
}

func (f *CommandFactory) tenantSchemas(ctx context.Context) ([]string, error) {
	schemas := make([]string, 0)
	skip := 0

	for {
		tenants, count, err := f.tm.ListTenants(ctx, skip, migrationPageSize)
		if err != nil {
			return nil, err
		}

		for _, tenant := range tenants {
			schemas = append(schemas, tenant.SchemaName)
		}

		skip += len(tenants)
		if skip >= count || len(tenants) == 0 {
			break
		}
	}

	return schemas, nil
}

const migrationPageSize = 200
