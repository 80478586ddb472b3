package commands

import (
	"context"

	"github.com/spf13/cobra"

	cliUtils "github.com/adk-labs/platform/utils/cli"
)

func (f *CommandFactory) NewRootCmd(ctx context.Context) *cobra.Command {
	return cliUtils.NewRootCmd(
		ctx,
		"tenantctl",
		"Tenant registry CLI",
		"tenantctl manages the tenant registry and schema lifecycle: "+
			"provisioning new tenants, inspecting and updating registry entries, "+
			"walking tenants through their status lifecycle, "+
			"dropping the schemas of deleted tenants, "+
			"and running versioned migrations over the shared and tenant schemas.",
	)
}
