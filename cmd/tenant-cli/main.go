package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/oops"

	"github.com/adk-labs/platform/cmd/tenant-cli/commands"
	"github.com/adk-labs/platform/internal/config"
	"github.com/adk-labs/platform/internal/db"
	"github.com/adk-labs/platform/internal/log"
)

func main() {
	os.Exit(runWithSignalHandling(run))
}

// The config path comes from ADK_CONFIG or defaults to config.yaml;
// command line flags are left entirely to cobra.
func runWithSignalHandling(f func(context.Context, *config.Config) error) int {
	ctx, cancelOnSignal := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer cancelOnSignal()

	cfg, err := config.LoadConfig("")
	if err != nil {
		log.Error(ctx, "Failed to load the configuration", err)
		_, _ = fmt.Fprintln(os.Stderr, err)

		return 1
	}

	log.Setup(parseLevel(cfg.LogLevel))

	err = f(ctx, cfg)
	if err != nil {
		log.Error(ctx, "Command failed", err)
		_, _ = fmt.Fprintln(os.Stderr, err)

		return 1
	}

	return 0
}

func run(ctx context.Context, cfg *config.Config) error {
	dbCon, err := db.StartDB(ctx, cfg)
	if err != nil {
		return oops.In("main").Wrapf(err, "failed to initialise db connection")
	}

	factory := commands.NewCommandFactory(cfg, dbCon)

	rootCmd := factory.NewRootCmd(ctx)
	rootCmd.AddCommand(
		factory.NewCreateTenantCmd(ctx),
		factory.NewGetTenantCmd(ctx),
		factory.NewListTenantsCmd(ctx),
		factory.NewUpdateTenantCmd(ctx),
		factory.NewDeprovisionTenantCmd(ctx),
		factory.NewMigrateCmd(ctx),
	)

	err = rootCmd.ExecuteContext(ctx)
	if err != nil {
		return oops.In("main").Wrapf(err, "command execution failed")
	}

	return nil
}

func parseLevel(level string) slog.Level {
	var l slog.Level

	err := l.UnmarshalText([]byte(level))
	if err != nil {
		return slog.LevelInfo
	}

	return l
}
