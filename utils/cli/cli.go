package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command shared by the CLI binaries.
// With --sleep the command blocks until it receives a termination signal,
// so the binary can be deployed as a long-lived pod and invoked through
// exec while the container keeps running.
func NewRootCmd(ctx context.Context, use, shortDesc, longDesc string) *cobra.Command {
	var sleep bool

	rootCmd := &cobra.Command{
		Use:   use,
		Short: shortDesc,
		Long:  longDesc,

		Run: func(cmd *cobra.Command, _ []string) {
			if sleep {
				waitForSignal(cmd)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&sleep, "sleep", false, "Block until a termination signal arrives")
	rootCmd.SetContext(ctx)

	return rootCmd
}

func waitForSignal(cmd *cobra.Command) {
	cmd.Println("Pod running...")

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	<-sigs
	cmd.Println("Shutting down gracefully...")
}
