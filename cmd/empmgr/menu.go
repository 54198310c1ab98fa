package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/O-KenneDevWorks/Employee-Manager/internal/cli"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the interactive menu (default)",
	Args:  cobra.NoArgs,
	RunE:  runMenu,
}

func runMenu(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := newRuntime(ctx, cfg, logger)
	if err != nil {
		errorColor.Fprintf(os.Stderr, "Cannot reach the database: %v\n", err)
		stepColor.Fprintln(os.Stderr, "Run 'empmgr setup' to create it.")
		return err
	}
	defer rt.Close()

	cli.PrintBanner(os.Stdout)
	controller := cli.NewController(rt.org, cli.NewPrompter(os.Stdin, os.Stdout), os.Stdout, logger)
	return controller.Run(ctx)
}
