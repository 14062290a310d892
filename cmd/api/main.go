package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/siesta-zumi/teamtask/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "teamtask",
		Short: "TeamTask API Server",
		Long:  `TeamTask is a team task-tracking service with checklist-driven progress, member assignments and a calendar timeline view.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewSeedCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
