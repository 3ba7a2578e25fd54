package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "fantavibe-cli",
	Short: "A CLI to interact with the fantavibe server",
	Long: `A command-line interface for making requests to the various endpoints
of the fantavibe auction assistant.`,
}

func init() {
	rootCmd.PersistentFlags().String("host", "http://localhost:8080", "The host address of the server")
	viper.BindPFlag("host", rootCmd.PersistentFlags().Lookup("host"))
	viper.BindEnv("host", "FANTAVIBE_HOST")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
