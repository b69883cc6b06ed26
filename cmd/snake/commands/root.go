package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gridsnake/engine/version"
)

var rootCmd = &cobra.Command{
	Use:     "snake",
	Short:   "snake is a grid arcade game with endless, levels and time modes",
	Version: version.Version,
	Run: func(c *cobra.Command, args []string) {
		playCmd.Run(c, args)
	},
}

var (
	apiAddr string
)

// Execute runs the root command
func Execute() {
	rootCmd.PersistentFlags().StringVar(&apiAddr, "api-addr", "http://localhost:3005", "address of the api server")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(scoresCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
