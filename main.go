package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/yurikomh/portfolio-api/cmd"
)

var rootCmd = &cobra.Command{
	Use:   "portfolio-api",
	Short: "Portfolio API Server",
	Long:  "Backend server for the gaming/NFT portfolio site: OAuth2 GraphQL proxies, REST proxies and the raid log API",
}

func init() {
	rootCmd.AddCommand(cmd.ServerCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
