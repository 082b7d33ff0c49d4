// Command dlreason loads an OWL/XML ontology, classifies and saturates
// it, and either prints the resulting taxonomy or answers a query
// against the saturated ABox.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "0.1.0"

var logger *zap.Logger

func main() {
	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "dlreason",
	Short:   "dlreason - an OWL 2 EL subsumption and query engine",
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file (default dlreason.yaml)")
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(queryCmd)
}
