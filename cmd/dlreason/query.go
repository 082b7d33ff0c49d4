package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/anusornc/dlreason/owlxml"
	"github.com/anusornc/dlreason/reasoner"
)

var queryCmd = &cobra.Command{
	Use:   "query <ontology.owl> <query.dlq>",
	Short: "Load an ontology and answer a basic graph pattern query against its saturated ABox",
	Args:  cobra.ExactArgs(2),
	RunE:  runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	ontFile, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("dlreason: %w", err)
	}
	defer ontFile.Close()

	ont, parseErrs := owlxml.ParseWithRecovery(ontFile, func(e error) bool {
		logger.Warn("skipping malformed element", zap.Error(e))
		return true
	})
	if len(parseErrs) > 0 {
		logger.Warn("ontology parsed with errors", zap.Int("errors", len(parseErrs)))
	}

	qFile, err := os.Open(args[1])
	if err != nil {
		return fmt.Errorf("dlreason: %w", err)
	}
	defer qFile.Close()

	q, err := parseQueryFile(qFile)
	if err != nil {
		return err
	}

	r, err := reasoner.New(ont)
	if err != nil {
		return fmt.Errorf("dlreason: %w", err)
	}

	rows, err := r.AnswerQuery(q)
	if err != nil {
		return fmt.Errorf("dlreason: query: %w", err)
	}

	// query.Answer already projects each row down to q.Projection, or to
	// every bound variable when Projection is empty, so the row's own
	// keys are the right display columns either way.
	out := cmd.OutOrStdout()
	for _, row := range rows {
		fmt.Fprintln(out, formatRowAllKeys(row))
	}
	fmt.Fprintf(out, "\n%d rows\n", len(rows))
	return nil
}

func formatRowAllKeys(row map[string]string) string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return formatRow(row, keys)
}
