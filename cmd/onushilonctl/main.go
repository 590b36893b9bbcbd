// Maintenance CLI for the question and rule catalogs.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/i-sifat/onushilonhub-sub000/internal/annotate"
	"github.com/i-sifat/onushilonhub-sub000/internal/grammar"
	"github.com/i-sifat/onushilonhub-sub000/internal/question"
)

var dataDir string

var rootCmd = &cobra.Command{
	Use:   "onushilonctl",
	Short: "Inspect and validate the grammar-practice catalogs",
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate catalog data and report unmatched blank markers",
	RunE: func(cmd *cobra.Command, args []string) error {
		rules, questions, err := loadCatalogs()
		if err != nil {
			return err
		}
		fmt.Printf("%d rules, %d questions\n", rules.Len(), questions.Len())

		bad := 0
		for _, q := range questions.Questions() {
			if q.Passage == nil {
				continue
			}
			_, diag := annotate.Tokenize(q.Passage.Text, q.Passage.Blanks)
			if diag.UnmatchedCount() > 0 {
				bad++
				fmt.Printf("%s: unmatched markers %v\n", q.ID, diag.Unmatched)
			}
		}
		if bad > 0 {
			return fmt.Errorf("%d questions with unmatched markers", bad)
		}
		fmt.Println("all markers matched")
		return nil
	},
}

var coverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "Print how many questions touch each grammar rule",
	RunE: func(cmd *cobra.Command, args []string) error {
		rules, questions, err := loadCatalogs()
		if err != nil {
			return err
		}
		idx := annotate.CountByRule(rules.Rules(), questions.Questions())
		for _, r := range rules.Rules() {
			fmt.Printf("%4d  %-40s %d\n", r.ID, r.Title, idx[r.ID])
		}
		return nil
	},
}

func loadCatalogs() (*grammar.Catalog, *question.Catalog, error) {
	rules, err := grammar.LoadCatalog(filepath.Join(dataDir, "rules.json"))
	if err != nil {
		return nil, nil, err
	}
	questions, err := question.LoadCatalog(filepath.Join(dataDir, "questions.json"))
	if err != nil {
		return nil, nil, err
	}
	return rules, questions, nil
}

func main() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "./data", "catalog data directory")
	rootCmd.AddCommand(checkCmd, coverageCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
