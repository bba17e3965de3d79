// Caseflow reconstructs per-entity journeys from uploaded tables and
// aggregates them into a flow graph for Sankey rendering.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

// CLI flags
var (
	domainFlag   string
	vocabFile    string
	datasetName  string
	outDir       string
	duckdbPath   string
	parquetFlag  bool
	s3Bucket     string
	s3Region     string
	s3Prefix     string
	saveSession  bool
	showCases    int
	verbose      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "caseflow",
	Short: "Caseflow - Reconstruct journeys and flow graphs from raw tables",
	Long: `Caseflow ingests the tables of one logical dataset (CSV, XLSX),
reconstructs per-entity cases from heuristically resolved timestamps
and inferred event types, and aggregates them into a flow graph.

Examples:
  caseflow analyze orders.csv payments.csv --domain ecommerce
  caseflow analyze claims.xlsx --domain insurance --out ./artifacts --parquet
  caseflow watch data/ --domain banking`,
	Version: fmt.Sprintf("%s (%s)", version, commit),
}

var vocabsCmd = &cobra.Command{
	Use:   "vocabs",
	Short: "List the built-in domain vocabularies",
	RunE:  runVocabs,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	analyzeCmd.Flags().StringVarP(&domainFlag, "domain", "d", "", "Built-in vocabulary to use (see 'caseflow vocabs')")
	analyzeCmd.Flags().StringVar(&vocabFile, "vocab", "", "Custom vocabulary YAML file (overrides --domain)")
	analyzeCmd.Flags().StringVar(&datasetName, "dataset", "", "Dataset name (defaults to the first file's directory)")
	analyzeCmd.Flags().StringVarP(&outDir, "out", "o", "", "Directory for JSON artifacts")
	analyzeCmd.Flags().StringVar(&duckdbPath, "duckdb", "", "Also store the run in a DuckDB database at this path")
	analyzeCmd.Flags().BoolVar(&parquetFlag, "parquet", false, "Also write the Parquet activity table")
	analyzeCmd.Flags().StringVar(&s3Bucket, "s3-bucket", "", "Upload artifacts to this S3 bucket")
	analyzeCmd.Flags().StringVar(&s3Region, "s3-region", "", "AWS region for --s3-bucket")
	analyzeCmd.Flags().StringVar(&s3Prefix, "s3-prefix", "", "Key prefix for uploaded artifacts")
	analyzeCmd.Flags().BoolVar(&saveSession, "save", false, "Persist the result in the session store")
	analyzeCmd.Flags().IntVar(&showCases, "cases", 10, "How many case summaries to print (0 = none)")

	watchCmd.Flags().StringVarP(&domainFlag, "domain", "d", "", "Built-in vocabulary to use")
	watchCmd.Flags().StringVar(&vocabFile, "vocab", "", "Custom vocabulary YAML file (overrides --domain)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(vocabsCmd)
	rootCmd.AddCommand(watchCmd)
}
