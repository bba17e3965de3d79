package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/caseflow/caseflow/internal/model"
	"github.com/caseflow/caseflow/pkg/config"
	"github.com/caseflow/caseflow/pkg/engine"
	"github.com/caseflow/caseflow/pkg/export"
	"github.com/caseflow/caseflow/pkg/session"
	"github.com/caseflow/caseflow/pkg/table"
	"github.com/caseflow/caseflow/pkg/telemetry"
	"github.com/caseflow/caseflow/pkg/tui"
	"github.com/caseflow/caseflow/pkg/vocab"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [files...]",
	Short: "Reconstruct cases and the flow graph from table files",
	Long: `Analyze reads every given table file as part of one logical dataset,
reconstructs cases per entity and prints the aggregated flow summary.

Examples:
  caseflow analyze orders.csv --domain ecommerce
  caseflow analyze visits.xlsx labs.csv --domain healthcare --out ./artifacts
  caseflow analyze txns.csv --domain banking --duckdb runs.db --parquet`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	mgr := config.NewManager()
	if err := mgr.Load(); err != nil {
		return err
	}
	cfg := mgr.Get()

	v, err := loadVocabulary(cfg)
	if err != nil {
		return err
	}

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Init(ctx, telemetryConfig(cfg))
		if err != nil {
			fmt.Fprintf(os.Stderr, "telemetry disabled: %v\n", err)
		} else {
			defer shutdown(context.Background())
		}
	}

	if verbose {
		tui.PrintHeader(version)
	}

	tables, err := readTables(args)
	if err != nil {
		return err
	}

	dataset := datasetName
	if dataset == "" {
		dataset = filepath.Base(filepath.Dir(mustAbs(args[0])))
	}

	result, err := engine.New(v).Analyze(ctx, dataset, tables)
	if err != nil {
		return err
	}

	tui.PrintResult(result)
	if result.Success && showCases != 0 {
		tui.PrintCases(result.CaseDetails, showCases)
	}

	if saveSession {
		if err := persistSession(ctx, cfg, dataset, result); err != nil {
			return err
		}
	}
	return exportResult(ctx, cfg, result)
}

// loadVocabulary picks the vocabulary: explicit file, then --domain,
// then the configured default domain.
func loadVocabulary(cfg *config.Config) (*vocab.Vocabulary, error) {
	if vocabFile != "" {
		return vocab.Load(vocabFile)
	}

	domain := domainFlag
	if domain == "" {
		domain = cfg.Analysis.Domain
	}
	v, ok := vocab.Builtin(domain)
	if !ok {
		return nil, fmt.Errorf("unknown domain %q (available: %v)", domain, vocab.Builtins())
	}
	return v, nil
}

// readTables reads every file with a progress bar across tables.
func readTables(paths []string) ([]*table.Table, error) {
	bar := tui.TableProgress(len(paths))

	tables := make([]*table.Table, 0, len(paths))
	for _, path := range paths {
		t, err := table.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		tables = append(tables, t)
		bar.Add(1)
	}
	bar.Finish()
	return tables, nil
}

// persistSession stores the result in the configured session backend.
func persistSession(ctx context.Context, cfg *config.Config, dataset string, result *model.AnalysisResult) error {
	store, err := openSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	sess, err := store.Create(ctx, dataset, result, cfg.Session.TTL)
	if err != nil {
		return err
	}
	fmt.Printf("  session %s saved\n", sess.ID)
	return nil
}

func openSessionStore(ctx context.Context, cfg *config.Config) (session.Store, error) {
	switch cfg.Session.Backend {
	case "redis":
		return session.NewRedisStore(session.DefaultRedisConfig(cfg.Session.RedisAddress))
	case "", "file":
		return session.NewFileStore(cfg.Session.FilePath)
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}

// exportResult writes the requested artifacts: JSON when an output dir
// is set, plus the optional Parquet table, DuckDB warehouse and S3
// upload.
func exportResult(ctx context.Context, cfg *config.Config, result *model.AnalysisResult) error {
	dir := outDir
	if dir == "" && (parquetFlag || s3Bucket != "" || cfg.Export.Parquet) {
		dir = cfg.Export.Dir
	}
	if dir == "" && duckdbPath == "" && cfg.Export.DuckDBPath == "" {
		return nil
	}

	var artifacts *export.Artifacts
	if dir != "" {
		var err error
		artifacts, err = export.WriteJSON(dir, result)
		if err != nil {
			return err
		}
		fmt.Printf("  artifacts written to %s\n", dir)
	}

	paths := []string{}
	if artifacts != nil {
		paths = artifacts.Paths()
	}

	if (parquetFlag || cfg.Export.Parquet) && dir != "" {
		parquetPath := filepath.Join(dir, "case_activities.parquet")
		if err := export.WriteParquet(parquetPath, result.CaseDetails); err != nil {
			return err
		}
		paths = append(paths, parquetPath)
	}

	dbPath := duckdbPath
	if dbPath == "" {
		dbPath = cfg.Export.DuckDBPath
	}
	if dbPath != "" {
		w, err := export.OpenWarehouse(dbPath)
		if err != nil {
			return err
		}
		defer w.Close()
		if err := w.Store(ctx, result); err != nil {
			return err
		}
		fmt.Printf("  run stored in %s\n", dbPath)
	}

	bucket := s3Bucket
	if bucket == "" {
		bucket = cfg.Export.S3Bucket
	}
	if bucket != "" && len(paths) > 0 {
		s3cfg := export.DefaultS3Config(bucket, firstNonEmpty(s3Region, cfg.Export.S3Region))
		s3cfg.Prefix = firstNonEmpty(s3Prefix, cfg.Export.S3Prefix, result.RunID)
		uploader, err := export.NewUploader(ctx, s3cfg)
		if err != nil {
			return err
		}
		keys, err := uploader.UploadAll(ctx, paths)
		if err != nil {
			return err
		}
		fmt.Printf("  %d artifact(s) uploaded to s3://%s\n", len(keys), bucket)
	}
	return nil
}

func telemetryConfig(cfg *config.Config) telemetry.Config {
	tc := telemetry.DefaultConfig()
	tc.ServiceVersion = version
	if cfg.Telemetry.Endpoint != "" {
		tc.Endpoint = cfg.Telemetry.Endpoint
	}
	if cfg.Telemetry.SamplingRatio > 0 {
		tc.SamplingRatio = cfg.Telemetry.SamplingRatio
	}
	return tc
}

func mustAbs(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
