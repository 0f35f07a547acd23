// Package main provides certlinkctl, an offline companion to the certlink
// server that ingests spreadsheets and renders records directly against the
// database file.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/certlink/internal/adapter/driven/filetemplate"
	sqliteadapter "github.com/ericfisherdev/certlink/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/certlink/internal/adapter/driven/spreadsheet"
	"github.com/ericfisherdev/certlink/internal/application"
	"github.com/ericfisherdev/certlink/internal/config"
)

var (
	dbPath       string
	baseURL      string
	templatePath string
	outputPath   string
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "certlinkctl",
		Short: "Ingest project spreadsheets and render stored records offline",
		Long: `certlinkctl works directly on the certlink database file. Ingestion
uses the same fingerprinting and duplicate handling as the upload endpoint.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (default: CERTLINK_DB_PATH or data.db)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Lookup link prefix (default: CERTLINK_BASE_URL)")

	ingestCmd := &cobra.Command{
		Use:   "ingest [input.xlsx]",
		Short: "Fingerprint and store every row, writing the sheet with a link column",
		Args:  cobra.ExactArgs(1),
		RunE:  runIngest,
	}
	ingestCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output workbook path (default: <input>_linked.xlsx)")

	lookupCmd := &cobra.Command{
		Use:   "lookup [hash]",
		Short: "Render the record stored under hash as HTML",
		Args:  cobra.ExactArgs(1),
		RunE:  runLookup,
	}
	lookupCmd.Flags().StringVar(&templatePath, "template", "", "HTML template path (default: CERTLINK_TEMPLATE_PATH or built-in)")
	lookupCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")

	rootCmd.AddCommand(ingestCmd, lookupCmd)
	return rootCmd
}

// openStore loads config, applies flag overrides, and opens the migrated database.
func openStore(ctx context.Context) (*config.Config, *sqliteadapter.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if templatePath != "" {
		cfg.TemplatePath = templatePath
	}

	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return cfg, db, nil
}

func runIngest(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	cfg, db, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
	codec := spreadsheet.NewCodec()
	svc := application.NewIngestService(
		sqliteadapter.NewRecordRepo(db),
		application.NewFingerprinter(cfg.Location),
		cfg.BaseURL,
		logger,
	)

	sheet, err := codec.Decode(in)
	if err != nil {
		return fmt.Errorf("decode %s: %w", inputPath, err)
	}

	report, err := svc.Ingest(cmd.Context(), sheet.Rows)
	if err != nil {
		return err
	}
	sheet.Rows = report.Rows

	if outputPath == "" {
		outputPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + "_linked.xlsx"
	}
	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := codec.Encode(out, sheet); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d inserted, %d existing, %d failed\n",
		outputPath, report.Inserted, report.Existing, report.Failed)
	if report.Failed > 0 {
		return fmt.Errorf("%d rows failed to store", report.Failed)
	}
	return nil
}

func runLookup(cmd *cobra.Command, args []string) error {
	cfg, db, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	svc := application.NewLookupService(sqliteadapter.NewRecordRepo(db), filetemplate.NewSource(cfg.TemplatePath))
	page, err := svc.RenderHTML(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	_, err = io.WriteString(w, page)
	return err
}
