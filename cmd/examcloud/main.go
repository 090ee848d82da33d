package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pavelanni/examcloud/internal/catalog"
	"github.com/pavelanni/examcloud/internal/handler"
	appI18n "github.com/pavelanni/examcloud/internal/i18n"
	"github.com/pavelanni/examcloud/internal/importer"
	"github.com/pavelanni/examcloud/internal/llm"
	"github.com/pavelanni/examcloud/internal/llm/prompts"
	"github.com/pavelanni/examcloud/internal/metrics"
	"github.com/pavelanni/examcloud/internal/storage"
	"github.com/pavelanni/examcloud/internal/store"
)

func main() {
	// A missing .env file is fine; flags and the environment still apply.
	_ = godotenv.Load()

	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "examcloud",
		Short: "Exam practice portal backend",
	}

	serve := serveCmd()
	root.AddCommand(serve, exportCmd(), importCmd(), resetCmd())

	// Make "serve" the default when no subcommand is given.
	root.RunE = serve.RunE

	// Register serve flags on root so bare `examcloud --addr ...` still works.
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

// commonFlags registers the storage, language and logging flags every
// command shares.
func commonFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("db-driver", string(storage.DriverSQLite), "Storage driver (sqlite, postgres)")
	f.String("db-dsn", "", "Storage DSN (default: examcloud.db for sqlite)")
	f.StringP("lang", "l", "en", "Message language (en, zh-TW)")
	f.Uint64("seed", 0, "Seed for question shuffling (0 = random)")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE:  runServe,
	}
	commonFlags(cmd)
	f := cmd.Flags()
	f.StringP("addr", "a", ":8080", "HTTP listen address")
	f.StringSlice("cors-origins", nil, "Allowed CORS origins (repeatable)")
	f.String("llm-url", "", "OpenAI-compatible API base URL (empty disables AI grading)")
	f.String("llm-key", "ollama", "API key for LLM")
	f.String("llm-model", "llama3.2", "LLM model name")
	f.String("prompt-variant", string(prompts.PromptStandard), "Grading prompt variant (strict, standard, lenient)")
	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export exam results as JSON",
		RunE:  runExport,
	}
	commonFlags(cmd)
	cmd.Flags().StringP("output", "o", "-", "Output file path (- for stdout)")
	return cmd
}

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import FILE...",
		Short: "Import exams from JSON files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runImport,
	}
	commonFlags(cmd)
	cmd.Flags().Bool("force", false, "Import files that were imported before")
	return cmd
}

func resetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the stored state so the next start uses the seed catalog",
		RunE:  runReset,
	}
	commonFlags(cmd)
	return cmd
}

func setupLogging(cmd *cobra.Command) {
	v := viperForCmd(cmd)

	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("EXAMCLOUD")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("examcloud")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/examcloud")
	v.AddConfigPath("/etc/examcloud")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Debug("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

// openStore opens the configured storage and returns a store loaded from it.
// The caller closes the returned database.
func openStore(ctx context.Context, v *viper.Viper) (*store.Store, *storage.DB, error) {
	db, err := storage.Open(ctx, storage.Driver(v.GetString("db-driver")), v.GetString("db-dsn"))
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}

	opts := []store.Option{store.WithPersister(db)}
	if seed := v.GetUint64("seed"); seed != 0 {
		opts = append(opts, store.WithSeed(seed))
	}
	s := store.New(catalog.Build(time.Now()), opts...)
	if err := s.Load(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return s, db, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lang := v.GetString("lang")
	if err := appI18n.Init(lang); err != nil {
		return fmt.Errorf("init i18n: %w", err)
	}

	s, db, err := openStore(ctx, v)
	if err != nil {
		return err
	}
	defer db.Close()

	// AI grading is optional; without an endpoint open-ended answers are
	// scored by string match only.
	var grader handler.Grader
	if llmURL := v.GetString("llm-url"); llmURL != "" {
		if err := prompts.Load(prompts.Files); err != nil {
			return fmt.Errorf("load prompts: %w", err)
		}
		variant := strings.ToLower(strings.TrimSpace(v.GetString("prompt-variant")))
		if !prompts.IsValidVariant(variant) {
			slog.Warn("invalid prompt-variant, using standard", "variant", variant)
			variant = string(prompts.PromptStandard)
		}
		c := llm.New(llmURL, v.GetString("llm-key"), v.GetString("llm-model"), prompts.PromptVariant(variant))
		if err := c.Ping(ctx); err != nil {
			return fmt.Errorf("LLM health check: %w", err)
		}
		slog.Info("LLM endpoint OK", "url", llmURL, "model", v.GetString("llm-model"), "variant", variant)
		grader = c
	}

	h := handler.New(s, grader, db, metrics.New(prometheus.DefaultRegisterer))
	srv := &http.Server{
		Addr: v.GetString("addr"),
		Handler: handler.NewRouter(h, handler.RouterConfig{
			Lang:        lang,
			CORSOrigins: v.GetStringSlice("cors-origins"),
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			"addr", srv.Addr,
			"db_driver", db.Driver(),
			"lang", lang,
			"ai_grading", grader != nil,
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runExport(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)
	ctx := cmd.Context()
	if err := appI18n.Init(v.GetString("lang")); err != nil {
		return fmt.Errorf("init i18n: %w", err)
	}

	s, db, err := openStore(ctx, v)
	if err != nil {
		return err
	}
	defer db.Close()

	export := s.ExportResults()
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}

	outPath := v.GetString("output")
	var w io.Writer
	if outPath == "" || outPath == "-" {
		w = os.Stdout
	} else {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	_, _ = fmt.Fprintln(w)

	fmt.Fprintln(os.Stderr, appI18n.Tp(ctx, "ResultsExported", export.Count))
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)
	ctx := cmd.Context()
	if err := appI18n.Init(v.GetString("lang")); err != nil {
		return fmt.Errorf("init i18n: %w", err)
	}

	s, db, err := openStore(ctx, v)
	if err != nil {
		return err
	}
	defer db.Close()

	force := v.GetBool("force")
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		rep, err := importer.Import(ctx, s, db, path, data, force)
		if err != nil {
			return err
		}
		if rep.Skipped {
			fmt.Fprintln(os.Stderr, appI18n.Td(ctx, "ImportSkipped", map[string]any{"Path": path}))
			continue
		}
		fmt.Fprintln(os.Stderr, appI18n.Tp(ctx, "ExamsImported", rep.Exams))
	}
	return nil
}

func runReset(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)
	ctx := cmd.Context()
	if err := appI18n.Init(v.GetString("lang")); err != nil {
		return fmt.Errorf("init i18n: %w", err)
	}

	s, db, err := openStore(ctx, v)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := s.Reset(ctx, catalog.Build(time.Now())); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, appI18n.T(ctx, "StateReset"))
	return nil
}
