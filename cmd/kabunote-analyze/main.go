// Command kabunote-analyze refreshes the stored analysis of notebooks in bulk.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/kabunote/internal/config"
	dbRedis "github.com/kailas-cloud/kabunote/internal/db/redis"
	dombatch "github.com/kailas-cloud/kabunote/internal/domain/batch"
	logpkg "github.com/kailas-cloud/kabunote/internal/logger"
	"github.com/kailas-cloud/kabunote/internal/metrics"
	"github.com/kailas-cloud/kabunote/internal/repository/analysiscache"
	notebookrepo "github.com/kailas-cloud/kabunote/internal/repository/notebook"
	analyzeruc "github.com/kailas-cloud/kabunote/internal/usecase/analyzer"
	"github.com/kailas-cloud/kabunote/internal/usecase/reanalyze"
	"github.com/kailas-cloud/kabunote/internal/version"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var opts reanalyze.Options
	var verbose bool

	cmd := &cobra.Command{
		Use:          "kabunote-analyze",
		Short:        "Run content analysis over stored notebooks and save the results",
		Version:      version.String(),
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, opts, verbose, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.Owner, "owner", "", "only analyze notebooks of this owner")
	cmd.Flags().StringVar(&opts.NotebookID, "notebook", "", "only analyze this notebook")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "re-analyze notebooks that already have an analysis")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "report what would be analyzed without saving")
	cmd.Flags().IntVar(&opts.Limit, "limit", reanalyze.DefaultLimit, "maximum notebooks per owner (0 = no limit)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print one line per notebook")
	return cmd
}

func run(ctx context.Context, opts reanalyze.Options, verbose bool, out io.Writer) error {
	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	name := cfg.Database.ClientName
	if name == "" {
		name = "kabunote-analyze"
	}
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,

		ClientName:  name,
		DialTimeout: cfg.Database.DialTimeout(),
	})
	if err != nil {
		return fmt.Errorf("create database store: %w", err)
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, cfg.Database.Readiness()); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}

	an := analyzeruc.New(logger)
	var cached *analysiscache.CachedAnalyzer
	if cfg.Analysis.CacheOn() {
		ttl := cfg.Analysis.CacheTTL()
		cached = analysiscache.New(an, store, ttl, metrics.AnalysisCacheTotal, logger)
	} else {
		cached = analysiscache.New(an, nil, 0, nil, logger)
	}

	svc := reanalyze.New(
		notebookrepo.New(store),
		cached,
		analysiscache.NewSnapshots(store),
		logger,
	).WithOutcomeCounter(metrics.ReanalyzeNotebooksTotal)

	logger.Info("Starting re-analysis",
		zap.String("owner", opts.Owner),
		zap.String("notebook", opts.NotebookID),
		zap.Bool("force", opts.Force),
		zap.Bool("dry_run", opts.DryRun),
		zap.Int("limit", opts.Limit),
	)

	start := time.Now()
	rep, err := svc.Run(ctx, opts)
	if reanalyze.IsNotFound(err) {
		return fmt.Errorf("notebook %s does not exist", opts.NotebookID)
	}
	printReport(out, &rep, verbose)
	if err != nil {
		return err
	}
	logger.Info("Re-analysis finished",
		zap.Int("processed", rep.Processed),
		zap.Int("skipped", rep.Skipped),
		zap.Int("failed", rep.Failed),
		zap.Duration("elapsed", time.Since(start)),
	)
	if len(rep.FailedOwners) > 0 {
		return fmt.Errorf("%d owner(s) could not be listed", len(rep.FailedOwners))
	}
	return nil
}

func printReport(out io.Writer, rep *reanalyze.Report, verbose bool) {
	if verbose {
		for i := range rep.Items {
			printItem(out, &rep.Items[i])
		}
	}

	verb := "Analyzed"
	if rep.DryRun {
		verb = "Would analyze"
	}
	_, _ = fmt.Fprintf(out, "%s %d notebook(s), %d entr(ies); skipped %d; failed %d\n",
		verb, rep.Processed, rep.Entries, rep.Skipped, rep.Failed)
	for _, owner := range rep.FailedOwners {
		_, _ = fmt.Fprintf(out, "owner %s: listing failed\n", owner)
	}
}

func printItem(out io.Writer, item *dombatch.Result) {
	switch item.Status() {
	case dombatch.StatusError:
		_, _ = fmt.Fprintf(out, "  [%s] %s %q: %v\n", item.Status(), item.ID(), item.Title(), item.Err())
	case dombatch.StatusSkipped:
		_, _ = fmt.Fprintf(out, "  [%s] %s %q\n", item.Status(), item.ID(), item.Title())
	default:
		_, _ = fmt.Fprintf(out, "  [%s] %s %q (%d entries)\n", item.Status(), item.ID(), item.Title(), item.Entries())
	}
}
