package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"menu_agent/internal/adapters/observability"
	"menu_agent/internal/app"
	"menu_agent/internal/shared"
	"menu_agent/internal/storage"
)

var (
	storeFlag string
	boltFlag  string
	jsonOut   bool
)

// session holds the services opened for one command invocation.
type session struct {
	cfg     shared.Config
	query   *app.QueryService
	catalog *app.CatalogService
	closers []func() error
}

var sess *session

var rootCmd = &cobra.Command{
	Use:           "menuctl",
	Short:         "menuctl — restaurant menu catalog tool",
	Long:          "Seed, inspect, filter and get recommendations from the configured menu store.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return openSession(cmd.Context())
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeSession()
	},
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", describe(err))
		_ = closeSession()
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "store driver override (bolt, mysql, postgres, memory)")
	rootCmd.PersistentFlags().StringVar(&boltFlag, "bolt-path", "", "bolt database file override")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "print JSON instead of a table")

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(restaurantsCmd)
	rootCmd.AddCommand(itemsCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(resetCmd)
}

func openSession(ctx context.Context) error {
	cfg, err := shared.Load()
	if err != nil {
		return err
	}
	if storeFlag != "" {
		cfg.StoreDriver = storeFlag
	}
	if boltFlag != "" {
		cfg.BoltPath = boltFlag
	}
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	s := &session{cfg: cfg}
	repo, closeRepo, err := storage.Open(ctx, cfg)
	if err != nil {
		return err
	}
	s.closers = append(s.closers, closeRepo)
	cache, closeCache, err := storage.OpenCache(ctx, cfg)
	if err != nil {
		_ = closeRepo()
		return err
	}
	s.closers = append(s.closers, closeCache)

	s.query = app.NewQueryService(repo, cache, cfg.CacheTTL())
	s.catalog = app.NewCatalogService(repo, cache)
	sess = s
	return nil
}

func closeSession() error {
	if sess == nil {
		return nil
	}
	var first error
	for i := len(sess.closers) - 1; i >= 0; i-- {
		if err := sess.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	sess = nil
	return first
}
