package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nyctennis/courtfinder/internal/config"
	"github.com/nyctennis/courtfinder/internal/logger"
	"github.com/nyctennis/courtfinder/internal/parks"
	"github.com/nyctennis/courtfinder/internal/scraper"
	"github.com/nyctennis/courtfinder/internal/service"
	"github.com/nyctennis/courtfinder/internal/snapshot"
	"github.com/nyctennis/courtfinder/internal/store"
)

var (
	flagFormat  string
	flagVerbose bool
	flagNoDB    bool
	flagPark    int
	flagDate    string
)

// NewRootCmd creates the courtfinder root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "courtfinder",
		Short: "Find open tennis court reservation slots across NYC parks",
		Long: `Scrapes the NYC Parks tennis reservation system, reconciles the
results into Postgres, and answers availability queries per park and date.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(newScrapeCmd())
	cmd.AddCommand(newAvailabilityCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newParksCmd())

	return cmd
}

func newScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Run a full scrape of every reservation park",
		RunE:  runScrape,
	}
	cmd.Flags().BoolVar(&flagNoDB, "no-db", false, "Scrape only; skip the database entirely")
	return cmd
}

func newAvailabilityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "availability",
		Short: "List open, reservable slots for one park and date",
		RunE:  runAvailability,
	}
	cmd.Flags().IntVar(&flagPark, "park", 0, "Park id (1-13, required)")
	cmd.Flags().StringVar(&flagDate, "date", "", "Date as YYYY-MM-DD (required)")
	cmd.MarkFlagRequired("park") // nolint:errcheck
	cmd.MarkFlagRequired("date") // nolint:errcheck
	return cmd
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show when availability data was last refreshed",
		RunE:  runStatus,
	}
}

func newParksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parks",
		Short: "List the reference parks",
		RunE:  runParks,
	}
}

// setup loads configuration and sets up logging. Every subcommand calls
// it first.
func setup() (*config.Config, OutputFormat, error) {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return nil, "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, "", err
	}

	level := logger.Level(strings.ToUpper(cfg.LogLevel))
	if flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, os.Stderr))

	return cfg, format, nil
}

// openService wires scraper, store, and snapshot cache into a service.
// The returned closer releases the database connection.
func openService(cfg *config.Config) (*service.Service, func(), error) {
	db, err := store.Open(cfg.DSN())
	if err != nil {
		return nil, nil, err
	}

	st := store.New(db, cfg.PurgeStale)
	if err := st.InitSchema(context.Background()); err != nil {
		db.Close() // nolint:errcheck
		return nil, nil, err
	}
	if err := st.SeedParks(context.Background()); err != nil {
		db.Close() // nolint:errcheck
		return nil, nil, err
	}

	sc := scraper.New(cfg.BaseURL, cfg.HTTPTimeout)
	svc := service.New(sc, st, snapshot.New(), cfg.ScrapeWorkers, cfg.ScrapeTimeout)
	return svc, func() { db.Close() }, nil
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, format, err := setup()
	if err != nil {
		return err
	}

	if flagNoDB {
		sc := scraper.New(cfg.BaseURL, cfg.HTTPTimeout)
		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.ScrapeTimeout)
		defer cancel()
		result := sc.ScrapeAll(ctx, cfg.ScrapeWorkers)
		if err := WriteScrapeResult(os.Stdout, result, format); err != nil {
			return err
		}
		if !result.Success {
			return fmt.Errorf("scrape failed: %s", result.Err)
		}
		return nil
	}

	svc, closeDB, err := openService(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	result := svc.RunFullScrape(cmd.Context())
	if err := WriteScrapeResult(os.Stdout, result, format); err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("scrape failed: %s", result.Err)
	}
	return nil
}

func runAvailability(cmd *cobra.Command, args []string) error {
	cfg, format, err := setup()
	if err != nil {
		return err
	}
	if _, ok := parks.ByID(flagPark); !ok {
		return fmt.Errorf("unknown park id %d", flagPark)
	}

	svc, closeDB, err := openService(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	records, err := svc.GetAvailability(cmd.Context(), flagPark, flagDate)
	if err != nil {
		if errors.Is(err, store.ErrNoData) {
			return fmt.Errorf("%w (try: courtfinder scrape)", err)
		}
		return err
	}

	park, _ := parks.ByID(flagPark)
	return WriteAvailability(os.Stdout, park, flagDate, records, format)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, format, err := setup()
	if err != nil {
		return err
	}

	svc, closeDB, err := openService(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	latest, err := svc.Freshness(cmd.Context())
	if err != nil {
		if errors.Is(err, store.ErrNoData) {
			return fmt.Errorf("%w (try: courtfinder scrape)", err)
		}
		return err
	}
	return WriteStatus(os.Stdout, latest, format)
}

func runParks(cmd *cobra.Command, args []string) error {
	cfg, format, err := setup()
	if err != nil {
		return err
	}

	// Prefer the seeded reference table; fall back to the static list
	// when no database is reachable.
	list := parks.All()
	if db, err := store.Open(cfg.DSN()); err == nil {
		defer db.Close() // nolint:errcheck
		st := store.New(db, cfg.PurgeStale)
		if stored, err := st.Parks(cmd.Context()); err == nil && len(stored) > 0 {
			list = stored
		}
	}
	return WriteParks(os.Stdout, list, format)
}
