package cli

import (
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/strava-club-events/internal/calendar"
	"github.com/pfrederiksen/strava-club-events/internal/config"
	"github.com/pfrederiksen/strava-club-events/internal/event"
	"github.com/pfrederiksen/strava-club-events/internal/publish"
	"github.com/pfrederiksen/strava-club-events/internal/scrape"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig  string
	flagOutput  string
	flagDryRun  bool
	flagVerbose bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strava-club-events",
		Short: "Publish an iCalendar feed of upcoming Strava club rides",
		Long: `Scrapes upcoming ride events from the configured Strava club pages and
publishes them as an iCalendar (.ics) file that calendar apps can subscribe to.`,
		RunE:          runGenerate,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVar(&flagConfig, "config", "config.yaml", "Path to the config file")
	cmd.Flags().StringVar(&flagOutput, "output", "", "Output path for the .ics file (overrides config)")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print the calendar instead of writing it")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	return cmd
}

// runGenerate is the main command logic
func runGenerate(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagOutput != "" {
		cfg.Calendar.Output = flagOutput
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	clubs, err := cfg.ClubURLs()
	if err != nil {
		return fmt.Errorf("loading club URLs: %w", err)
	}
	if len(clubs) == 0 {
		return fmt.Errorf("no club URLs configured")
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// The reference time is taken once and passed explicitly everywhere so a
	// run is a pure function of its inputs plus this single timestamp.
	now := time.Now().In(loc)

	parser := event.NewParser(loc, cfg.Lead())
	scraper := scrape.New(cfg.ScrapeTimeout(), cfg.Scrape.MaxAttempts)

	events := Collect(cmd.Context(), scraper, parser, clubs, now)

	doc := calendar.Assemble(events, now, calendar.Options{
		Window:      cfg.Window(),
		EntryLength: cfg.EntryLength(),
		Name:        cfg.Calendar.Name,
		Timezone:    cfg.Timezone,
		UIDDomain:   cfg.Calendar.UIDDomain,
	})

	var pub publish.Publisher
	if flagDryRun {
		pub = publish.NewDryRunPublisher(os.Stdout)
	} else {
		pub = publish.NewFilePublisher(cfg.Calendar.Output)
	}
	if err := pub.Publish(doc.Serialize()); err != nil {
		return fmt.Errorf("publishing calendar: %w", err)
	}

	log.WithFields(log.Fields{
		"clubs":  len(clubs),
		"parsed": len(events),
		"output": cfg.Calendar.Output,
	}).Info("calendar published")

	return nil
}
