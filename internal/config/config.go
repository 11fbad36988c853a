// Package config loads runtime configuration from defaults, an optional YAML
// file and environment variables, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

// EnvPrefix is the prefix for environment variable overrides, e.g.
// STRAVA_CLUB_EVENTS_TIMEZONE or STRAVA_CLUB_EVENTS_CALENDAR_WINDOWWEEKS.
const EnvPrefix = "STRAVA_CLUB_EVENTS_"

type Config struct {
	Clubs     []string `koanf:"clubs"`
	ClubsFile string   `koanf:"clubsfile"`
	Timezone  string   `koanf:"timezone"`
	Calendar  Calendar `koanf:"calendar"`
	Scrape    Scrape   `koanf:"scrape"`
}

type Calendar struct {
	Name         string `koanf:"name"`
	UIDDomain    string `koanf:"uiddomain"`
	WindowWeeks  int    `koanf:"windowweeks"`
	LeadMinutes  int    `koanf:"leadminutes"`
	EntryMinutes int    `koanf:"entryminutes"`
	Output       string `koanf:"output"`
}

type Scrape struct {
	TimeoutSeconds int `koanf:"timeoutseconds"`
	MaxAttempts    int `koanf:"maxattempts"`
}

// Load reads configuration from path. A missing file is not an error: struct
// defaults apply and environment variables may still override them.
func Load(path string) (Config, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Config{
		Timezone: "America/Los_Angeles",
		Calendar: Calendar{
			Name:         "Strava Club Events",
			UIDDomain:    "strava-scraper",
			WindowWeeks:  4,
			LeadMinutes:  30,
			EntryMinutes: 30,
			Output:       "docs/calendar.ics",
		},
		Scrape: Scrape{
			TimeoutSeconds: 30,
			MaxAttempts:    3,
		},
	}, "koanf"), nil)
	if err != nil {
		return Config{}, fmt.Errorf("loading config defaults: %w", err)
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			return Config{}, fmt.Errorf("loading config file: %w", err)
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, EnvPrefix)), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("loading config from environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is usable: at least one club source
// and positive durations.
func (c Config) Validate() error {
	if len(c.Clubs) == 0 && c.ClubsFile == "" {
		return fmt.Errorf("no club sources configured: set clubs or clubsfile")
	}
	if c.Calendar.WindowWeeks <= 0 {
		return fmt.Errorf("calendar.windowweeks must be positive, got %d", c.Calendar.WindowWeeks)
	}
	if c.Calendar.LeadMinutes < 0 {
		return fmt.Errorf("calendar.leadminutes must not be negative, got %d", c.Calendar.LeadMinutes)
	}
	if c.Calendar.EntryMinutes <= 0 {
		return fmt.Errorf("calendar.entryminutes must be positive, got %d", c.Calendar.EntryMinutes)
	}
	if c.Scrape.MaxAttempts < 1 {
		return fmt.Errorf("scrape.maxattempts must be at least 1, got %d", c.Scrape.MaxAttempts)
	}
	return nil
}

// ClubURLs returns the configured club URLs plus any listed in ClubsFile.
// The file holds one URL per line; blank lines and #-comments are skipped.
func (c Config) ClubURLs() ([]string, error) {
	urls := make([]string, 0, len(c.Clubs))
	urls = append(urls, c.Clubs...)

	if c.ClubsFile != "" {
		data, err := os.ReadFile(c.ClubsFile)
		if err != nil {
			return nil, fmt.Errorf("reading clubs file: %w", err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			urls = append(urls, line)
		}
	}

	return urls, nil
}

// Location resolves the configured IANA timezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Window is the forward-looking filter window as a duration.
func (c Config) Window() time.Duration {
	return time.Duration(c.Calendar.WindowWeeks) * 7 * 24 * time.Hour
}

// Lead is how long before the ride the calendar entry starts.
func (c Config) Lead() time.Duration {
	return time.Duration(c.Calendar.LeadMinutes) * time.Minute
}

// EntryLength is the duration of each calendar entry.
func (c Config) EntryLength() time.Duration {
	return time.Duration(c.Calendar.EntryMinutes) * time.Minute
}

// ScrapeTimeout is the per-request HTTP timeout.
func (c Config) ScrapeTimeout() time.Duration {
	return time.Duration(c.Scrape.TimeoutSeconds) * time.Second
}
