package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load with missing file should fall back to defaults, got %v", err)
	}

	if cfg.Timezone != "America/Los_Angeles" {
		t.Errorf("expected default timezone, got %q", cfg.Timezone)
	}
	if cfg.Calendar.WindowWeeks != 4 {
		t.Errorf("expected default window of 4 weeks, got %d", cfg.Calendar.WindowWeeks)
	}
	if cfg.Calendar.UIDDomain != "strava-scraper" {
		t.Errorf("expected default UID domain, got %q", cfg.Calendar.UIDDomain)
	}
	if cfg.Calendar.Output != "docs/calendar.ics" {
		t.Errorf("expected default output path, got %q", cfg.Calendar.Output)
	}
	if cfg.Scrape.MaxAttempts != 3 {
		t.Errorf("expected default max attempts of 3, got %d", cfg.Scrape.MaxAttempts)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `clubs:
  - https://www.strava.com/clubs/12345
timezone: Europe/Berlin
calendar:
  name: Berlin Rides
  windowweeks: 2
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.Clubs) != 1 || cfg.Clubs[0] != "https://www.strava.com/clubs/12345" {
		t.Errorf("unexpected clubs: %v", cfg.Clubs)
	}
	if cfg.Timezone != "Europe/Berlin" {
		t.Errorf("expected file timezone, got %q", cfg.Timezone)
	}
	if cfg.Calendar.Name != "Berlin Rides" {
		t.Errorf("expected file calendar name, got %q", cfg.Calendar.Name)
	}
	if cfg.Calendar.WindowWeeks != 2 {
		t.Errorf("expected file window, got %d", cfg.Calendar.WindowWeeks)
	}
	// Untouched keys keep their defaults.
	if cfg.Calendar.LeadMinutes != 30 {
		t.Errorf("expected default lead, got %d", cfg.Calendar.LeadMinutes)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("STRAVA_CLUB_EVENTS_TIMEZONE", "America/New_York")
	t.Setenv("STRAVA_CLUB_EVENTS_CALENDAR_WINDOWWEEKS", "6")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Timezone != "America/New_York" {
		t.Errorf("expected env timezone, got %q", cfg.Timezone)
	}
	if cfg.Calendar.WindowWeeks != 6 {
		t.Errorf("expected env window, got %d", cfg.Calendar.WindowWeeks)
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Clubs: []string{"https://www.strava.com/clubs/12345"},
			Calendar: Calendar{
				WindowWeeks:  4,
				LeadMinutes:  30,
				EntryMinutes: 30,
			},
			Scrape: Scrape{MaxAttempts: 3},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}, wantErr: false},
		{name: "no club sources", mutate: func(c *Config) { c.Clubs = nil }, wantErr: true},
		{name: "clubs file counts as a source", mutate: func(c *Config) {
			c.Clubs = nil
			c.ClubsFile = "clubs.txt"
		}, wantErr: false},
		{name: "zero window", mutate: func(c *Config) { c.Calendar.WindowWeeks = 0 }, wantErr: true},
		{name: "negative lead", mutate: func(c *Config) { c.Calendar.LeadMinutes = -1 }, wantErr: true},
		{name: "zero entry length", mutate: func(c *Config) { c.Calendar.EntryMinutes = 0 }, wantErr: true},
		{name: "zero attempts", mutate: func(c *Config) { c.Scrape.MaxAttempts = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestClubURLs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clubs.txt")
	content := `# weekend clubs
https://www.strava.com/clubs/11111

https://www.strava.com/clubs/22222
  # indented comment
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing clubs file: %v", err)
	}

	cfg := Config{
		Clubs:     []string{"https://www.strava.com/clubs/00000"},
		ClubsFile: path,
	}

	urls, err := cfg.ClubURLs()
	if err != nil {
		t.Fatalf("ClubURLs failed: %v", err)
	}

	want := []string{
		"https://www.strava.com/clubs/00000",
		"https://www.strava.com/clubs/11111",
		"https://www.strava.com/clubs/22222",
	}
	if len(urls) != len(want) {
		t.Fatalf("expected %d URLs, got %d: %v", len(want), len(urls), urls)
	}
	for i, url := range want {
		if urls[i] != url {
			t.Errorf("position %d: expected %q, got %q", i, url, urls[i])
		}
	}
}

func TestClubURLsMissingFile(t *testing.T) {
	cfg := Config{ClubsFile: filepath.Join(t.TempDir(), "nope.txt")}
	if _, err := cfg.ClubURLs(); err == nil {
		t.Error("expected error for missing clubs file")
	}
}

func TestDurationAccessors(t *testing.T) {
	cfg := Config{
		Calendar: Calendar{WindowWeeks: 4, LeadMinutes: 30, EntryMinutes: 45},
		Scrape:   Scrape{TimeoutSeconds: 10},
	}

	if got := cfg.Window(); got != 4*7*24*time.Hour {
		t.Errorf("unexpected window: %v", got)
	}
	if got := cfg.Lead(); got != 30*time.Minute {
		t.Errorf("unexpected lead: %v", got)
	}
	if got := cfg.EntryLength(); got != 45*time.Minute {
		t.Errorf("unexpected entry length: %v", got)
	}
	if got := cfg.ScrapeTimeout(); got != 10*time.Second {
		t.Errorf("unexpected scrape timeout: %v", got)
	}
}

func TestLocation(t *testing.T) {
	cfg := Config{Timezone: "America/Los_Angeles"}
	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("Location failed: %v", err)
	}
	if loc.String() != "America/Los_Angeles" {
		t.Errorf("unexpected location: %v", loc)
	}

	cfg.Timezone = "Not/AZone"
	if _, err := cfg.Location(); err == nil {
		t.Error("expected error for unknown timezone")
	}
}
