package config

import (
	"os"
	"path/filepath"
	"testing"
)

const testYaml = `
api:
  address: "127.0.0.1"
  port: 8190
database:
  path: "/tmp/energiekompas.db"
  backup_retention_days: 30
market_price:
  run_at: "15 14 * * *"
  average_days: 7
calculation:
  default_year: 2025
  day_start_hour: 7
  day_end_hour: 21
logging:
  console_level: "DEBUG"
  db_level: "WARN"
  db_attrs_format: "TEXT"
`

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(testYaml), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if c.Api.Port != 8190 {
		t.Errorf("got port %d, wanted 8190", c.Api.Port)
	}
	if c.Database.Path != "/tmp/energiekompas.db" {
		t.Errorf("got database path %q", c.Database.Path)
	}
	if c.Database.GetBackupRetentionDays() != 30 {
		t.Errorf("got backup retention %d, wanted 30", c.Database.GetBackupRetentionDays())
	}
	if c.MarketPrice.GetAverageDays() != 7 {
		t.Errorf("got average days %d, wanted 7", c.MarketPrice.GetAverageDays())
	}
	if c.Calculation.GetDefaultYear() != 2025 {
		t.Errorf("got default year %d, wanted 2025", c.Calculation.GetDefaultYear())
	}

	window, err := c.Calculation.GetDayWindow()
	if err != nil {
		t.Fatalf("unexpected day window error: %v", err)
	}
	if window.Start != 7 || window.End != 21 {
		t.Errorf("got day window %d-%d, wanted 7-21", window.Start, window.End)
	}

	if c.Logging.GetDbLevel().String() != "WARN" {
		t.Errorf("got db level %s, wanted WARN", c.Logging.GetDbLevel())
	}
	if c.Logging.GetDbAttrsFormat() != "TEXT" {
		t.Errorf("got attrs format %s, wanted TEXT", c.Logging.GetDbAttrsFormat())
	}
	if c.Logging.GetDbMaxEntries() != 10000 {
		t.Errorf("got db max entries %d, wanted default 10000", c.Logging.GetDbMaxEntries())
	}
}
