package config

import (
	"strings"
	"testing"
)

func baseConfig() *Config {
	return &Config{
		Server:   ServerConfig{Port: "8080"},
		Store:    StoreConfig{Backend: BackendMemory},
		MongoDB:  MongoDBConfig{DBName: "shopdesk"},
		Snapshot: SnapshotConfig{CronSchedule: "5 0 * * *", Timezone: "UTC"},
		Alerts:   AlertConfig{LowStockThreshold: 5},
	}
}

func TestValidateMemoryBackend(t *testing.T) {
	if err := baseConfig().Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateSheetsBackendRequiresCredentials(t *testing.T) {
	cfg := baseConfig()
	cfg.Store.Backend = BackendSheets

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "GOOGLE_SHEETS_CREDENTIALS_PATH") {
		t.Fatalf("error = %v, want credentials path complaint", err)
	}

	cfg.Sheets.CredentialsPath = "/etc/creds.json"
	err = cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "SPREADSHEET_ID") {
		t.Fatalf("error = %v, want spreadsheet id complaint", err)
	}

	cfg.Sheets.SpreadsheetID = "sheet-id"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	cfg := baseConfig()
	cfg.Store.Backend = "postgres"
	if err := cfg.Validate(); err == nil {
		t.Fatal("unknown backend accepted")
	}
}

func TestValidateRejectsNegativeThreshold(t *testing.T) {
	cfg := baseConfig()
	cfg.Alerts.LowStockThreshold = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("negative threshold accepted")
	}
}
