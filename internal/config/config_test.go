package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestReadConfig(t *testing.T) {
	var (
		err         error
		projectRoot string
	)

	// Get the project root by going up from internal/config
	projectRoot, err = filepath.Abs("../../")
	if err != nil {
		t.Fatalf("failed to get project root: %v", err)
	}

	configPath := filepath.Join(projectRoot, "etc") + string(filepath.Separator)

	var cfg Config

	cfg, err = ReadConfig(configPath)
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	// Test basic config fields
	if cfg.Title == "" {
		t.Error("Config.Title should not be empty")
	}

	if cfg.DB.GormEngine == "" {
		t.Error("DB.GormEngine should not be empty")
	}

	// Test DB config
	if cfg.DB.Host == "" {
		t.Error("DB.Host should not be empty")
	}

	// Test import settings
	if cfg.Import.PageSize == 0 {
		t.Error("Import.PageSize should not be 0")
	}

	if cfg.Import.FixtureDir == "" {
		t.Error("Import.FixtureDir should not be empty")
	}
}

func TestReadConfigPathWithoutTrailingSlash(t *testing.T) {
	projectRoot, err := filepath.Abs("../../")
	if err != nil {
		t.Fatalf("failed to get project root: %v", err)
	}

	// Both "etc" and "etc/" must resolve the same config file.
	cfg, err := ReadConfig(filepath.Join(projectRoot, "etc"))
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.DB.GormEngine == "" {
		t.Error("DB.GormEngine should not be empty")
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
		errText string
	}{
		{
			name: "valid config",
			config: Config{
				DB:     DB{GormEngine: "sqlite"},
				Import: Import{PageSize: 500},
			},
			wantErr: false,
		},
		{
			name: "missing db engine",
			config: Config{
				Import: Import{PageSize: 500},
			},
			wantErr: true,
			errText: "db.gormengine",
		},
		{
			name: "negative page size",
			config: Config{
				DB:     DB{GormEngine: "sqlite"},
				Import: Import{PageSize: -1},
			},
			wantErr: true,
			errText: "import.pagesize",
		},
		{
			name: "recording without fixture dir",
			config: Config{
				DB:     DB{GormEngine: "sqlite"},
				Import: Import{RecordFixtures: true},
			},
			wantErr: true,
			errText: "import.fixturedir",
		},
		{
			name: "replay without fixture dir",
			config: Config{
				DB:     DB{GormEngine: "sqlite"},
				Import: Import{ReplayFixtures: true},
			},
			wantErr: true,
			errText: "import.fixturedir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(tt.config)
			if tt.wantErr {
				if err == nil {
					t.Fatal("validate() expected error, got nil")
				}

				if !strings.Contains(err.Error(), tt.errText) {
					t.Errorf("validate() error = %q, want it to contain %q", err, tt.errText)
				}

				return
			}

			if err != nil {
				t.Errorf("validate() unexpected error = %v", err)
			}
		})
	}
}

func TestDumpConfig(t *testing.T) {
	cfg := Config{
		Title: "dirgraph",
		DB:    DB{GormEngine: "sqlite", Name: "dirgraph"},
	}

	out, err := DumpConfig(cfg)
	if err != nil {
		t.Fatalf("DumpConfig() error = %v", err)
	}

	if !strings.Contains(out, "dirgraph") {
		t.Error("DumpConfig() output should contain the title")
	}

	jsonOut, err := DumpConfigJSON(cfg)
	if err != nil {
		t.Fatalf("DumpConfigJSON() error = %v", err)
	}

	if !strings.Contains(jsonOut, "\"Title\": \"dirgraph\"") {
		t.Error("DumpConfigJSON() output should contain the title")
	}
}
