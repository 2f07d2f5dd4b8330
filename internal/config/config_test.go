package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearEnv blanks every variable NewFromEnv reads so host settings do not leak
// into a case.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"ENV", "ADDR", "STORE_DRIVER", "DATA_DIR", "SQLITE_PATH", "DB_URL", "USDA_BASE_URL", "USDA_TIMEOUT"} {
		t.Setenv(key, "")
	}
	t.Setenv("USDA_API_KEY", "")
	os.Unsetenv("USDA_API_KEY")
}

func TestNewFromEnv(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.Addr != "localhost:3000" {
			t.Errorf("Addr = %q, want localhost:3000", cfg.Addr)
		}
		if cfg.StoreDriver != "file" || cfg.DataDir != "data" || cfg.SQLitePath != "data/plannit.db" {
			t.Errorf("store settings = %+v", cfg.Store())
		}
		if cfg.USDAAPIKey != "DEMO_KEY" || cfg.USDABaseURL != "https://api.nal.usda.gov/fdc/v1" || cfg.USDATimeout != 15*time.Second {
			t.Errorf("usda settings = %+v", cfg.USDA())
		}
	})

	t.Run("Overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ENV", "production")
		t.Setenv("ADDR", ":8080")
		t.Setenv("STORE_DRIVER", "sqlite")
		t.Setenv("SQLITE_PATH", "/tmp/x.db")
		t.Setenv("USDA_API_KEY", "real-key")
		t.Setenv("USDA_TIMEOUT", "3s")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.Env != "production" || cfg.Addr != ":8080" {
			t.Errorf("cfg = %+v", cfg)
		}
		if s := cfg.Store(); s.Driver != "sqlite" || s.SQLitePath != "/tmp/x.db" {
			t.Errorf("store = %+v", s)
		}
		if u := cfg.USDA(); u.APIKey != "real-key" || u.Timeout != 3*time.Second {
			t.Errorf("usda = %+v", u)
		}
	})

	t.Run("ExplicitlyEmptyAPIKey", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("USDA_API_KEY", "")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.USDAAPIKey != "" {
			t.Errorf("USDAAPIKey = %q, want empty", cfg.USDAAPIKey)
		}
	})

	errorCases := []struct {
		name string
		env  map[string]string
	}{
		{"UnknownDriver", map[string]string{"STORE_DRIVER": "redis"}},
		{"PostgresWithoutURL", map[string]string{"STORE_DRIVER": "postgres"}},
		{"BadTimeout", map[string]string{"USDA_TIMEOUT": "soon"}},
		{"NegativeTimeout", map[string]string{"USDA_TIMEOUT": "-1s"}},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := NewFromEnv(); err == nil {
				t.Fatal("Expected an error, got nil")
			}
		})
	}
}

// chdir switches the working directory for the rest of the test and restores
// it on cleanup (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("MissingFile", func(t *testing.T) {
		chdir(t, t.TempDir())
		if err := LoadDotEnv(); err != nil {
			t.Errorf("Expected no error for missing .env, got %v", err)
		}
	})

	t.Run("LoadsFile", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PLANNIT_TEST_VAR=from-dotenv\n"), 0644); err != nil {
			t.Fatal(err)
		}
		chdir(t, dir)
		t.Setenv("PLANNIT_TEST_VAR", "")
		os.Unsetenv("PLANNIT_TEST_VAR")

		if err := LoadDotEnv(); err != nil {
			t.Fatalf("LoadDotEnv: %v", err)
		}
		if got := os.Getenv("PLANNIT_TEST_VAR"); got != "from-dotenv" {
			t.Errorf("PLANNIT_TEST_VAR = %q, want from-dotenv", got)
		}
	})
}
