package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DB_DRIVER", "SESSION_TTL", "MAX_UPLOAD_BYTES", "STORAGE_BACKEND", "PORT"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.DBDriver != "postgres" {
		t.Errorf("DBDriver = %q, want postgres", cfg.DBDriver)
	}
	if cfg.SessionTTL != 720*time.Hour {
		t.Errorf("SessionTTL = %v, want 720h", cfg.SessionTTL)
	}
	if cfg.MaxUploadBytes != 5<<20 {
		t.Errorf("MaxUploadBytes = %d, want %d", cfg.MaxUploadBytes, 5<<20)
	}
	if cfg.StorageBackend != "memory" {
		t.Errorf("StorageBackend = %q, want memory", cfg.StorageBackend)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("MAX_UPLOAD_BYTES", "not-a-number")

	cfg := Load()

	if cfg.DBDriver != "sqlite" {
		t.Errorf("DBDriver = %q, want sqlite", cfg.DBDriver)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Errorf("SessionTTL = %v, want 2h", cfg.SessionTTL)
	}
	if !cfg.CookieSecure {
		t.Error("CookieSecure = false, want true")
	}
	if cfg.MaxUploadBytes != 5<<20 {
		t.Errorf("MaxUploadBytes = %d, want fallback", cfg.MaxUploadBytes)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr []string
	}{
		{
			name: "valid sqlite with memory storage",
			cfg:  Config{DBDriver: "sqlite", DBPath: "x.db", SessionSecret: "s", StorageBackend: "memory"},
		},
		{
			name:    "missing secret and password",
			cfg:     Config{DBDriver: "postgres", StorageBackend: "memory"},
			wantErr: []string{"SESSION_SECRET", "DB_PASSWORD"},
		},
		{
			name:    "s3 without bucket",
			cfg:     Config{DBDriver: "sqlite", DBPath: "x.db", SessionSecret: "s", StorageBackend: "s3"},
			wantErr: []string{"STORAGE_BUCKET", "STORAGE_PUBLIC_URL"},
		},
		{
			name:    "unknown driver",
			cfg:     Config{DBDriver: "mysql", SessionSecret: "s", StorageBackend: "memory"},
			wantErr: []string{"DB_DRIVER"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			for _, want := range tt.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("error %q does not mention %s", err, want)
				}
			}
		})
	}
}
