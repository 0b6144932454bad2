package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != 5000 {
		t.Fatalf("expected default port 5000, got %d", cfg.Server.Port)
	}
	if cfg.Presign.Expiry != time.Hour {
		t.Fatalf("expected default presign expiry 1h, got %s", cfg.Presign.Expiry)
	}
	if cfg.Postgres.ProductsTable != "products" {
		t.Fatalf("expected default table name products, got %s", cfg.Postgres.ProductsTable)
	}
}

func TestLoadHonorsEnvironment(t *testing.T) {
	_ = os.Setenv("PORT", "8081")
	_ = os.Setenv("PRESIGN_EXPIRES_SECONDS", "120")
	_ = os.Setenv("MINIO_BUCKET", "warehouse")
	defer func() {
		os.Unsetenv("PORT")
		os.Unsetenv("PRESIGN_EXPIRES_SECONDS")
		os.Unsetenv("MINIO_BUCKET")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != 8081 {
		t.Fatalf("expected port 8081, got %d", cfg.Server.Port)
	}
	if cfg.Presign.Expiry != 2*time.Minute {
		t.Fatalf("expected presign expiry 2m, got %s", cfg.Presign.Expiry)
	}
	if cfg.MinIO.Bucket != "warehouse" {
		t.Fatalf("expected bucket warehouse, got %s", cfg.MinIO.Bucket)
	}
}
