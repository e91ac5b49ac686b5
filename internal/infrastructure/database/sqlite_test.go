package database

import (
	"context"
	"testing"
)

func TestInitSQLite_CreatesTables(t *testing.T) {
	db, err := InitSQLite("file::memory:")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	defer db.Close()

	for _, table := range []string{"reservations", "reservation_participants", "payments", "notification_templates"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("expected table %s, got %v", table, err)
		}
	}

	// Idempotent on reopen of the same handle.
	if err := createTables(db); err != nil {
		t.Fatalf("expected createTables to be idempotent, got %v", err)
	}
}

func TestNewDynamoDBConfig_LocalEndpoint(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")
	cfg, err := NewDynamoDBConfig(context.Background(), DynamoDBOptions{Region: "sa-east-1", Endpoint: "http://localhost:8000"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.Region != "sa-east-1" {
		t.Fatalf("expected region sa-east-1, got %s", cfg.Region)
	}
	creds, err := cfg.Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("expected static credentials, got %v", err)
	}
	if creds.AccessKeyID != "local" {
		t.Fatalf("expected local access key, got %s", creds.AccessKeyID)
	}
}
