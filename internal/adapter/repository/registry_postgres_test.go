package repository

import (
	"context"
	"os"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/johnquangdev/video-digest/internal/domain/entities"
)

// Runs against a real database only when TEST_DATABASE_DSN is set
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := db.AutoMigrate(&entities.ProcessingRecord{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Exec("TRUNCATE processing_records RESTART IDENTITY").Error; err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return db
}

func TestPostgresRegistry_UpsertMergesAndLists(t *testing.T) {
	reg := NewPostgresRegistry(openTestDB(t))
	ctx := context.Background()

	if _, err := reg.Upsert(ctx, "b.mp4", entities.RecordPatch{Processed: entities.Ptr(true)}); err != nil {
		t.Fatalf("upsert b: %v", err)
	}
	if _, err := reg.Upsert(ctx, "a.mp4", entities.RecordPatch{Processed: entities.Ptr(true)}); err != nil {
		t.Fatalf("upsert a: %v", err)
	}
	rec, err := reg.Upsert(ctx, "b.mp4", entities.RecordPatch{
		Summarized:      entities.Ptr(true),
		SummaryFilePath: entities.Ptr("processed/b_summary.txt"),
	})
	if err != nil {
		t.Fatalf("upsert b again: %v", err)
	}
	if !rec.Processed || !rec.Summarized {
		t.Errorf("expected merged record, got %+v", rec)
	}

	records, err := reg.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 2 || records[0].Filename != "b.mp4" {
		t.Fatalf("unexpected list %+v", records)
	}

	missing, err := reg.Get(ctx, "zzz.mp4")
	if err != nil || missing != nil {
		t.Fatalf("expected nil, nil for missing record, got %v, %v", missing, err)
	}
}
