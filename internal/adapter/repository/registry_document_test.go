package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/johnquangdev/video-digest/internal/domain/entities"
)

func newTestRegistry(t *testing.T) (*DocumentRegistry, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "processed", "registry.json")
	reg, err := NewDocumentRegistry(path, nil)
	if err != nil {
		t.Fatalf("NewDocumentRegistry failed: %v", err)
	}
	return reg, path
}

func TestDocumentRegistry_GetMissing(t *testing.T) {
	reg, _ := newTestRegistry(t)
	rec, err := reg.Get(context.Background(), "nope.mp4")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if rec != nil {
		t.Fatalf("expected nil record, got %+v", rec)
	}
}

func TestDocumentRegistry_UpsertMerges(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	if _, err := reg.Upsert(ctx, "a.mp4", entities.RecordPatch{
		Processed:          entities.Ptr(true),
		TranscriptFilePath: entities.Ptr("processed/a_transcript.txt"),
	}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if _, err := reg.Upsert(ctx, "a.mp4", entities.RecordPatch{
		Summarized:      entities.Ptr(true),
		SummaryFilePath: entities.Ptr("processed/a_summary.txt"),
	}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	records, err := reg.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected a single merged record, got %d", len(records))
	}
	rec := records[0]
	if !rec.Processed || rec.TranscriptFilePath != "processed/a_transcript.txt" {
		t.Errorf("first patch lost: %+v", rec)
	}
	if !rec.Summarized || rec.SummaryFilePath == nil {
		t.Errorf("second patch missing: %+v", rec)
	}
	if rec.BaseName != "a" {
		t.Errorf("expected base name a, got %s", rec.BaseName)
	}
}

func TestDocumentRegistry_ListInsertionOrderAndReopen(t *testing.T) {
	reg, path := newTestRegistry(t)
	ctx := context.Background()

	names := []string{"zeta.mp4", "alpha.mp4", "mid.mkv"}
	for _, n := range names {
		if _, err := reg.Upsert(ctx, n, entities.RecordPatch{Processed: entities.Ptr(true)}); err != nil {
			t.Fatalf("upsert %s: %v", n, err)
		}
	}
	// touching an existing key keeps its position
	if _, err := reg.Upsert(ctx, "zeta.mp4", entities.RecordPatch{Summarized: entities.Ptr(true)}); err != nil {
		t.Fatalf("re-upsert: %v", err)
	}

	reopened, err := NewDocumentRegistry(path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	records, err := reopened.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != len(names) {
		t.Fatalf("expected %d records, got %d", len(names), len(records))
	}
	for i, n := range names {
		if records[i].Filename != n {
			t.Errorf("position %d: got %s, want %s", i, records[i].Filename, n)
		}
	}
	if !records[0].Summarized {
		t.Error("zeta.mp4 should be summarized after reopen")
	}
}

func TestDocumentRegistry_ConcurrentUpsertsKeepEveryKey(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("video-%02d.mp4", i)
			if _, err := reg.Upsert(ctx, name, entities.RecordPatch{Processed: entities.Ptr(true)}); err != nil {
				t.Errorf("upsert %s: %v", name, err)
			}
		}(i)
	}
	wg.Wait()

	records, err := reg.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != n {
		t.Fatalf("expected %d records, got %d", n, len(records))
	}
}

func TestDocumentRegistry_CorruptDocument(t *testing.T) {
	reg, path := newTestRegistry(t)
	if err := os.WriteFile(path, []byte("[1,2,3]"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := reg.List(context.Background()); err == nil {
		t.Fatal("expected parse error for non-object document")
	}
}

func TestDocumentRegistry_NoTempFilesLeft(t *testing.T) {
	reg, path := newTestRegistry(t)
	if _, err := reg.Upsert(context.Background(), "a.mp4", entities.RecordPatch{Processed: entities.Ptr(true)}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "registry.json" {
		t.Errorf("unexpected files in registry dir: %v", entries)
	}
}
