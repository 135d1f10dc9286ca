package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/video-digest/internal/domain/entities"
)

// DocumentRegistry stores the registry as a single JSON object keyed by filename.
// Key order in the document is insertion order. All access goes through mu, and
// writes replace the document atomically via a temp file and rename.
type DocumentRegistry struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger
}

// NewDocumentRegistry creates the registry, making sure its directory exists
func NewDocumentRegistry(path string, logger *zap.Logger) (*DocumentRegistry, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create registry dir: %w", err)
	}
	return &DocumentRegistry{path: path, logger: logger}, nil
}

// registryDocument keeps records with their key order
type registryDocument struct {
	keys    []string
	records map[string]*entities.ProcessingRecord
}

func (r *DocumentRegistry) Get(ctx context.Context, filename string) (*entities.ProcessingRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	return doc.records[filename], nil
}

func (r *DocumentRegistry) Upsert(ctx context.Context, filename string, patch entities.RecordPatch) (*entities.ProcessingRecord, error) {
	if filename == "" {
		return nil, errors.New("filename is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rec, ok := doc.records[filename]
	if !ok {
		rec = &entities.ProcessingRecord{
			Filename:   filename,
			BaseName:   entities.BaseName(filename),
			UploadTime: now,
			CreatedAt:  now,
		}
		doc.keys = append(doc.keys, filename)
		doc.records[filename] = rec
	}
	patch.Apply(rec)
	rec.UpdatedAt = now

	if err := r.save(doc); err != nil {
		return nil, err
	}

	if r.logger != nil {
		r.logger.Debug("📝 Registry record upserted",
			zap.String("filename", filename),
			zap.Bool("created", !ok),
			zap.Bool("processed", rec.Processed),
			zap.Bool("summarized", rec.Summarized),
		)
	}

	out := *rec
	return &out, nil
}

func (r *DocumentRegistry) List(ctx context.Context) ([]*entities.ProcessingRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	out := make([]*entities.ProcessingRecord, 0, len(doc.keys))
	for _, key := range doc.keys {
		out = append(out, doc.records[key])
	}
	return out, nil
}

// load reads the document; a missing or empty file is an empty registry
func (r *DocumentRegistry) load() (*registryDocument, error) {
	doc := &registryDocument{records: map[string]*entities.ProcessingRecord{}}

	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("parse registry: expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse registry: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("parse registry: unexpected key %v", tok)
		}

		var rec entities.ProcessingRecord
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("parse registry entry %q: %w", key, err)
		}
		rec.Filename = key
		if _, dup := doc.records[key]; !dup {
			doc.keys = append(doc.keys, key)
		}
		doc.records[key] = &rec
	}

	if _, err := dec.Token(); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse registry: %w", err)
	}
	return doc, nil
}

// save writes the whole document to a temp file in the same directory and renames it over the old one
func (r *DocumentRegistry) save(doc *registryDocument) error {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, key := range doc.keys {
		k, err := json.Marshal(key)
		if err != nil {
			return fmt.Errorf("encode registry key: %w", err)
		}
		v, err := json.MarshalIndent(doc.records[key], "  ", "  ")
		if err != nil {
			return fmt.Errorf("encode registry entry %q: %w", key, err)
		}
		buf.WriteString("  ")
		buf.Write(k)
		buf.WriteString(": ")
		buf.Write(v)
		if i < len(doc.keys)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".registry-*.json")
	if err != nil {
		return fmt.Errorf("create registry temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write registry: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync registry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close registry: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("replace registry: %w", err)
	}
	return nil
}
