package repository

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/aliskhannn/ek-phonics-bot/internal/domain/entities"
)

var (
	ErrEmptyDataset    = errors.New("dataset is empty")
	ErrMalformedRecord = errors.New("malformed record")
	ErrDuplicateID     = errors.New("duplicate record id")
)

const fetchTimeout = 15 * time.Second

// maxLineSize bounds a single JSONL line.
const maxLineSize = 1 << 20

// RecordRepository holds the immutable dataset snapshot loaded from a JSONL source.
// The source is either a file path or an http(s) URL.
type RecordRepository struct {
	source string

	mu      sync.RWMutex
	records []*entities.SourceRecord
}

// NewRecordRepository creates a repository and loads the dataset from source.
func NewRecordRepository(ctx context.Context, source string) (*RecordRepository, error) {
	r := &RecordRepository{source: source}
	if err := r.Reload(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// NewRecordRepositoryFromRecords creates a repository over an already parsed dataset.
func NewRecordRepositoryFromRecords(records []*entities.SourceRecord) *RecordRepository {
	r := &RecordRepository{}
	r.swap(records)
	return r
}

// Reload fetches and parses the source again and swaps the snapshot.
// On failure the previous snapshot stays in place.
func (r *RecordRepository) Reload(ctx context.Context) error {
	data, err := readSource(ctx, r.source)
	if err != nil {
		return fmt.Errorf("read dataset %s: %w", r.source, err)
	}

	records, err := ParseJSONL(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parse dataset %s: %w", r.source, err)
	}
	if len(records) == 0 {
		return fmt.Errorf("parse dataset %s: %w", r.source, ErrEmptyDataset)
	}

	r.swap(records)
	return nil
}

func (r *RecordRepository) swap(records []*entities.SourceRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = records
}

// GetAll returns the current snapshot. The slice must not be modified.
func (r *RecordRepository) GetAll(_ context.Context) ([]*entities.SourceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.records, nil
}

// CountByLevel returns the number of records per level.
func (r *RecordRepository) CountByLevel(_ context.Context) (map[entities.Level]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[entities.Level]int, len(entities.AllLevels))
	for _, rec := range r.records {
		counts[rec.Level]++
	}
	return counts, nil
}

// ParseJSONL decodes one record per line. Blank lines and lines starting with
// "//" are skipped; any other line that fails to decode or validate aborts the load.
func ParseJSONL(rd io.Reader) ([]*entities.SourceRecord, error) {
	scanner := bufio.NewScanner(rd)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		records []*entities.SourceRecord
		seen    = make(map[int]int)
		lineNo  int
	)

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		var rec entities.SourceRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w: %v", lineNo, ErrMalformedRecord, err)
		}
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if first, ok := seen[rec.ID]; ok {
			return nil, fmt.Errorf("line %d: %w %d (first seen on line %d)", lineNo, ErrDuplicateID, rec.ID, first)
		}
		seen[rec.ID] = lineNo

		if rec.ConfusionGroups == nil {
			rec.ConfusionGroups = []string{}
		}
		records = append(records, &rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	return records, nil
}

func readSource(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return fetch(ctx, source)
	}
	return os.ReadFile(source)
}

func fetch(ctx context.Context, url string) ([]byte, error) {
	timeout := fetchTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)

	if err := fasthttp.DoTimeout(req, resp, timeout); err != nil {
		return nil, err
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode())
	}

	// The body is owned by resp and released with it.
	return append([]byte(nil), resp.Body()...), nil
}
