package repository

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"

	"tna-analytics/internal/config"
	"tna-analytics/internal/domain/survey"
)

const clusterColumn = "Cluster"

var (
	ErrDatasetNotFound = errors.New("dataset file not found")
	ErrEmptyDataset    = errors.New("dataset is empty")
)

// DatasetRepository loads the precomputed clustering-results workbook and
// keeps the parsed dataset in memory. Reload re-reads the file; callers
// observe a changed fingerprint when the content changed.
type DatasetRepository struct {
	path string

	mu      sync.RWMutex
	current *survey.Dataset
	raw     [][]string
}

func NewDatasetRepository(path string) *DatasetRepository {
	return &DatasetRepository{path: path}
}

// Current returns the loaded dataset, loading it on first use.
func (r *DatasetRepository) Current() (*survey.Dataset, error) {
	r.mu.RLock()
	ds := r.current
	r.mu.RUnlock()
	if ds != nil {
		return ds, nil
	}
	return r.Reload()
}

// Reload re-reads the workbook from disk and swaps the in-memory dataset.
func (r *DatasetRepository) Reload() (*survey.Dataset, error) {
	ds, raw, err := loadWorkbook(r.path)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.current = ds
	r.raw = raw
	r.mu.Unlock()
	return ds, nil
}

// RawRows returns the workbook cells (header first) for preview and CSV
// export. Rows are padded to header width.
func (r *DatasetRepository) RawRows() [][]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.raw
}

func loadWorkbook(path string) (*survey.Dataset, [][]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, path)
		}
		return nil, nil, err
	}

	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, ErrEmptyDataset
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, nil, ErrEmptyDataset
	}

	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = strings.TrimSpace(cell)
	}

	clusterIdx := -1
	for i, col := range header {
		if col == clusterColumn {
			clusterIdx = i
			break
		}
	}
	if clusterIdx < 0 {
		return nil, nil, survey.ErrMissingClusterColumn
	}

	schema, err := survey.ExtractSchema(header, config.RecognizedDomainIDs, config.DomainName)
	if err != nil {
		return nil, nil, err
	}

	keyIdx := make(map[int]string, len(schema.CompetencyKeys))
	for i, col := range header {
		for _, key := range schema.CompetencyKeys {
			if col == key {
				keyIdx[i] = key
			}
		}
	}

	raw := make([][]string, 0, len(rows))
	raw = append(raw, header)

	records := make([]survey.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		padded := make([]string, len(header))
		for i := range padded {
			if i < len(row) {
				padded[i] = strings.TrimSpace(row[i])
			}
		}
		raw = append(raw, padded)

		cluster, err := strconv.Atoi(padded[clusterIdx])
		if err != nil {
			// Rows without a usable label cannot join any cohort.
			continue
		}

		ratings := make(map[string]float64, len(keyIdx))
		for i, key := range keyIdx {
			ratings[key] = parseCell(padded[i])
		}
		records = append(records, survey.Record{Ratings: ratings, Cluster: cluster})
	}
	if len(records) == 0 {
		return nil, nil, ErrEmptyDataset
	}

	sum := sha256.Sum256(b)
	return &survey.Dataset{
		Fingerprint: hex.EncodeToString(sum[:]),
		Columns:     header,
		Schema:      schema,
		Records:     records,
	}, raw, nil
}

func parseCell(cell string) float64 {
	cell = strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	if cell == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
