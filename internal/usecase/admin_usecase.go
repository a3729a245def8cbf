package usecase

import (
	"context"
	"encoding/csv"
	"io"
	"math"

	"tna-analytics/internal/domain/survey"
)

// DatasetAdmin is the dataset repository surface the admin tools need:
// reading, reloading, and raw cell access for preview/export.
type DatasetAdmin interface {
	Current() (*survey.Dataset, error)
	Reload() (*survey.Dataset, error)
	RawRows() [][]string
}

// ModelInvalidator drops fitted models that no longer match the dataset.
type ModelInvalidator interface {
	Invalidate(keepFingerprint string)
}

type DatasetInfo struct {
	TotalRecords int    `json:"total_records"`
	TotalColumns int    `json:"total_columns"`
	NumClusters  int    `json:"num_clusters"`
	Fingerprint  string `json:"fingerprint"`
}

type ClusterCount struct {
	ClusterID  int     `json:"cluster_id"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type MissingColumn struct {
	Column  string `json:"column"`
	Missing int    `json:"missing"`
}

type CompetencySummary struct {
	Competency string  `json:"competency"`
	Count      int     `json:"count"`
	Mean       float64 `json:"mean"`
	Std        float64 `json:"std"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
}

type DatasetStatistics struct {
	Distribution []ClusterCount      `json:"cluster_distribution"`
	Missing      []MissingColumn     `json:"missing_values"`
	Competencies []CompetencySummary `json:"competency_summary"`
}

type ReloadResult struct {
	Fingerprint string `json:"fingerprint"`
	Changed     bool   `json:"changed"`
	Records     int    `json:"records"`
}

// AdminUsecase backs the administrative tools: dataset inspection, CSV
// export, and the reload that signals a dataset change to the model cache.
type AdminUsecase struct {
	datasets DatasetAdmin
	models   ModelInvalidator
	cache    AnalyticsCache

	// onReload is invoked after a successful reload, e.g. to broadcast a
	// refresh event to connected dashboards.
	onReload func(fingerprint string)
}

func NewAdminUsecase(datasets DatasetAdmin, models ModelInvalidator, cache AnalyticsCache, onReload func(string)) *AdminUsecase {
	return &AdminUsecase{datasets: datasets, models: models, cache: cache, onReload: onReload}
}

func (u *AdminUsecase) Info(ctx context.Context) (DatasetInfo, error) {
	ds, err := u.datasets.Current()
	if err != nil {
		return DatasetInfo{}, err
	}
	return DatasetInfo{
		TotalRecords: len(ds.Records),
		TotalColumns: len(ds.Columns),
		NumClusters:  len(ds.ClusterIDs()),
		Fingerprint:  ds.Fingerprint,
	}, nil
}

// PreviewRows returns the header plus up to limit data rows.
func (u *AdminUsecase) PreviewRows(ctx context.Context, limit int) ([][]string, error) {
	if _, err := u.datasets.Current(); err != nil {
		return nil, err
	}
	rows := u.datasets.RawRows()
	if limit <= 0 {
		limit = 10
	}
	if len(rows) > limit+1 {
		rows = rows[:limit+1]
	}
	return rows, nil
}

func (u *AdminUsecase) Statistics(ctx context.Context) (DatasetStatistics, error) {
	ds, err := u.datasets.Current()
	if err != nil {
		return DatasetStatistics{}, err
	}

	stats := DatasetStatistics{}

	total := len(ds.Records)
	for _, id := range ds.ClusterIDs() {
		n := len(ds.ClusterRecords(id))
		pct := 0.0
		if total > 0 {
			pct = math.Round(float64(n)/float64(total)*10000) / 100
		}
		stats.Distribution = append(stats.Distribution, ClusterCount{ClusterID: id, Count: n, Percentage: pct})
	}

	for _, key := range ds.Schema.CompetencyKeys {
		if n := ds.MissingCounts()[key]; n > 0 {
			stats.Missing = append(stats.Missing, MissingColumn{Column: key, Missing: n})
		}
	}

	for _, key := range ds.Schema.CompetencyKeys {
		stats.Competencies = append(stats.Competencies, summarizeCompetency(ds.Records, key))
	}
	return stats, nil
}

// ExportCSV streams the raw dataset as CSV, header first.
func (u *AdminUsecase) ExportCSV(ctx context.Context, w io.Writer) error {
	if _, err := u.datasets.Current(); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	for _, row := range u.datasets.RawRows() {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Reload re-reads the workbook, drops fitted models and cached analytics
// that belong to other dataset versions, and notifies listeners. The page
// layer calls this when the underlying file was replaced; the core never
// polls for changes.
func (u *AdminUsecase) Reload(ctx context.Context) (ReloadResult, error) {
	before := ""
	if ds, err := u.datasets.Current(); err == nil {
		before = ds.Fingerprint
	}

	ds, err := u.datasets.Reload()
	if err != nil {
		return ReloadResult{}, err
	}

	changed := ds.Fingerprint != before
	if changed {
		if u.models != nil {
			u.models.Invalidate(ds.Fingerprint)
		}
		if u.cache != nil {
			_ = u.cache.DeleteByPattern(ctx, "tna:*")
		}
		if u.onReload != nil {
			u.onReload(ds.Fingerprint)
		}
	}

	return ReloadResult{Fingerprint: ds.Fingerprint, Changed: changed, Records: len(ds.Records)}, nil
}

func summarizeCompetency(records []survey.Record, key string) CompetencySummary {
	s := CompetencySummary{Competency: key, Min: math.Inf(1), Max: math.Inf(-1)}

	var sum float64
	for _, rec := range records {
		v, ok := rec.Ratings[key]
		if !ok || math.IsNaN(v) {
			continue
		}
		s.Count++
		sum += v
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	if s.Count == 0 {
		s.Min, s.Max = 0, 0
		return s
	}
	s.Mean = sum / float64(s.Count)

	if s.Count > 1 {
		var sq float64
		for _, rec := range records {
			v, ok := rec.Ratings[key]
			if !ok || math.IsNaN(v) {
				continue
			}
			d := v - s.Mean
			sq += d * d
		}
		s.Std = math.Sqrt(sq / float64(s.Count-1))
	}
	return s
}
