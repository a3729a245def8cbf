package survey

import (
	"math"
	"sort"
)

// Record is one respondent row: competency key -> rating, plus the cluster
// label assigned when the dataset was produced. Missing ratings are NaN so
// downstream imputation can tell them apart from real values.
type Record struct {
	Ratings map[string]float64
	Cluster int
}

// Dataset is the loaded survey workbook. Fingerprint identifies the exact
// file contents and keys the fitted-model cache.
type Dataset struct {
	Fingerprint string
	Columns     []string
	Schema      Schema
	Records     []Record
}

// ClusterIDs returns the distinct cluster labels present, ascending.
func (d *Dataset) ClusterIDs() []int {
	seen := make(map[int]bool)
	for _, r := range d.Records {
		seen[r.Cluster] = true
	}
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// ClusterRecords returns the cohort of records labeled with clusterID.
func (d *Dataset) ClusterRecords(clusterID int) []Record {
	var out []Record
	for _, r := range d.Records {
		if r.Cluster == clusterID {
			out = append(out, r)
		}
	}
	return out
}

// FeatureMatrix flattens the records into row-major feature values aligned
// with the schema's competency key order. Missing cells stay NaN.
func (d *Dataset) FeatureMatrix() ([]float64, int, int) {
	rows := len(d.Records)
	cols := len(d.Schema.CompetencyKeys)
	data := make([]float64, rows*cols)
	for i, rec := range d.Records {
		for j, key := range d.Schema.CompetencyKeys {
			v, ok := rec.Ratings[key]
			if !ok {
				v = math.NaN()
			}
			data[i*cols+j] = v
		}
	}
	return data, rows, cols
}

// MissingCounts reports, per column, how many records lack a value. Used by
// the admin statistics view.
func (d *Dataset) MissingCounts() map[string]int {
	counts := make(map[string]int)
	for _, key := range d.Schema.CompetencyKeys {
		for _, rec := range d.Records {
			v, ok := rec.Ratings[key]
			if !ok || math.IsNaN(v) {
				counts[key]++
			}
		}
	}
	return counts
}
