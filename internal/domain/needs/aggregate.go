package needs

import (
	"math"

	"tna-analytics/internal/domain/survey"
)

// CompetencyAverages computes the mean rating per competency key over the
// given cohort, skipping missing cells. Keys with no observed values are
// omitted.
func CompetencyAverages(records []survey.Record, keys []string) map[string]float64 {
	out := make(map[string]float64, len(keys))
	for _, key := range keys {
		var sum float64
		var n int
		for _, rec := range records {
			v, ok := rec.Ratings[key]
			if !ok || math.IsNaN(v) {
				continue
			}
			sum += v
			n++
		}
		if n > 0 {
			out[key] = sum / float64(n)
		}
	}
	return out
}

// DomainAverages computes, per domain, the mean of its competency column
// means over the cohort. Averaging column means (rather than pooling cells)
// keeps each competency equally weighted when columns have uneven missing
// counts.
func DomainAverages(records []survey.Record, domains []survey.Domain) map[string]float64 {
	out := make(map[string]float64, len(domains))
	for _, d := range domains {
		colMeans := CompetencyAverages(records, d.Keys)
		if len(colMeans) == 0 {
			continue
		}
		var sum float64
		for _, key := range d.Keys {
			if m, ok := colMeans[key]; ok {
				sum += m
			}
		}
		out[d.ID] = sum / float64(len(colMeans))
	}
	return out
}

// RespondentDomainAverages degenerates the cohort average to a single
// respondent: the mean of that respondent's ratings within each domain.
func RespondentDomainAverages(ratings map[string]float64, domains []survey.Domain) map[string]float64 {
	rec := survey.Record{Ratings: ratings}
	return DomainAverages([]survey.Record{rec}, domains)
}

// Gap is the cohort's domain average minus the overall average for the same
// domain. Positive means the cohort's training need exceeds the population's.
func Gap(cohortAvg, overallAvg float64) float64 {
	return cohortAvg - overallAvg
}
