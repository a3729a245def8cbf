package needs

import "sort"

// Priority is the ordinal training-need classification of a domain.
type Priority int

const (
	PriorityLow Priority = iota + 1
	PriorityMedium
	PriorityHigh
	PriorityUrgent
)

func (p Priority) String() string {
	switch p {
	case PriorityUrgent:
		return "URGENT"
	case PriorityHigh:
		return "HIGH"
	case PriorityMedium:
		return "MEDIUM"
	case PriorityLow:
		return "LOW"
	default:
		return "UNKNOWN"
	}
}

// Weight orders priorities for ranking: URGENT=4 > HIGH=3 > MEDIUM=2 > LOW=1.
func (p Priority) Weight() int {
	return int(p)
}

// Classify maps a domain's average rating and gap to a priority level. The
// second return is false when the domain does not qualify for a
// recommendation at all (gap <= 0.3 and avg < 3.5).
func Classify(avgRating, gap float64) (Priority, bool) {
	if !(gap > 0.3 || avgRating >= 3.5) {
		return 0, false
	}
	switch {
	case avgRating >= 4.5:
		return PriorityUrgent, true
	case avgRating >= 4.0:
		return PriorityHigh, true
	case avgRating >= 3.5 || gap > 0.5:
		return PriorityMedium, true
	default:
		return PriorityLow, true
	}
}

// Recommendation is one prioritized training need. Derived per request,
// never persisted.
type Recommendation struct {
	DomainID   string
	DomainName string
	AvgRating  float64
	Gap        float64
	Priority   Priority
}

// BuildRecommendations classifies every domain present in cohortAvgs against
// overallAvgs and returns the qualifying ones ranked by Rank.
func BuildRecommendations(domains []string, cohortAvgs, overallAvgs map[string]float64, domainName func(string) string) []Recommendation {
	recs := make([]Recommendation, 0, len(domains))
	for _, id := range domains {
		avg, ok := cohortAvgs[id]
		if !ok {
			continue
		}
		gap := Gap(avg, overallAvgs[id])
		priority, include := Classify(avg, gap)
		if !include {
			continue
		}
		name := "Domain " + id
		if domainName != nil {
			name = domainName(id)
		}
		recs = append(recs, Recommendation{
			DomainID:   id,
			DomainName: name,
			AvgRating:  avg,
			Gap:        gap,
			Priority:   priority,
		})
	}
	Rank(recs)
	return recs
}

// Rank sorts recommendations descending by (priority weight, average rating)
// so higher-priority, higher-magnitude needs surface first. Stable so equal
// entries keep domain order.
func Rank(recs []Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Priority.Weight() != recs[j].Priority.Weight() {
			return recs[i].Priority.Weight() > recs[j].Priority.Weight()
		}
		return recs[i].AvgRating > recs[j].AvgRating
	})
}
