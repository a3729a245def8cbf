package needs

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		name    string
		avg     float64
		gap     float64
		want    Priority
		include bool
	}{
		{"below both thresholds", 3.0, 0.1, 0, false},
		{"excluded at exact gap threshold", 3.4, 0.3, 0, false},
		{"included just over gap threshold", 3.0, 0.31, PriorityLow, true},
		{"included at avg threshold", 3.5, 0.0, PriorityMedium, true},
		{"medium via gap", 3.2, 0.6, PriorityMedium, true},
		{"low via gap only", 3.2, 0.4, PriorityLow, true},
		{"high", 4.2, 0.0, PriorityHigh, true},
		{"urgent", 4.7, -0.2, PriorityUrgent, true},
		{"urgent boundary", 4.5, 0.0, PriorityUrgent, true},
		{"high boundary", 4.0, 0.0, PriorityHigh, true},
	}
	for _, c := range cases {
		got, include := Classify(c.avg, c.gap)
		if include != c.include {
			t.Errorf("%s: include = %v, want %v", c.name, include, c.include)
			continue
		}
		if include && got != c.want {
			t.Errorf("%s: Classify(%v, %v) = %v, want %v", c.name, c.avg, c.gap, got, c.want)
		}
	}
}

func TestPriorityOrdering(t *testing.T) {
	if !(PriorityUrgent.Weight() > PriorityHigh.Weight() &&
		PriorityHigh.Weight() > PriorityMedium.Weight() &&
		PriorityMedium.Weight() > PriorityLow.Weight()) {
		t.Fatal("priority weights must be strictly decreasing from URGENT to LOW")
	}
}

func TestPriorityString(t *testing.T) {
	cases := map[Priority]string{
		PriorityUrgent: "URGENT",
		PriorityHigh:   "HIGH",
		PriorityMedium: "MEDIUM",
		PriorityLow:    "LOW",
		Priority(0):    "UNKNOWN",
	}
	for p, want := range cases {
		if got := p.String(); got != want {
			t.Errorf("Priority(%d).String() = %q, want %q", int(p), got, want)
		}
	}
}

func TestRankOrdersByPriorityThenRating(t *testing.T) {
	recs := []Recommendation{
		{DomainID: "a", AvgRating: 3.6, Priority: PriorityMedium},
		{DomainID: "b", AvgRating: 4.9, Priority: PriorityUrgent},
		{DomainID: "c", AvgRating: 4.6, Priority: PriorityUrgent},
		{DomainID: "d", AvgRating: 4.1, Priority: PriorityHigh},
	}
	Rank(recs)

	wantOrder := []string{"b", "c", "d", "a"}
	for i, want := range wantOrder {
		if recs[i].DomainID != want {
			t.Fatalf("rank[%d] = %s, want %s (full: %+v)", i, recs[i].DomainID, want, recs)
		}
	}
}

func TestBuildRecommendationsFiltersAndRanks(t *testing.T) {
	domains := []string{"1", "2", "3"}
	cohort := map[string]float64{
		"1": 4.6, // urgent
		"2": 3.0, // excluded: low avg, small gap
		"3": 3.8, // medium
	}
	overall := map[string]float64{"1": 4.0, "2": 2.9, "3": 3.5}

	recs := BuildRecommendations(domains, cohort, overall, func(id string) string { return "D" + id })
	if len(recs) != 2 {
		t.Fatalf("len(recs) = %d, want 2: %+v", len(recs), recs)
	}
	if recs[0].DomainID != "1" || recs[0].Priority != PriorityUrgent {
		t.Errorf("recs[0] = %+v, want urgent domain 1", recs[0])
	}
	if recs[1].DomainID != "3" || recs[1].Priority != PriorityMedium {
		t.Errorf("recs[1] = %+v, want medium domain 3", recs[1])
	}
	if recs[0].DomainName != "D1" {
		t.Errorf("DomainName = %q, want D1", recs[0].DomainName)
	}
	if got := recs[0].Gap; got < 0.59 || got > 0.61 {
		t.Errorf("Gap = %v, want ~0.6", got)
	}
}

func TestBuildRecommendationsSkipsDomainsWithoutAverages(t *testing.T) {
	recs := BuildRecommendations([]string{"1"}, map[string]float64{}, map[string]float64{}, nil)
	if len(recs) != 0 {
		t.Fatalf("len(recs) = %d, want 0", len(recs))
	}
}
