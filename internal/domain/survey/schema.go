package survey

import (
	"errors"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrNoCompetencyColumns  = errors.New("no competency columns found")
	ErrMissingClusterColumn = errors.New("missing cluster column")
)

// Domain groups the competency columns sharing one domain-id prefix.
type Domain struct {
	ID   string
	Name string
	Keys []string
}

// Schema is the feature schema of a dataset: the competency keys in dataset
// column order, and the same keys grouped by domain. The key order is the
// feature order used for fitting and must be reused verbatim for prediction.
type Schema struct {
	CompetencyKeys []string
	Domains        []Domain
}

// ExtractSchema scans the dataset columns for competency keys of the form
// "<domain_id>.<description>" where domain_id is one of the recognized ids.
// Column order is preserved. Datasets without a single competency column
// cannot feed clustering or prediction, so that case is an error.
func ExtractSchema(columns []string, recognizedDomainIDs []string, domainName func(string) string) (Schema, error) {
	recognized := make(map[string]bool, len(recognizedDomainIDs))
	for _, id := range recognizedDomainIDs {
		recognized[id] = true
	}

	var keys []string
	grouped := make(map[string][]string)
	for _, col := range columns {
		id, ok := domainIDOf(col)
		if !ok || !recognized[id] {
			continue
		}
		keys = append(keys, col)
		grouped[id] = append(grouped[id], col)
	}

	if len(keys) == 0 {
		return Schema{}, ErrNoCompetencyColumns
	}

	ids := make([]string, 0, len(grouped))
	for id := range grouped {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, _ := strconv.Atoi(ids[i])
		b, _ := strconv.Atoi(ids[j])
		return a < b
	})

	domains := make([]Domain, 0, len(ids))
	for _, id := range ids {
		name := "Domain " + id
		if domainName != nil {
			name = domainName(id)
		}
		domains = append(domains, Domain{ID: id, Name: name, Keys: grouped[id]})
	}

	return Schema{CompetencyKeys: keys, Domains: domains}, nil
}

// DomainOf returns the domain grouping that owns a competency key.
func (s Schema) DomainOf(key string) (Domain, bool) {
	id, ok := domainIDOf(key)
	if !ok {
		return Domain{}, false
	}
	for _, d := range s.Domains {
		if d.ID == id {
			return d, true
		}
	}
	return Domain{}, false
}

// CompetencyName strips the "<domain_id>. " prefix from a competency key,
// leaving the human-readable description.
func CompetencyName(key string) string {
	if _, rest, found := strings.Cut(key, ". "); found {
		return rest
	}
	return key
}

func domainIDOf(column string) (string, bool) {
	head, _, found := strings.Cut(column, ".")
	if !found {
		return "", false
	}
	head = strings.TrimSpace(head)
	if head == "" {
		return "", false
	}
	n, err := strconv.Atoi(head)
	if err != nil || n <= 0 {
		return "", false
	}
	return head, true
}
