package survey

import (
	"errors"
	"reflect"
	"testing"
)

var recognized = []string{"1", "2", "3"}

func TestExtractSchemaGroupsByDomain(t *testing.T) {
	columns := []string{
		"No",
		"2. Designing lesson plans",
		"1. Classroom management",
		"Cluster",
		"1. Student engagement",
		"3. Using digital tools",
	}

	schema, err := ExtractSchema(columns, recognized, nil)
	if err != nil {
		t.Fatalf("ExtractSchema: %v", err)
	}

	wantKeys := []string{
		"2. Designing lesson plans",
		"1. Classroom management",
		"1. Student engagement",
		"3. Using digital tools",
	}
	if !reflect.DeepEqual(schema.CompetencyKeys, wantKeys) {
		t.Errorf("CompetencyKeys = %v, want column order %v", schema.CompetencyKeys, wantKeys)
	}

	if len(schema.Domains) != 3 {
		t.Fatalf("len(Domains) = %d, want 3", len(schema.Domains))
	}
	for i, wantID := range []string{"1", "2", "3"} {
		if schema.Domains[i].ID != wantID {
			t.Errorf("Domains[%d].ID = %q, want %q (ascending numeric order)", i, schema.Domains[i].ID, wantID)
		}
	}
	if got := schema.Domains[0].Keys; len(got) != 2 {
		t.Errorf("domain 1 keys = %v, want 2 entries", got)
	}
}

func TestExtractSchemaIgnoresUnrecognizedPrefixes(t *testing.T) {
	columns := []string{
		"99. Out of range domain",
		"0. Zero is not a domain",
		"-1. Negative",
		"abc. Not numeric",
		"No dot at all",
		"1. Real competency",
	}

	schema, err := ExtractSchema(columns, recognized, nil)
	if err != nil {
		t.Fatalf("ExtractSchema: %v", err)
	}
	if len(schema.CompetencyKeys) != 1 || schema.CompetencyKeys[0] != "1. Real competency" {
		t.Errorf("CompetencyKeys = %v, want only the recognized column", schema.CompetencyKeys)
	}
}

func TestExtractSchemaNoCompetencyColumns(t *testing.T) {
	_, err := ExtractSchema([]string{"No", "Cluster"}, recognized, nil)
	if !errors.Is(err, ErrNoCompetencyColumns) {
		t.Fatalf("err = %v, want ErrNoCompetencyColumns", err)
	}
}

func TestExtractSchemaUsesDomainNameFunc(t *testing.T) {
	schema, err := ExtractSchema([]string{"1. Something"}, recognized, func(id string) string {
		return "Named " + id
	})
	if err != nil {
		t.Fatalf("ExtractSchema: %v", err)
	}
	if schema.Domains[0].Name != "Named 1" {
		t.Errorf("Name = %q, want %q", schema.Domains[0].Name, "Named 1")
	}
}

func TestDomainOf(t *testing.T) {
	schema, err := ExtractSchema([]string{"1. A", "2. B"}, recognized, nil)
	if err != nil {
		t.Fatalf("ExtractSchema: %v", err)
	}

	d, ok := schema.DomainOf("2. B")
	if !ok || d.ID != "2" {
		t.Errorf("DomainOf(2. B) = %v, %v; want domain 2", d, ok)
	}
	if _, ok := schema.DomainOf("Cluster"); ok {
		t.Error("DomainOf(Cluster) should not resolve")
	}
}

func TestCompetencyName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"1. Classroom management", "Classroom management"},
		{"12. Multi. part. name", "Multi. part. name"},
		{"plain", "plain"},
	}
	for _, c := range cases {
		if got := CompetencyName(c.in); got != c.want {
			t.Errorf("CompetencyName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
