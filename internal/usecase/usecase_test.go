package usecase

import (
	"context"
	"encoding/json"
	"math"
	"testing"
	"time"

	"tna-analytics/internal/domain/survey"
)

// Shared fixtures for the usecase tests.

type staticDatasets struct {
	ds  *survey.Dataset
	err error
}

func (s staticDatasets) Current() (*survey.Dataset, error) {
	return s.ds, s.err
}

type fakeCache struct {
	store map[string][]byte
	gets  int
	sets  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string][]byte)}
}

func (c *fakeCache) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	c.gets++
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *fakeCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	c.sets++
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) DeleteByPattern(ctx context.Context, pattern string) error {
	c.store = make(map[string][]byte)
	return nil
}

func testSchema(t *testing.T, columns []string) survey.Schema {
	t.Helper()
	schema, err := survey.ExtractSchema(columns, []string{"1", "2", "3"}, nil)
	if err != nil {
		t.Fatalf("ExtractSchema: %v", err)
	}
	return schema
}

func testDataset(t *testing.T, fingerprint string, columns []string, records []survey.Record) *survey.Dataset {
	t.Helper()
	return &survey.Dataset{
		Fingerprint: fingerprint,
		Columns:     columns,
		Schema:      testSchema(t, columns),
		Records:     records,
	}
}

func record(cluster int, ratings map[string]float64) survey.Record {
	return survey.Record{Cluster: cluster, Ratings: ratings}
}

func within(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}
