package usecase

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
	"gonum.org/v1/gonum/mat"

	"tna-analytics/internal/domain/clustering"
	"tna-analytics/internal/domain/needs"
	"tna-analytics/internal/domain/survey"
)

// FittedModel bundles the artifacts of one clustering fit. The feature
// schema, scaler, and centroids are immutable once built and shared by every
// concurrent prediction request.
type FittedModel struct {
	Fingerprint string
	Schema      survey.Schema
	Scaler      *clustering.StandardScaler
	KMeans      *clustering.KMeans
}

// Predict classifies a respondent's clamped ratings into a cluster id. The
// vector is assembled in the schema's key order -- the order the model was
// fitted with. Competencies absent from ratings fall back to the midpoint.
func (m *FittedModel) Predict(ratings map[string]float64) (int, error) {
	vec := make([]float64, len(m.Schema.CompetencyKeys))
	for i, key := range m.Schema.CompetencyKeys {
		v, ok := ratings[key]
		if !ok {
			v = needs.MidRating
		}
		vec[i] = needs.ClampRating(v)
	}

	scaled, err := m.Scaler.TransformVector(vec)
	if err != nil {
		return 0, err
	}
	return m.KMeans.Predict(scaled)
}

// ModelRepository guarantees the extract-scale-fit pipeline runs at most once
// per dataset fingerprint within the process. Concurrent first requests are
// collapsed into a single fit; later requests read the stored artifacts under
// a read lock.
type ModelRepository struct {
	k    int
	seed int64

	mu     sync.RWMutex
	models map[string]*FittedModel
	group  singleflight.Group

	fitCount atomic.Int64
}

func NewModelRepository(k int, seed int64) *ModelRepository {
	return &ModelRepository{k: k, seed: seed, models: make(map[string]*FittedModel)}
}

// GetOrFit returns the fitted artifacts for the dataset, fitting on first
// use. A dataset is identified by its content fingerprint, so a reloaded
// file with changed contents produces a fresh fit.
func (r *ModelRepository) GetOrFit(dataset *survey.Dataset) (*FittedModel, error) {
	r.mu.RLock()
	model, ok := r.models[dataset.Fingerprint]
	r.mu.RUnlock()
	if ok {
		return model, nil
	}

	v, err, _ := r.group.Do(dataset.Fingerprint, func() (any, error) {
		r.mu.RLock()
		cached, ok := r.models[dataset.Fingerprint]
		r.mu.RUnlock()
		if ok {
			return cached, nil
		}

		fitted, err := r.fit(dataset)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.models[dataset.Fingerprint] = fitted
		r.mu.Unlock()
		return fitted, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*FittedModel), nil
}

// Invalidate drops every cached fit except the given fingerprint. Called
// after a dataset reload; passing "" drops everything.
func (r *ModelRepository) Invalidate(keepFingerprint string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for fp := range r.models {
		if fp != keepFingerprint {
			delete(r.models, fp)
		}
	}
}

// FitCount reports how many underlying fits have run.
func (r *ModelRepository) FitCount() int64 {
	return r.fitCount.Load()
}

func (r *ModelRepository) fit(dataset *survey.Dataset) (*FittedModel, error) {
	r.fitCount.Add(1)

	data, rows, cols := dataset.FeatureMatrix()
	if rows == 0 || cols == 0 {
		return nil, clustering.ErrEmptyMatrix
	}
	X := mat.NewDense(rows, cols, data)

	scaler := &clustering.StandardScaler{}
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		return nil, err
	}

	km := clustering.NewKMeans(r.k, r.seed)
	if err := km.Fit(scaled); err != nil {
		return nil, err
	}

	return &FittedModel{
		Fingerprint: dataset.Fingerprint,
		Schema:      dataset.Schema,
		Scaler:      scaler,
		KMeans:      km,
	}, nil
}
