package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"
)

// DatasetReloadedEvent tells connected dashboards that the survey dataset
// was replaced and cached views should be refetched.
type DatasetReloadedEvent struct {
	Type        string `json:"type"`
	Fingerprint string `json:"fingerprint"`
	Timestamp   string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

func NotifyDatasetReloaded(fingerprint string) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	evt := DatasetReloadedEvent{
		Type:        "dataset_reloaded",
		Fingerprint: fingerprint,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}
