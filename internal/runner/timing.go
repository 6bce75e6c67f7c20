package runner

import (
	"encoding/json"
	"os"
	"sync"
	"time"
)

type timingEvent struct {
	Phase      string  `json:"phase"`
	Kind       string  `json:"kind"`
	File       string  `json:"file,omitempty"`
	Status     string  `json:"status,omitempty"`
	StartMS    float64 `json:"start_ms"`
	DurationMS float64 `json:"duration_ms"`
}

// timingRecorder appends JSON lines to a file. A recorder without a path
// is a no-op.
type timingRecorder struct {
	start time.Time
	mu    sync.Mutex
	file  *os.File
	enc   *json.Encoder
	err   error
}

func newTimingRecorder(start time.Time, path string) *timingRecorder {
	tr := &timingRecorder{start: start}
	if path == "" {
		return tr
	}
	f, err := os.Create(path)
	if err != nil {
		tr.err = err
		return tr
	}
	tr.file = f
	tr.enc = json.NewEncoder(f)
	return tr
}

func (tr *timingRecorder) Err() error {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.err
}

// Close closes the file and returns the first error the recorder hit.
func (tr *timingRecorder) Close() error {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if tr.file != nil {
		if err := tr.file.Close(); err != nil && tr.err == nil {
			tr.err = err
		}
		tr.file = nil
		tr.enc = nil
	}
	return tr.err
}

func (tr *timingRecorder) record(phase, kind, file, status string, start time.Time, duration time.Duration) {
	event := timingEvent{
		Phase:      phase,
		Kind:       kind,
		File:       file,
		Status:     status,
		StartMS:    durationToMS(start.Sub(tr.start)),
		DurationMS: durationToMS(duration),
	}
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if tr.enc == nil {
		return
	}
	if err := tr.enc.Encode(event); err != nil && tr.err == nil {
		tr.err = err
	}
}

func (tr *timingRecorder) RecordStage(phase string, start time.Time, duration time.Duration, status string) {
	tr.record(phase, "stage", "", status, start, duration)
}

func (tr *timingRecorder) RecordFile(phase, file, status string, start time.Time, duration time.Duration) {
	tr.record(phase, "file", file, status, start, duration)
}

func durationToMS(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1_000_000.0
}
