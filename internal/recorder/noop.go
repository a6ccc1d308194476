package recorder

import "RSIScreener/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordCycle(_ []model.CheckRow) error { return nil }
func (n *NoopRecorder) RecordAlert(_ string) error           { return nil }
func (n *NoopRecorder) Close() error                         { return nil }
