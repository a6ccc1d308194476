// Package recorder journals screener history for later inspection. The
// monitoring loop only ever writes; nothing is read back at runtime, so no
// alert state survives a restart.
package recorder

import "RSIScreener/internal/model"

// Recorder persists per-cycle results and alert batches.
type Recorder interface {
	RecordCycle(rows []model.CheckRow) error
	RecordAlert(message string) error
	Close() error
}
