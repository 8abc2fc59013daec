package metrics

import (
	"strings"
	"time"
)

// RecordStorageOp records a full-document read or write
func (m *Metrics) RecordStorageOp(operation, collection string, duration time.Duration, err error) {
	m.safeExecute("RecordStorageOp", func() {
		operation = normalizeOperation(operation)
		m.StorageOpDuration.WithLabelValues(operation, collection).Observe(duration.Seconds())

		if err != nil {
			m.StorageOpErrors.WithLabelValues(operation, collection).Inc()
		}
	})
}

// normalizeOperation converts operation to lowercase
func normalizeOperation(op string) string {
	return strings.ToLower(op)
}
