package metrics

// IncrementCandidatureCreated increments candidature creation counter
func (m *Metrics) IncrementCandidatureCreated() {
	m.safeExecute("IncrementCandidatureCreated", func() {
		m.CandidatureCreatedTotal.Inc()
	})
}

// IncrementSubmissionCreated increments accepted submission counter
func (m *Metrics) IncrementSubmissionCreated() {
	m.safeExecute("IncrementSubmissionCreated", func() {
		m.SubmissionCreatedTotal.Inc()
	})
}

// IncrementSubmissionRejected increments rejected submission counter
func (m *Metrics) IncrementSubmissionRejected() {
	m.safeExecute("IncrementSubmissionRejected", func() {
		m.SubmissionRejectedTotal.Inc()
	})
}

// RecordDraftOperation counts one builder operation (add, update, remove, reorder, drop, save, ...)
func (m *Metrics) RecordDraftOperation(operation string) {
	m.safeExecute("RecordDraftOperation", func() {
		m.DraftOperationsTotal.WithLabelValues(operation).Inc()
	})
}

// SetCandidaturesTotal sets total candidatures gauge
func (m *Metrics) SetCandidaturesTotal(count int64) {
	m.safeExecute("SetCandidaturesTotal", func() {
		m.CandidaturesTotal.Set(float64(count))
	})
}

// SetSubmissionsTotal sets total submissions gauge
func (m *Metrics) SetSubmissionsTotal(count int64) {
	m.safeExecute("SetSubmissionsTotal", func() {
		m.SubmissionsTotal.Set(float64(count))
	})
}

// FeedConnected tracks one opened submission feed
func (m *Metrics) FeedConnected() {
	m.safeExecute("FeedConnected", func() {
		m.FeedConnections.Inc()
	})
}

// FeedDisconnected tracks one closed submission feed
func (m *Metrics) FeedDisconnected() {
	m.safeExecute("FeedDisconnected", func() {
		m.FeedConnections.Dec()
	})
}
