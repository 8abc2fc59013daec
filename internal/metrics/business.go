package metrics

// IncrementProjectCreated increments project creation counter
func (m *Metrics) IncrementProjectCreated() {
	m.safeExecute("IncrementProjectCreated", func() {
		m.ProjectCreatedTotal.Inc()
	})
}

// IncrementTaskCreated increments task creation counter
func (m *Metrics) IncrementTaskCreated() {
	m.safeExecute("IncrementTaskCreated", func() {
		m.TaskCreatedTotal.Inc()
	})
}

// IncrementTaskMoved counts a move; scope is "same_column" or "cross_column"
func (m *Metrics) IncrementTaskMoved(scope string) {
	m.safeExecute("IncrementTaskMoved", func() {
		m.TaskMovedTotal.WithLabelValues(scope).Inc()
	})
}

// IncrementBackup counts a snapshot attempt for target ("local" or "s3")
func (m *Metrics) IncrementBackup(target string, err error) {
	m.safeExecute("IncrementBackup", func() {
		result := "success"
		if err != nil {
			result = "failure"
		}
		m.BackupsTotal.WithLabelValues(target, result).Inc()
	})
}

// SetProjectsTotal sets total projects gauge
func (m *Metrics) SetProjectsTotal(count int64) {
	m.safeExecute("SetProjectsTotal", func() {
		m.ProjectsTotal.Set(float64(count))
	})
}

// SetColumnsTotal sets total columns gauge
func (m *Metrics) SetColumnsTotal(count int64) {
	m.safeExecute("SetColumnsTotal", func() {
		m.ColumnsTotal.Set(float64(count))
	})
}

// SetTasksTotal sets total tasks gauge
func (m *Metrics) SetTasksTotal(count int64) {
	m.safeExecute("SetTasksTotal", func() {
		m.TasksTotal.Set(float64(count))
	})
}

// SetEventSubscribers sets the connected websocket client gauge
func (m *Metrics) SetEventSubscribers(count int) {
	m.safeExecute("SetEventSubscribers", func() {
		m.EventSubscribers.Set(float64(count))
	})
}
