package path

// Status is the explicit progress state of a path. It is an enum
// rather than bare cursor arithmetic so that new transitions (for
// example a back-step) stay a one-case change.
type Status string

const (
	// StatusInProgress means 0 <= step < chunk count.
	StatusInProgress Status = "in_progress"
	// StatusCompleted is terminal: step == chunk count.
	StatusCompleted Status = "completed"
)

// Progress describes where the owner stands on a path.
type Progress struct {
	CurrentStep int    `json:"current_step"`
	TotalSteps  int    `json:"total_steps"`
	Status      Status `json:"status"`
}

// ProgressFor derives the progress state from a cursor and chunk
// count. A cursor at or past the chunk count reads as completed.
func ProgressFor(step, total int) Progress {
	if step < 0 {
		step = 0
	}
	if step > total {
		step = total
	}
	status := StatusInProgress
	if step == total {
		status = StatusCompleted
	}
	return Progress{CurrentStep: step, TotalSteps: total, Status: status}
}
