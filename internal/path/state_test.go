package path

import "testing"

func TestProgressFor(t *testing.T) {
	tests := []struct {
		name       string
		step       int
		total      int
		wantStep   int
		wantStatus Status
	}{
		{name: "initial", step: 0, total: 7, wantStep: 0, wantStatus: StatusInProgress},
		{name: "mid path", step: 3, total: 7, wantStep: 3, wantStatus: StatusInProgress},
		{name: "last chunk", step: 6, total: 7, wantStep: 6, wantStatus: StatusInProgress},
		{name: "completed", step: 7, total: 7, wantStep: 7, wantStatus: StatusCompleted},
		{name: "past the end clamps", step: 9, total: 7, wantStep: 7, wantStatus: StatusCompleted},
		{name: "negative clamps", step: -1, total: 7, wantStep: 0, wantStatus: StatusInProgress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProgressFor(tt.step, tt.total)
			if got.CurrentStep != tt.wantStep {
				t.Errorf("ProgressFor() step = %d, want %d", got.CurrentStep, tt.wantStep)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("ProgressFor() status = %s, want %s", got.Status, tt.wantStatus)
			}
			if got.TotalSteps != tt.total {
				t.Errorf("ProgressFor() total = %d, want %d", got.TotalSteps, tt.total)
			}
		})
	}
}

func TestProgressFor_MonotonicWalk(t *testing.T) {
	const total = 5
	for step := 0; step <= total; step++ {
		p := ProgressFor(step, total)
		if step < total && p.Status != StatusInProgress {
			t.Errorf("step %d: status = %s, want %s", step, p.Status, StatusInProgress)
		}
		if step == total && p.Status != StatusCompleted {
			t.Errorf("step %d: status = %s, want %s", step, p.Status, StatusCompleted)
		}
	}
}
