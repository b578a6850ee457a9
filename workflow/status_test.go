package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_IsTerminal(t *testing.T) {
	t.Parallel()
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusPending, false},
		{StatusSearching, false},
		{StatusScreening, false},
		{StatusSynthesizing, false},
		{StatusCompleted, true},
		{StatusFailed, true},
		{StatusNeedsReview, true},
		{Status("anything_else"), false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.status), func(t *testing.T) {
			t.Parallel()
			assert.New(t).Equal(tt.want, tt.status.IsTerminal())
		})
	}
}
