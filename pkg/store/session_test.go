package store

import "testing"

func TestPhaseForTurn(t *testing.T) {
	tests := []struct {
		turn int
		want string
	}{
		{1, PhaseCheckIn},
		{3, PhaseCheckIn},
		{4, PhaseExplore},
		{9, PhaseExplore},
		{10, PhaseReflection},
		{25, PhaseReflection},
	}

	for _, tt := range tests {
		if got := PhaseForTurn(tt.turn); got != tt.want {
			t.Errorf("PhaseForTurn(%d) = %q, want %q", tt.turn, got, tt.want)
		}
	}
}
