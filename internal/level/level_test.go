package level

import "testing"

func TestForScore(t *testing.T) {
	tests := []struct {
		score int
		want  Level
	}{
		{0, Sprout},
		{199, Sprout},
		{200, Novice},
		{399, Novice},
		{400, Cadet},
		{430, Cadet},
		{599, Cadet},
		{600, Adept},
		{799, Adept},
		{800, Expert},
		{999, Expert},
		{1000, Master},
		{5000, Master},
	}

	for _, tt := range tests {
		if got := ForScore(tt.score); got != tt.want {
			t.Errorf("ForScore(%d) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestLabels(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{Sprout, "数学萌新"},
		{Novice, "数学新手"},
		{Cadet, "数学小将"},
		{Adept, "数学高手"},
		{Expert, "数学专家"},
		{Master, "数学大师"},
	}

	for _, tt := range tests {
		if got := tt.level.Label(); got != tt.want {
			t.Errorf("%v.Label() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestLabelForScore(t *testing.T) {
	if got := LabelForScore(430); got != "数学小将" {
		t.Errorf("LabelForScore(430) = %q, want 数学小将", got)
	}
}
