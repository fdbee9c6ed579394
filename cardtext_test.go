package cardstack

import (
	"slices"
	"testing"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   []string
	}{
		{"plain", "Hello", []string{"Hello"}},
		{"collapses whitespace", "  Swipe \n\t cards  ", []string{"Swipe cards"}},
		{"br splits", "Swipe Left<br>for B&amp;W mode", []string{"Swipe Left", "for B&W mode"}},
		{"blocks split", "<h1>Title</h1><p>Body <b>bold</b> text</p>", []string{"Title", "Body bold text"}},
		{"empty blocks skipped", "<div></div><div>x</div><p> </p>", []string{"x"}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractText(tt.markup)
			if !slices.Equal(got, tt.want) {
				t.Errorf("ExtractText(%q) = %q, want %q", tt.markup, got, tt.want)
			}
		})
	}
}

func TestTallyLines(t *testing.T) {
	got := TallyLines(Tally{Up: 1, Down: 2, Left: 3, Right: 4})
	want := []string{"↑ 1   ↓ 2", "← 3   → 4"}
	if !slices.Equal(got, want) {
		t.Errorf("TallyLines = %q, want %q", got, want)
	}
}

func TestFeedbackLabel(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{State{}, ""},
		{State{Leaning: DirLeft}, "Leaning left"},
		{State{Committed: DirUp}, "Swiped up"},
		{State{Committed: DirDown, Leaning: DirLeft}, "Swiped down"},
	}
	for _, tt := range tests {
		if got := FeedbackLabel(tt.s); got != tt.want {
			t.Errorf("FeedbackLabel(%+v) = %q, want %q", tt.s, got, tt.want)
		}
	}
	if got := fpsText(59.94, 60); got != "FPS: 59.9\nTPS: 60.0" {
		t.Errorf("fpsText = %q", got)
	}
}
