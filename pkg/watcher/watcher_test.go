package watcher

import (
	"testing"

	"github.com/fsnotify/fsnotify"
)

func TestIsDump(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"core.json", true},
		{"dumps/ML.JSON", true},
		{"core.hpp", false},
		{"core.json.bak", false},
	}

	for _, tt := range tests {
		if got := IsDump(tt.path); got != tt.want {
			t.Errorf("IsDump(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestRelevantFiltersEvents(t *testing.T) {
	w, err := New(0, []string{"*_draft.json"}, func([]string) {})
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}
	defer w.Close()

	tests := []struct {
		event fsnotify.Event
		want  bool
	}{
		{fsnotify.Event{Name: "core.json", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "core.json", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "core.json", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "core.hpp", Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: "ml_draft.json", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		if got := w.relevant(tt.event); got != tt.want {
			t.Errorf("relevant(%v %v) = %v, want %v", tt.event.Name, tt.event.Op, got, tt.want)
		}
	}
}
