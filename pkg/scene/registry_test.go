package scene

import (
	"strings"
	"testing"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"spheregrid", "Spheregrid"},
		{"hollow-glass", "Hollow Glass"},
		{"book_cover", "Book Cover"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	expected := []string{"default", "random", "spheregrid"}
	if len(names) != len(expected) {
		t.Fatalf("Names() = %v, want %v", names, expected)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], expected[i])
		}
	}
}

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := Lookup(name, 7)
			if err != nil {
				t.Fatalf("Lookup(%q) failed: %v", name, err)
			}
			if s.Name != name {
				t.Errorf("scene name = %q, want %q", s.Name, name)
			}
			if err := s.Validate(); err != nil {
				t.Errorf("built-in scene %q does not validate: %v", name, err)
			}
		})
	}
}

func TestLookupNormalizesName(t *testing.T) {
	s, err := Lookup("  Random ", 1)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if s.Name != "random" {
		t.Errorf("scene name = %q, want random", s.Name)
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("cornell", 0)
	if err == nil {
		t.Fatal("expected error for unknown scene")
	}
	if !strings.Contains(err.Error(), "default") {
		t.Errorf("error should list available scenes, got %q", err.Error())
	}
}

func TestListScenes(t *testing.T) {
	scenes := ListScenes()
	if len(scenes) != len(Names()) {
		t.Fatalf("ListScenes() returned %d scenes, want %d", len(scenes), len(Names()))
	}
	for _, info := range scenes {
		if info.DisplayName != titleCase(info.Name) {
			t.Errorf("%s: display name %q", info.Name, info.DisplayName)
		}
		if info.Description == "" {
			t.Errorf("%s: missing description", info.Name)
		}
		if info.Seeded != (info.Name == "random") {
			t.Errorf("%s: Seeded = %v", info.Name, info.Seeded)
		}
	}
}
