package domain

import (
	"testing"
)

// TestRecordIDDeterministic verifies that the same input always produces the same id
func TestRecordIDDeterministic(t *testing.T) {
	testCases := []struct {
		name        string
		description string
		displayName string
	}{
		{
			name:        "basic record",
			description: "A cat sleeping on a red sofa",
			displayName: "cat.jpg",
		},
		{
			name:        "empty description",
			description: "",
			displayName: "blank.png",
		},
		{
			name:        "unicode description",
			description: "Zdjęcie przedstawia zachód słońca nad morzem",
			displayName: "zachód.jpg",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id1 := RecordID(tc.description, tc.displayName)
			id2 := RecordID(tc.description, tc.displayName)
			id3 := RecordID(tc.description, tc.displayName)

			if id1 != id2 {
				t.Errorf("ID mismatch: first=%d, second=%d", id1, id2)
			}
			if id1 != id3 {
				t.Errorf("ID mismatch: first=%d, third=%d", id1, id3)
			}
		})
	}
}

// TestRecordIDUniqueness verifies that different inputs produce different ids
func TestRecordIDUniqueness(t *testing.T) {
	id1 := RecordID("A cat sleeping on a red sofa", "cat.jpg")
	id2 := RecordID("A dog running on a beach", "cat.jpg")
	id3 := RecordID("A cat sleeping on a red sofa", "cat_1.jpg")

	if id1 == id2 {
		t.Errorf("Different descriptions should produce different ids: %d == %d", id1, id2)
	}
	if id1 == id3 {
		t.Errorf("Different display names should produce different ids: %d == %d", id1, id3)
	}

	// The separator keeps boundary-shifted inputs apart
	id4 := RecordID("ab", "c.jpg")
	id5 := RecordID("a", "bc.jpg")
	if id4 == id5 {
		t.Errorf("Shifted field boundary should produce different ids: %d == %d", id4, id5)
	}
}

func TestDisplayName(t *testing.T) {
	testCases := []struct {
		name       string
		sourcePath string
		want       string
	}{
		{
			name:       "unix path",
			sourcePath: "/data/photos/cat.jpg",
			want:       "cat.jpg",
		},
		{
			name:       "windows path",
			sourcePath: `C:\photos\dog.png`,
			want:       "dog.png",
		},
		{
			name:       "bare filename",
			sourcePath: "sunset.webp",
			want:       "sunset.webp",
		},
		{
			name:       "url style path",
			sourcePath: "http://storage.local/photos/beach.jpg",
			want:       "beach.jpg",
		},
		{
			name:       "empty path",
			sourcePath: "",
			want:       "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DisplayName(tc.sourcePath); got != tc.want {
				t.Errorf("DisplayName(%q) = %q, want %q", tc.sourcePath, got, tc.want)
			}
		})
	}
}
