package models

import (
	"testing"
	"time"
)

func TestFileStatusValid(t *testing.T) {
	for _, s := range []FileStatus{StatusActive, StatusPending, StatusArchived} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	for _, s := range []FileStatus{"", "deleted", "Active", "trash"} {
		if s.Valid() {
			t.Errorf("%q should be invalid", s)
		}
	}
}

func TestDocTypeValid(t *testing.T) {
	for _, d := range []DocType{DocTypeWord, DocTypePDF, DocTypeSpreadsheet} {
		if !d.Valid() {
			t.Errorf("%s should be valid", d)
		}
	}
	if DocType("image").Valid() {
		t.Error("image should be invalid")
	}
}

func TestArchiveTarget(t *testing.T) {
	tests := []struct {
		current FileStatus
		want    FileStatus
	}{
		{StatusActive, StatusArchived},
		{StatusPending, StatusArchived},
		{StatusArchived, StatusActive},
	}

	for _, tt := range tests {
		if got := ArchiveTarget(tt.current); got != tt.want {
			t.Errorf("ArchiveTarget(%s) = %s, want %s", tt.current, got, tt.want)
		}
	}
}

func TestArchiveTargetRoundTrip(t *testing.T) {
	// Toggling twice from a non-archived state always lands on active,
	// regardless of the starting status.
	for _, start := range []FileStatus{StatusActive, StatusPending, StatusArchived} {
		once := ArchiveTarget(start)
		twice := ArchiveTarget(once)
		if once == StatusArchived && twice != StatusActive {
			t.Errorf("unarchive after archiving %s landed on %s, want %s", start, twice, StatusActive)
		}
	}
}

func TestTrashStateConsistent(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name      string
		isDeleted bool
		deletedAt *time.Time
		want      bool
	}{
		{"live document", false, nil, true},
		{"trashed document", true, &now, true},
		{"deleted without timestamp", true, nil, false},
		{"timestamp without flag", false, &now, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Document{IsDeleted: tt.isDeleted, DeletedAt: tt.deletedAt}
			if got := doc.TrashStateConsistent(); got != tt.want {
				t.Errorf("TrashStateConsistent() = %v, want %v", got, tt.want)
			}
		})
	}
}
