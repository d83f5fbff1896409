package models

import "testing"

func TestPermissionLevelOrdering(t *testing.T) {
	ordered := []PermissionLevel{LevelNone, LevelDownload, LevelRead, LevelWrite, LevelAdmin}

	for i, lower := range ordered {
		for j, higher := range ordered {
			got := higher.Meets(lower)
			want := j >= i
			if got != want {
				t.Errorf("%s.Meets(%s) = %v, want %v", higher, lower, got, want)
			}
		}
	}
}

func TestPermissionLevelMeetsUnknown(t *testing.T) {
	if PermissionLevel("owner").Meets(LevelNone) {
		t.Error("unknown level should not meet any minimum")
	}
	if LevelAdmin.Meets(PermissionLevel("root")) {
		t.Error("no level should meet an unknown minimum")
	}
}

func TestPermissionLevelValid(t *testing.T) {
	for _, l := range []PermissionLevel{LevelNone, LevelDownload, LevelRead, LevelWrite, LevelAdmin} {
		if !l.Valid() {
			t.Errorf("%s should be valid", l)
		}
	}
	for _, l := range []PermissionLevel{"", "owner", "READ", "Admin"} {
		if l.Valid() {
			t.Errorf("%q should be invalid", l)
		}
	}
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("write")
	if err != nil {
		t.Fatalf("ParseLevel(write) returned error: %v", err)
	}
	if level != LevelWrite {
		t.Errorf("ParseLevel(write) = %s, want %s", level, LevelWrite)
	}

	if _, err := ParseLevel("superuser"); err == nil {
		t.Error("ParseLevel(superuser) should fail")
	}
	if _, err := ParseLevel(""); err == nil {
		t.Error("ParseLevel of empty string should fail")
	}
}
