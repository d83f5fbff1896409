package services

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"lexvault/models"
)

func TestEffectiveLevelSystemAdmin(t *testing.T) {
	doc := &models.Document{ID: primitive.NewObjectID(), OwnerID: primitive.NewObjectID()}
	admin := models.Principal{ID: primitive.NewObjectID().Hex(), Role: models.RoleAdmin}

	if got := EffectiveLevel(admin, doc, nil); got != models.LevelAdmin {
		t.Errorf("system admin got %s, want %s", got, models.LevelAdmin)
	}

	// An explicit lower grant never demotes a system admin.
	grants := []models.PermissionGrant{{DocumentID: doc.ID, UserID: admin.ID, Level: models.LevelRead}}
	if got := EffectiveLevel(admin, doc, grants); got != models.LevelAdmin {
		t.Errorf("system admin with read grant got %s, want %s", got, models.LevelAdmin)
	}
}

func TestEffectiveLevelOwner(t *testing.T) {
	ownerID := primitive.NewObjectID()
	doc := &models.Document{ID: primitive.NewObjectID(), OwnerID: ownerID}
	owner := models.Principal{ID: ownerID.Hex(), Role: models.RoleMember}

	if got := EffectiveLevel(owner, doc, nil); got != models.LevelAdmin {
		t.Errorf("owner got %s, want %s", got, models.LevelAdmin)
	}

	// Ownership outranks any explicit grant on the same document.
	grants := []models.PermissionGrant{{DocumentID: doc.ID, UserID: owner.ID, Level: models.LevelDownload}}
	if got := EffectiveLevel(owner, doc, grants); got != models.LevelAdmin {
		t.Errorf("owner with download grant got %s, want %s", got, models.LevelAdmin)
	}
}

func TestEffectiveLevelGrant(t *testing.T) {
	doc := &models.Document{ID: primitive.NewObjectID(), OwnerID: primitive.NewObjectID()}
	member := models.Principal{ID: primitive.NewObjectID().Hex(), Role: models.RoleMember}

	for _, level := range []models.PermissionLevel{models.LevelNone, models.LevelDownload, models.LevelRead, models.LevelWrite, models.LevelAdmin} {
		grants := []models.PermissionGrant{{DocumentID: doc.ID, UserID: member.ID, Level: level}}
		if got := EffectiveLevel(member, doc, grants); got != level {
			t.Errorf("grant %s resolved to %s", level, got)
		}
	}
}

func TestEffectiveLevelNoGrant(t *testing.T) {
	doc := &models.Document{ID: primitive.NewObjectID(), OwnerID: primitive.NewObjectID()}
	member := models.Principal{ID: primitive.NewObjectID().Hex(), Role: models.RoleMember}

	if got := EffectiveLevel(member, doc, nil); got != models.LevelNone {
		t.Errorf("member without grant got %s, want %s", got, models.LevelNone)
	}

	// Someone else's grant does not apply.
	grants := []models.PermissionGrant{{DocumentID: doc.ID, UserID: primitive.NewObjectID().Hex(), Level: models.LevelWrite}}
	if got := EffectiveLevel(member, doc, grants); got != models.LevelNone {
		t.Errorf("member with only a foreign grant got %s, want %s", got, models.LevelNone)
	}
}

func TestEffectiveLevelInvalidGrantLevel(t *testing.T) {
	doc := &models.Document{ID: primitive.NewObjectID(), OwnerID: primitive.NewObjectID()}
	member := models.Principal{ID: primitive.NewObjectID().Hex(), Role: models.RoleMember}

	grants := []models.PermissionGrant{{DocumentID: doc.ID, UserID: member.ID, Level: "superuser"}}
	if got := EffectiveLevel(member, doc, grants); got != models.LevelNone {
		t.Errorf("corrupt grant level resolved to %s, want %s", got, models.LevelNone)
	}
}

func TestEffectiveLevelDeterministic(t *testing.T) {
	doc := &models.Document{ID: primitive.NewObjectID(), OwnerID: primitive.NewObjectID()}
	member := models.Principal{ID: primitive.NewObjectID().Hex(), Role: models.RoleMember}
	grants := []models.PermissionGrant{{DocumentID: doc.ID, UserID: member.ID, Level: models.LevelRead}}

	first := EffectiveLevel(member, doc, grants)
	for i := 0; i < 10; i++ {
		if got := EffectiveLevel(member, doc, grants); got != first {
			t.Fatalf("run %d resolved to %s, first run was %s", i, got, first)
		}
	}
}
