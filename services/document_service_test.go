package services

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// containsBSONNull walks a decoded document looking for null values.
func containsBSONNull(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case bson.M:
		for _, item := range val {
			if containsBSONNull(item) {
				return true
			}
		}
	case primitive.A:
		for _, item := range val {
			if containsBSONNull(item) {
				return true
			}
		}
	}
	return false
}

func TestVisibleDocumentsFilterNoGrants(t *testing.T) {
	ownerID := primitive.NewObjectID()

	filter := visibleDocumentsFilter(ownerID, nil, false)

	or, ok := filter["$or"].([]bson.M)
	if !ok {
		t.Fatalf("$or missing or wrong type: %#v", filter["$or"])
	}
	if len(or) != 1 {
		t.Fatalf("$or has %d clauses for a grantless member, want just the owner clause", len(or))
	}
	if got := or[0]["owner_id"]; got != ownerID {
		t.Errorf("owner clause = %#v, want %s", got, ownerID.Hex())
	}

	// Round-trip through BSON: a grantless member's filter must never
	// carry a null $in, which the server rejects with BadValue before
	// returning any documents.
	raw, err := bson.Marshal(filter)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded bson.M
	if err := bson.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if containsBSONNull(decoded) {
		t.Errorf("filter contains BSON null: %#v", decoded)
	}
}

func TestVisibleDocumentsFilterWithGrants(t *testing.T) {
	ownerID := primitive.NewObjectID()
	granted := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}

	filter := visibleDocumentsFilter(ownerID, granted, false)

	or, ok := filter["$or"].([]bson.M)
	if !ok || len(or) != 2 {
		t.Fatalf("$or = %#v, want owner clause plus grant clause", filter["$or"])
	}

	in, ok := or[1]["_id"].(bson.M)
	if !ok {
		t.Fatalf("grant clause = %#v", or[1])
	}
	ids, ok := in["$in"].([]primitive.ObjectID)
	if !ok || len(ids) != 2 {
		t.Errorf("$in = %#v, want the two granted ids", in["$in"])
	}

	raw, err := bson.Marshal(filter)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded bson.M
	if err := bson.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if containsBSONNull(decoded) {
		t.Errorf("filter contains BSON null: %#v", decoded)
	}
}

func TestVisibleDocumentsFilterAdmin(t *testing.T) {
	filter := visibleDocumentsFilter(primitive.NilObjectID, nil, true)

	if _, ok := filter["$or"]; ok {
		t.Error("admin filter should not restrict by owner or grants")
	}
	if got := filter["is_deleted"]; got != false {
		t.Errorf("is_deleted = %#v, want false", got)
	}
}
