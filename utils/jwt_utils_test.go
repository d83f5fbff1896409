package utils

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"lexvault/models"
)

func testUser() *models.User {
	return &models.User{
		ID:    primitive.NewObjectID(),
		Email: "associate@example.com",
		Name:  "Test Associate",
		Role:  models.RoleMember,
	}
}

func TestJWTRoundTrip(t *testing.T) {
	user := testUser()

	token, err := GenerateJWTTokenWithSecret(user, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := VerifyJWTTokenWithSecret(token, "test-secret")
	if err != nil {
		t.Fatalf("failed to verify token: %v", err)
	}

	if claims.UserID != user.ID.Hex() {
		t.Errorf("UserID = %s, want %s", claims.UserID, user.ID.Hex())
	}
	if claims.Email != user.Email {
		t.Errorf("Email = %s, want %s", claims.Email, user.Email)
	}
	if claims.Role != models.RoleMember {
		t.Errorf("Role = %s, want %s", claims.Role, models.RoleMember)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWTTokenWithSecret(testUser(), "right-secret", time.Hour)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if _, err := VerifyJWTTokenWithSecret(token, "wrong-secret"); err == nil {
		t.Error("token verified with the wrong secret")
	}
}

func TestJWTExpired(t *testing.T) {
	token, err := GenerateJWTTokenWithSecret(testUser(), "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if _, err := VerifyJWTTokenWithSecret(token, "test-secret"); err == nil {
		t.Error("expired token verified")
	}
}

func TestJWTGarbageToken(t *testing.T) {
	if _, err := VerifyJWTTokenWithSecret("not-a-token", "test-secret"); err == nil {
		t.Error("garbage token verified")
	}
}
