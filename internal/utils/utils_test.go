package utils

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("password stored in plaintext")
	}
	if !CheckPassword(hash, "secret123") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("wrong password accepted")
	}
}

func TestGenerateTokenRoundTrip(t *testing.T) {
	userID := primitive.NewObjectID()
	token, err := GenerateToken(userID, "customer", "ravi@example.com", "secret")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(token, "secret")
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != userID {
		t.Error("user id mismatch")
	}
	if claims.UserType != "customer" {
		t.Errorf("user type = %q", claims.UserType)
	}

	if _, err := ValidateToken(token, "other-secret"); err == nil {
		t.Error("token accepted with the wrong secret")
	}
}

func TestGenerateRandomNumericString(t *testing.T) {
	code := GenerateRandomNumericString(OTPLength)
	if len(code) != OTPLength {
		t.Fatalf("len = %d, want %d", len(code), OTPLength)
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			t.Fatalf("non-digit %q in OTP", c)
		}
	}
}

func TestHashResetTokenIsStable(t *testing.T) {
	a := HashResetToken("tok")
	b := HashResetToken("tok")
	if a != b {
		t.Error("same token hashed differently")
	}
	if a == "tok" || len(a) != 64 {
		t.Errorf("unexpected digest %q", a)
	}
}

func TestIsAllowedImageType(t *testing.T) {
	for _, name := range []string{"car.jpg", "CAR.JPEG", "photo.png"} {
		if !IsAllowedImageType(name) {
			t.Errorf("%s rejected", name)
		}
	}
	for _, name := range []string{"car.gif", "car.webp", "car"} {
		if IsAllowedImageType(name) {
			t.Errorf("%s accepted", name)
		}
	}
}

func TestCreatePaginationMeta(t *testing.T) {
	params := &PaginationParams{Page: 2, PageSize: 20}
	meta := CreatePaginationMeta(params, 45)

	if meta.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", meta.TotalPages)
	}
	if !meta.HasNext || !meta.HasPrevious {
		t.Error("page 2 of 3 should have both neighbours")
	}
}

func TestGetSearchFilter(t *testing.T) {
	params := &PaginationParams{Search: "swift"}
	filter := params.GetSearchFilter([]string{"title", "brand"})

	or, ok := filter["$or"].([]bson.M)
	if !ok {
		t.Fatal("missing $or clause")
	}
	if len(or) != 2 {
		t.Errorf("got %d conditions, want 2", len(or))
	}
}
