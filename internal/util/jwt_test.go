package util

import (
	"testing"
	"time"

	"lingua_school_backend/internal/model"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{Name: "teacher", Email: "teacher@example.com", Role: model.Teacher}
	user.ID = 42

	token, err := GenerateJWT(user, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 || claims.Role != model.Teacher || claims.Email != "teacher@example.com" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	user := &model.User{Email: "x@example.com", Role: model.Student}
	user.ID = 1

	token, err := GenerateJWT(user, "right-secret", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseJWT(token, "wrong-secret"); err == nil {
		t.Fatalf("token signed with another secret must not parse")
	}
}

func TestJWTRejectsExpired(t *testing.T) {
	user := &model.User{Email: "x@example.com", Role: model.Student}
	user.ID = 1

	token, err := GenerateJWT(user, "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseJWT(token, "test-secret"); err == nil {
		t.Fatalf("expired token must not parse")
	}
}
