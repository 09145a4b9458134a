package utils

import (
	"testing"
	"time"

	"github.com/MKhiriev/go-identity/models"
)

func TestGenerateJWTToken_Success(t *testing.T) {
	issuer := "test-issuer"
	duration := time.Hour
	key := "secret-key"

	claims := models.Claims{Kind: models.KindUser, Email: "john@example.com"}
	claims.Subject = "u-123"

	token, err := GenerateJWTToken(issuer, claims, duration, key)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token.SignedString == "" {
		t.Error("expected non-empty SignedString")
	}
	if token.Claims.Issuer != issuer {
		t.Errorf("expected issuer %s, got %s", issuer, token.Claims.Issuer)
	}
	if token.SubjectID() != "u-123" {
		t.Errorf("expected subject 'u-123', got %s", token.SubjectID())
	}
	if token.Claims.ExpiresAt == nil || !token.Claims.ExpiresAt.After(time.Now()) {
		t.Error("expected expiry in the future")
	}
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	validClaims := models.Claims{Kind: models.KindUser}
	validClaims.Subject = "u-1"

	noSubject := models.Claims{Kind: models.KindUser}
	noKind := models.Claims{}
	noKind.Subject = "u-1"

	tests := []struct {
		name     string
		issuer   string
		claims   models.Claims
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", validClaims, time.Hour, "key"},
		{"zero duration", "iss", validClaims, 0, "key"},
		{"empty key", "iss", validClaims, time.Hour, ""},
		{"missing subject", "iss", noSubject, time.Hour, "key"},
		{"missing kind", "iss", noKind, time.Hour, "key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.claims, tt.duration, tt.key)
			if err == nil {
				t.Error("expected error for invalid parameters, got nil")
			}
		})
	}
}

func TestValidateAndParseJWTToken_Success(t *testing.T) {
	issuer := "test-issuer"
	key := "secret-key"

	role := models.RoleSuperAdmin
	claims := models.Claims{Kind: models.KindAdmin, Username: "root", Role: &role}
	claims.Subject = "a-456"

	genToken, err := GenerateJWTToken(issuer, claims, 5*time.Minute, key)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	parsedToken, err := ValidateAndParseJWTToken(genToken.SignedString, key, issuer)

	if err != nil {
		t.Fatalf("expected token to be valid, got error: %v", err)
	}
	if parsedToken.SubjectID() != "a-456" {
		t.Errorf("expected subject a-456, got %s", parsedToken.SubjectID())
	}
	if parsedToken.Claims.Kind != models.KindAdmin {
		t.Errorf("expected admin kind, got %s", parsedToken.Claims.Kind)
	}
	if parsedToken.Claims.Role == nil || *parsedToken.Claims.Role != models.RoleSuperAdmin {
		t.Error("expected the role claim to survive the round trip")
	}
}

func TestValidateAndParseJWTToken_WrongKey(t *testing.T) {
	claims := models.Claims{Kind: models.KindUser}
	claims.Subject = "u-1"

	genToken, _ := GenerateJWTToken("iss", claims, time.Minute, "right-key")

	if _, err := ValidateAndParseJWTToken(genToken.SignedString, "wrong-key", "iss"); err == nil {
		t.Fatal("expected signature verification to fail")
	}
}

func TestValidateAndParseJWTToken_WrongIssuer(t *testing.T) {
	claims := models.Claims{Kind: models.KindUser}
	claims.Subject = "u-1"

	genToken, _ := GenerateJWTToken("issuer-a", claims, time.Minute, "key")

	if _, err := ValidateAndParseJWTToken(genToken.SignedString, "key", "issuer-b"); err == nil {
		t.Fatal("expected issuer validation to fail")
	}
}

func TestValidateAndParseJWTToken_Expired(t *testing.T) {
	claims := models.Claims{Kind: models.KindUser}
	claims.Subject = "u-1"

	genToken, _ := GenerateJWTToken("iss", claims, -time.Minute, "key")

	if _, err := ValidateAndParseJWTToken(genToken.SignedString, "key", "iss"); err == nil {
		t.Fatal("expected expired token to fail validation")
	}
}

func TestValidateAndParseJWTToken_Garbage(t *testing.T) {
	if _, err := ValidateAndParseJWTToken("not.a.token", "key", "iss"); err == nil {
		t.Fatal("expected parse failure")
	}
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"lowercase scheme", "bearer abc", "abc", false},
		{"empty header", "", "", true},
		{"missing token", "Bearer ", "", true},
		{"wrong scheme", "Basic abc", "", true},
		{"no scheme", "abc.def.ghi", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
