package credential

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSigningKey = "test-signing-key-for-signer-tests"

func TestNewSigner_Defaults(t *testing.T) {
	s, err := NewSigner(SignerConfig{Key: testSigningKey})
	if err != nil {
		t.Fatalf("new signer failed: %v", err)
	}
	if s.config.TTL != 5*time.Minute {
		t.Errorf("expected default TTL 5m, got %v", s.config.TTL)
	}
	if s.config.Method != "HS256" {
		t.Errorf("expected default method HS256, got %q", s.config.Method)
	}
}

func TestNewSigner_MissingKey(t *testing.T) {
	if _, err := NewSigner(SignerConfig{}); !errors.Is(err, ErrMissingSigningKey) {
		t.Errorf("expected ErrMissingSigningKey, got %v", err)
	}
}

func TestNewSigner_UnsupportedMethod(t *testing.T) {
	_, err := NewSigner(SignerConfig{Key: testSigningKey, Method: "RS256"})
	if !errors.Is(err, ErrUnsupportedMethod) {
		t.Errorf("expected ErrUnsupportedMethod, got %v", err)
	}
}

func TestSigner_TokenClaims(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s, err := NewSigner(SignerConfig{
		Issuer:   "oracleops",
		Subject:  "router",
		Audience: "chainlink",
		TTL:      time.Minute,
		KeyID:    "key-1",
		Key:      testSigningKey,
		Claims:   map[string]any{"tier": "pro"},
		Now:      func() time.Time { return now },
	})
	if err != nil {
		t.Fatalf("new signer failed: %v", err)
	}

	signed, err := s.Token(context.Background())
	if err != nil {
		t.Fatalf("token failed: %v", err)
	}

	token, err := jwt.Parse(signed, func(tok *jwt.Token) (any, error) {
		if tok.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(testSigningKey), nil
	}, jwt.WithTimeFunc(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !token.Valid {
		t.Fatal("expected valid token")
	}

	claims := token.Claims.(jwt.MapClaims)
	if claims["iss"] != "oracleops" || claims["sub"] != "router" || claims["aud"] != "chainlink" {
		t.Errorf("unexpected registered claims: %v", claims)
	}
	if claims["tier"] != "pro" {
		t.Errorf("expected extra claim carried, got %v", claims["tier"])
	}
	if jti, _ := claims["jti"].(string); jti == "" {
		t.Error("expected jti claim")
	}
	if exp, _ := claims["exp"].(float64); int64(exp) != now.Add(time.Minute).Unix() {
		t.Errorf("unexpected exp %v", claims["exp"])
	}
	if token.Header["kid"] != "key-1" {
		t.Errorf("expected kid header, got %v", token.Header["kid"])
	}
}

func TestSigner_CachesUntilLeeway(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s, err := NewSigner(SignerConfig{
		Key: testSigningKey,
		TTL: time.Minute,
		Now: func() time.Time { return now },
	})
	if err != nil {
		t.Fatalf("new signer failed: %v", err)
	}

	first, err := s.Token(context.Background())
	if err != nil {
		t.Fatalf("first token failed: %v", err)
	}

	// Still fresh: same token returned.
	now = now.Add(10 * time.Second)
	second, err := s.Token(context.Background())
	if err != nil {
		t.Fatalf("second token failed: %v", err)
	}
	if second != first {
		t.Error("expected cached token before leeway")
	}

	// Inside the renewal leeway: a new token is minted.
	now = now.Add(25 * time.Second)
	third, err := s.Token(context.Background())
	if err != nil {
		t.Fatalf("third token failed: %v", err)
	}
	if third == first {
		t.Error("expected fresh token inside renewal leeway")
	}
}

func TestSigner_Apply(t *testing.T) {
	s, err := NewSigner(SignerConfig{Key: testSigningKey})
	if err != nil {
		t.Fatalf("new signer failed: %v", err)
	}

	req, _ := http.NewRequest(http.MethodGet, "https://api.example.com/", nil)
	if err := s.Apply(context.Background(), req); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if auth := req.Header.Get("Authorization"); !strings.HasPrefix(auth, "Bearer ey") {
		t.Errorf("expected bearer JWT, got %q", auth)
	}
}
