package secret

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestResolver_FullSecretRef(t *testing.T) {
	r := NewResolver(true, NewStaticProvider(map[string]string{
		"CHAINLINK_API_KEY": "cl-key-123",
	}))

	got, err := r.ResolveValue(context.Background(), "secretref:static:CHAINLINK_API_KEY")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got != "cl-key-123" {
		t.Errorf("expected resolved key, got %q", got)
	}
}

func TestResolver_InlineSecretRef(t *testing.T) {
	r := NewResolver(true, NewStaticProvider(map[string]string{
		"OPENAI_API_KEY": "sk-abc",
	}))

	got, err := r.ResolveValue(context.Background(), "Bearer secretref:static:OPENAI_API_KEY")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got != "Bearer sk-abc" {
		t.Errorf("expected inline substitution, got %q", got)
	}
}

func TestResolver_UnknownProvider(t *testing.T) {
	r := NewResolver(true)

	_, err := r.ResolveValue(context.Background(), "secretref:vault:some/path")
	if !errors.Is(err, ErrProviderNotRegistered) {
		t.Errorf("expected ErrProviderNotRegistered, got %v", err)
	}
	if err == nil || !strings.Contains(err.Error(), "vault") {
		t.Errorf("expected error to name the backend, got %v", err)
	}
}

func TestResolver_PlainValuePassthrough(t *testing.T) {
	r := NewResolver(true)

	got, err := r.ResolveValue(context.Background(), "https://api.example.com")
	if err != nil || got != "https://api.example.com" {
		t.Errorf("expected passthrough, got %q err=%v", got, err)
	}
}

func TestResolver_EnvProvider(t *testing.T) {
	t.Setenv("ORACLE_TEST_KEY", "from-env")
	r := NewResolver(true, NewEnvProvider(""))

	got, err := r.ResolveValue(context.Background(), "secretref:env:ORACLE_TEST_KEY")
	if err != nil || got != "from-env" {
		t.Errorf("expected env value, got %q err=%v", got, err)
	}

	if _, err := r.ResolveValue(context.Background(), "secretref:env:ORACLE_TEST_MISSING"); err == nil {
		t.Error("expected error for unset variable")
	}
}

func TestResolver_ResolveMap(t *testing.T) {
	r := NewResolver(true, NewStaticProvider(map[string]string{"KEY": "v"}))

	out, err := r.ResolveMap(context.Background(), map[string]string{
		"api_key": "secretref:static:KEY",
		"url":     "https://example.com",
	})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if out["api_key"] != "v" || out["url"] != "https://example.com" {
		t.Errorf("unexpected map: %v", out)
	}
}

func TestResolver_StrictEmptyValue(t *testing.T) {
	r := NewResolver(true, NewStaticProvider(map[string]string{"EMPTY": ""}))

	if _, err := r.ResolveValue(context.Background(), "secretref:static:EMPTY"); !errors.Is(err, ErrEmptySecret) {
		t.Errorf("expected ErrEmptySecret, got %v", err)
	}
}

func TestParseSecretRef(t *testing.T) {
	cases := []struct {
		in       string
		provider string
		ref      string
		ok       bool
	}{
		{"secretref:env:API_KEY", "env", "API_KEY", true},
		{"secretref:static:a/b:c", "static", "a/b:c", true},
		{"secretref:env:", "", "", false},
		{"secretref::ref", "", "", false},
		{"plain value", "", "", false},
	}
	for _, tc := range cases {
		provider, ref, ok := ParseSecretRef(tc.in)
		if provider != tc.provider || ref != tc.ref || ok != tc.ok {
			t.Errorf("ParseSecretRef(%q) = (%q,%q,%v), want (%q,%q,%v)",
				tc.in, provider, ref, ok, tc.provider, tc.ref, tc.ok)
		}
	}
}
