package secret

import (
	"errors"
	"strings"
	"testing"
)

func TestExpandEnvStrict_Expands(t *testing.T) {
	t.Setenv("ORACLE_ENDPOINT", "https://api.example.com")

	got, err := ExpandEnvStrict("${ORACLE_ENDPOINT}/v1/query")
	if err != nil {
		t.Fatalf("expand failed: %v", err)
	}
	if got != "https://api.example.com/v1/query" {
		t.Errorf("unexpected expansion: %q", got)
	}
}

func TestExpandEnvStrict_MissingVariable(t *testing.T) {
	_, err := ExpandEnvStrict("${ORACLE_DEFINITELY_UNSET_VAR}")
	if !errors.Is(err, ErrMissingEnv) {
		t.Errorf("expected ErrMissingEnv, got %v", err)
	}
	if err == nil || !strings.Contains(err.Error(), "ORACLE_DEFINITELY_UNSET_VAR") {
		t.Errorf("expected missing-variable error naming the var, got %v", err)
	}
}

func TestExpandEnvStrict_DollarEscape(t *testing.T) {
	got, err := ExpandEnvStrict("cost is $$5")
	if err != nil {
		t.Fatalf("expand failed: %v", err)
	}
	if got != "cost is $5" {
		t.Errorf("expected literal dollar, got %q", got)
	}
}
