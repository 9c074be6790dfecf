package secret

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// EnvProvider resolves secrets from environment variables. The ref is
// the variable name, optionally with a configured prefix applied.
type EnvProvider struct {
	prefix string
}

// NewEnvProvider creates an environment-backed provider. prefix, when
// non-empty, is prepended to every ref before lookup.
func NewEnvProvider(prefix string) *EnvProvider {
	return &EnvProvider{prefix: prefix}
}

func (p *EnvProvider) Name() string {
	return "env"
}

func (p *EnvProvider) Resolve(_ context.Context, ref string) (string, error) {
	key := p.prefix + strings.TrimSpace(ref)
	if key == "" {
		return "", fmt.Errorf("env secret ref is empty")
	}
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", fmt.Errorf("environment variable %q is not set", key)
	}
	return value, nil
}

func (p *EnvProvider) Close() error { return nil }

// StaticProvider resolves secrets from a fixed in-memory map. Intended
// for tests and for wiring credentials already loaded elsewhere.
type StaticProvider struct {
	values map[string]string
}

// NewStaticProvider creates a provider over a copy of values.
func NewStaticProvider(values map[string]string) *StaticProvider {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &StaticProvider{values: copied}
}

func (p *StaticProvider) Name() string {
	return "static"
}

func (p *StaticProvider) Resolve(_ context.Context, ref string) (string, error) {
	value, ok := p.values[ref]
	if !ok {
		return "", fmt.Errorf("static secret %q is not defined", ref)
	}
	return value, nil
}

func (p *StaticProvider) Close() error { return nil }

var (
	_ Provider = (*EnvProvider)(nil)
	_ Provider = (*StaticProvider)(nil)
)
