// Package secret provides a small, dependency-light secret resolution
// layer for provider credentials.
//
// It supports:
//   - Strict environment expansion (see ExpandEnvStrict)
//   - Pluggable secret providers (see Provider + Registry)
//   - Resolving secret references in configuration values (see Resolver)
//
// References use the prefix "secretref:":
//   - Full value:  secretref:env:CHAINLINK_API_KEY
//   - Inline use:  Bearer secretref:env:OPENAI_API_KEY
//
// Secret values must never be logged; the observe package redacts the
// usual credential field names as a second line of defense.
package secret
