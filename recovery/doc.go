// Package recovery coerces semi-structured or LLM-produced text into
// schema-validated structured values.
//
// Recovery runs an ordered chain of pure parse strategies (direct
// parse, code-fence stripping, balanced-literal extraction, best-effort
// repair, key/value heuristics); the first strategy to yield a value
// wins. The value then passes schema validation (types, enums, numeric
// ranges, string formats) and receives a confidence grade reflecting
// how much coercion was required.
//
// Validation failures are terminal: callers must not retry them, since
// replaying the same text through the same chain cannot succeed.
package recovery
