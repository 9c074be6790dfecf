package recovery

// PipelineConfig holds configuration for the recovery pipeline.
type PipelineConfig struct {
	// Strategies is the ordered parse strategy chain. Defaults to
	// DefaultStrategies when empty.
	Strategies []Strategy
}

// Pipeline coerces semi-structured or LLM-produced text into
// schema-validated objects.
//
// Contract:
// - Concurrency: safe for concurrent use; strategies are pure functions.
// - Errors: returns *ValidationError when no strategy succeeds or the
//   schema rejects the value. This outcome is terminal and must not be
//   retried by callers.
type Pipeline struct {
	strategies []Strategy
}

// NewPipeline creates a recovery pipeline with the given configuration.
func NewPipeline(config PipelineConfig) *Pipeline {
	strategies := config.Strategies
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	return &Pipeline{strategies: strategies}
}

// Parse runs the strategy chain without schema validation and returns
// the tagged result.
func (p *Pipeline) Parse(rawText string) (ParseResult, error) {
	result := parse(rawText, p.strategies)
	if result.Outcome == OutcomeFailed {
		return result, NewValidationError("no parse strategy could recover a structured value")
	}
	return result, nil
}

// ParseAndValidate runs the strategy chain, validates the recovered
// value against the schema, and grades confidence. The returned
// ValidationResult is populated on both success and validation failure;
// it is nil only when parsing itself failed.
func (p *Pipeline) ParseAndValidate(rawText string, schema *Schema) (any, *ValidationResult, error) {
	if schema == nil {
		return nil, nil, ErrNilSchema
	}

	parsed, err := p.Parse(rawText)
	if err != nil {
		return nil, nil, err
	}

	validation := schema.Validate(parsed.Value)
	// Grade on schema issues alone so a repair is not penalized twice.
	validation.ConfidenceLevel = gradeConfidence(parsed, validation)
	validation.Warnings = append(parsed.Warnings, validation.Warnings...)

	if !validation.Valid {
		return nil, &validation, &ValidationError{Issues: validation.Errors}
	}

	return parsed.Value, &validation, nil
}

// gradeConfidence maps parse outcome and validation issues to a
// confidence level. Repairs and heuristic extraction lower confidence;
// validation errors floor it.
func gradeConfidence(parsed ParseResult, validation ValidationResult) ConfidenceLevel {
	if !validation.Valid {
		return ConfidenceVeryLow
	}

	var base ConfidenceLevel
	switch parsed.Strategy {
	case "direct", "fence_strip":
		base = ConfidenceVeryHigh
	case "literal_extract":
		base = ConfidenceHigh
	case "repair":
		base = ConfidenceMedium
	default: // key_value and custom strategies
		base = ConfidenceLow
	}

	if len(validation.Warnings) > 0 {
		base = lowerConfidence(base)
	}
	return base
}

func lowerConfidence(c ConfidenceLevel) ConfidenceLevel {
	switch c {
	case ConfidenceVeryHigh:
		return ConfidenceHigh
	case ConfidenceHigh:
		return ConfidenceMedium
	case ConfidenceMedium:
		return ConfidenceLow
	default:
		return ConfidenceVeryLow
	}
}
