package recovery

import "testing"

func BenchmarkParse_Direct(b *testing.B) {
	strategies := DefaultStrategies()
	text := `{"price": 42.5, "currency": "USD", "timestamp": 1700000000}`

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		parse(text, strategies)
	}
}

func BenchmarkParse_Repair(b *testing.B) {
	strategies := DefaultStrategies()
	text := `{price: 42.5, currency: 'USD',}`

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		parse(text, strategies)
	}
}

func BenchmarkSchema_Validate(b *testing.B) {
	schema := &Schema{
		Fields: map[string]FieldSchema{
			"price":    {Type: TypeNumber, Required: true},
			"currency": {Type: TypeString, Enum: []any{"USD", "EUR"}},
		},
	}
	value := map[string]any{"price": 42.5, "currency": "USD"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		schema.Validate(value)
	}
}
