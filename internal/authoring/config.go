package authoring

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every draft; the first failure stops
	// the pipeline.
	Validators []Validator

	// MaxAttempts is how many drafts are requested before giving up when
	// validators reject them with a retryable error. Values below 1 mean 1.
	MaxAttempts int

	MaxTokens   int
	Temperature float64

	// MaxAvoid caps how many avoided questions are listed in the prompt.
	MaxAvoid int
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&GiveawayValidator{},
			&NormalizeValidator{},
		},
		MaxAttempts: 3,
		MaxTokens:   2048,
		Temperature: 0.7,
		MaxAvoid:    20,
	}
}
