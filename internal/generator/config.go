package generator

// Config drives the synthetic contact generator.
type Config struct {
	NumPersons         int
	MissingPhoneChance float64
	Seed               int64
}

// DefaultConfig returns baseline generator settings.
func DefaultConfig() Config {
	return Config{
		NumPersons:         1000,
		MissingPhoneChance: 0.2,
		Seed:               42,
	}
}
