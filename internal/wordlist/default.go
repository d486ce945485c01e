package wordlist

// Default returns the built-in vocabulary used when no source is configured.
func Default() []string {
	return []string{
		"abundant", "benevolent", "candid", "diligent", "eloquent",
		"frugal", "gregarious", "humble", "inevitable", "jubilant",
		"keen", "lucid", "meticulous", "nostalgia", "obscure",
		"pragmatic", "quaint", "resilient", "serene", "tenacious",
		"ubiquitous", "vivid", "wary", "zealous", "ambiguous",
		"brevity", "coherent", "daunting", "elusive", "feasible",
	}
}
