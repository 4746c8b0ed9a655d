package domain

// Sample sentence bounds for generated example sets.
const (
	MinSampleSentences = 3
	MaxSampleSentences = 5
)

// Meaning is a drafted definition with one optional usage example.
type Meaning struct {
	Meaning string `json:"meaning"`
	Example string `json:"example"`
}

// OutputSchema describes a JSON object the AI collaborator must return
// for structured calls.
type OutputSchema struct {
	Name        string
	Description string
	Properties  map[string]any
	Required    []string
}
