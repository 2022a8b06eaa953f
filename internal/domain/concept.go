package domain

// ConceptScore is a single (label, confidence) pair produced by the
// image classifier for an uploaded photo. Confidence is in [0,1].
type ConceptScore struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}
