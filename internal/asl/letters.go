package asl

// Letter is one recognizable classification outcome.
type Letter string

const (
	LetterA Letter = "A"
	LetterB Letter = "B"
	LetterC Letter = "C"
	LetterD Letter = "D"
	LetterE Letter = "E"

	// LetterUnknown marks geometry that fit no rule.
	LetterUnknown Letter = "Unknown"

	// LetterNone marks frames with no hand, and windows with no stable
	// reading. It always carries confidence 0.
	LetterNone Letter = "None"
)

// LetterInfo describes one recognizable letter for the catalog.
type LetterInfo struct {
	Letter      Letter `json:"letter"`
	Description string `json:"description"`
	Fingers     string `json:"fingers"`
}

// Catalog lists the recognizable letters in display order with the
// handshape each one expects.
func Catalog() []LetterInfo {
	return []LetterInfo{
		{Letter: LetterA, Description: "Fist with thumb out", Fingers: "1"},
		{Letter: LetterB, Description: "Open hand with all fingers extended", Fingers: "5"},
		{Letter: LetterC, Description: "Curved hand like letter C", Fingers: "2-4"},
		{Letter: LetterD, Description: "Index finger pointing up", Fingers: "1"},
		{Letter: LetterE, Description: "Fist with all fingers closed", Fingers: "0"},
	}
}
