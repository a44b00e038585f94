package asl

import "testing"

func TestCatalog(t *testing.T) {
	catalog := Catalog()

	if len(catalog) != 5 {
		t.Fatalf("catalog size = %d, want 5", len(catalog))
	}

	seen := make(map[Letter]bool)
	for _, info := range catalog {
		if seen[info.Letter] {
			t.Errorf("letter %s listed twice", info.Letter)
		}
		seen[info.Letter] = true

		if info.Description == "" {
			t.Errorf("letter %s has no description", info.Letter)
		}
		if info.Fingers == "" {
			t.Errorf("letter %s has no finger pattern", info.Letter)
		}
	}

	for _, l := range []Letter{LetterA, LetterB, LetterC, LetterD, LetterE} {
		if !seen[l] {
			t.Errorf("letter %s missing from catalog", l)
		}
	}
}
