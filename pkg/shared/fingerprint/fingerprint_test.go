package fingerprint

import "testing"

func TestGenerate_Deterministic(t *testing.T) {
	a := Article("https://example.com/story", "Acme fined $5M")
	b := Article("https://example.com/story", "Acme fined $5M")
	if a != b {
		t.Errorf("same article produced different fingerprints: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("fingerprint length = %d, want 64", len(a))
	}
}

func TestGenerate_CaseAndWhitespaceInsensitive(t *testing.T) {
	a := Article("https://example.com/story", "Acme Fined $5M")
	b := Article("  HTTPS://EXAMPLE.COM/STORY ", "acme fined $5m")
	if a != b {
		t.Error("normalization should ignore case and surrounding whitespace")
	}
}

func TestGenerate_KeywordOrderIndependent(t *testing.T) {
	a := Search("Acme Corp", 2023, "brave", []string{"fine", "lawsuit", "emission"})
	b := Search("Acme Corp", 2023, "brave", []string{"emission", "fine", "lawsuit"})
	if a != b {
		t.Error("search fingerprint should not depend on keyword order")
	}
}

func TestGenerate_DistinctInputsDiffer(t *testing.T) {
	base := Search("Acme Corp", 2023, "brave", []string{"fine"})
	tests := map[string]string{
		"different company":  Search("Other Corp", 2023, "brave", []string{"fine"}),
		"different year":     Search("Acme Corp", 2022, "brave", []string{"fine"}),
		"different provider": Search("Acme Corp", 2023, "bing", []string{"fine"}),
		"different keywords": Search("Acme Corp", 2023, "brave", []string{"lawsuit"}),
	}
	for name, fp := range tests {
		if fp == base {
			t.Errorf("%s should produce a different fingerprint", name)
		}
	}
}

func TestGenerate_TypesDoNotCollide(t *testing.T) {
	article := Generate(Input{Type: TypeArticle, URL: "u", Title: "t"})
	extraction := Generate(Input{Type: TypeExtraction, URL: "u", Title: "t"})
	if article == extraction {
		t.Error("article and extraction fingerprints should not collide")
	}
}
