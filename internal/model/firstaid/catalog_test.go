package firstaid

import "testing"

func TestMatchMultipleGuidesInCatalogOrder(t *testing.T) {
	catalog := NewCatalog(Seed())

	matches := catalog.Match("There is severe bleeding and a burn")
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Key != "severe_bleeding" {
		t.Fatalf("expected severe_bleeding first, got %s", matches[0].Key)
	}
	if matches[1].Key != "burns" {
		t.Fatalf("expected burns second, got %s", matches[1].Key)
	}
}

func TestMatchNoGuides(t *testing.T) {
	catalog := NewCatalog(Seed())

	if matches := catalog.Match("feeling fine"); len(matches) != 0 {
		t.Fatalf("expected no matches, got %d", len(matches))
	}
}

func TestMatchIsCaseInsensitive(t *testing.T) {
	catalog := NewCatalog(Seed())

	matches := catalog.Match("CHEST PAIN and Pressure")
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Key != "heart_attack" {
		t.Fatalf("expected heart_attack, got %s", matches[0].Key)
	}
}

func TestMatchEmptyText(t *testing.T) {
	catalog := NewCatalog(Seed())

	if matches := catalog.Match("   "); matches != nil {
		t.Fatalf("expected nil matches for blank text, got %v", matches)
	}
}
