package agents

import "testing"

func TestCatalogSlugsUniqueAndCategorised(t *testing.T) {
	seen := map[string]bool{}
	valid := map[string]bool{CategoryJobSeeker: true, CategoryRecruiter: true, CategoryAdmin: true}
	for _, a := range Catalog {
		if seen[a.Slug] {
			t.Fatalf("duplicate slug %s", a.Slug)
		}
		seen[a.Slug] = true
		if !valid[a.Category] {
			t.Fatalf("agent %s has unknown category %q", a.Slug, a.Category)
		}
		if len(a.Resources) == 0 {
			t.Fatalf("agent %s lists no resources", a.Slug)
		}
	}
	if _, ok := Lookup(BillingManager); !ok {
		t.Fatalf("expected billing-manager in catalog")
	}
	if _, ok := Lookup("nope"); ok {
		t.Fatalf("expected unknown slug lookup to fail")
	}
}
