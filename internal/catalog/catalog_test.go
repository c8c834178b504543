package catalog

import "testing"

func TestCatalogIntegrity(t *testing.T) {
	if len(Families) == 0 {
		t.Fatal("empty catalog")
	}
	seen := map[string]bool{}
	for i := range Families {
		f := &Families[i]
		if f.Slug == "" || f.Nom == "" {
			t.Fatalf("family %d missing slug or name", i)
		}
		if seen[f.Slug] {
			t.Fatalf("duplicate slug %q", f.Slug)
		}
		seen[f.Slug] = true
		if f.BasePrice <= 0 {
			t.Fatalf("%s: base price must be positive", f.Slug)
		}
		for axis, r := range f.Dimensions {
			if r.Min > r.Max {
				t.Fatalf("%s/%s: min > max", f.Slug, axis)
			}
			if r.Default < r.Min || r.Default > r.Max {
				t.Fatalf("%s/%s: default %v outside [%v,%v]", f.Slug, axis, r.Default, r.Min, r.Max)
			}
		}
		if len(f.Materials) == 0 || len(f.Styles) == 0 || len(f.Colors) == 0 {
			t.Fatalf("%s: materials, styles and colors are all mandatory", f.Slug)
		}
		for _, m := range f.Materials {
			if m.Multiplier <= 0 {
				t.Fatalf("%s: material %s has non-positive multiplier", f.Slug, m.ID)
			}
		}
		for _, st := range f.Styles {
			if st.Multiplier <= 0 {
				t.Fatalf("%s: style %s has non-positive multiplier", f.Slug, st.ID)
			}
		}
		for _, o := range f.Options {
			if o.Price < 0 {
				t.Fatalf("%s: option %s has negative price", f.Slug, o.ID)
			}
		}
	}
}

func TestFamilyBySlug(t *testing.T) {
	if FamilyBySlug("garde-corps") == nil {
		t.Fatal("garde-corps missing from catalog")
	}
	if FamilyBySlug("pergola") != nil {
		t.Fatal("unknown slug should resolve to nil")
	}
	if got := len(Slugs()); got != len(Families) {
		t.Fatalf("Slugs() returned %d entries for %d families", got, len(Families))
	}
}

func TestClampDimension(t *testing.T) {
	f := FamilyBySlug("garde-corps")
	if got := f.ClampDimension("width", 5); got != 100 {
		t.Fatalf("below min: %v", got)
	}
	if got := f.ClampDimension("width", 400); got != 400 {
		t.Fatalf("in range: %v", got)
	}
	if got := f.ClampDimension("width", 99999); got != 1000 {
		t.Fatalf("above max: %v", got)
	}
	// axe inconnu: valeur rendue telle quelle
	if got := f.ClampDimension("diagonal", 42); got != 42 {
		t.Fatalf("unknown axis mutated: %v", got)
	}
}
