package catalog

// Static configuration data for the product configurator. Une famille décrit
// les bornes dimensionnelles, les matériaux, les styles, les options et les
// teintes RAL proposées pour une catégorie de produits sur mesure.

type DimensionRange struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
	Step    float64 `json:"step"`
}

type Material struct {
	ID         string  `json:"id"`
	Label      string  `json:"label"`
	Multiplier float64 `json:"multiplier"`
}

type Style struct {
	ID         string  `json:"id"`
	Label      string  `json:"label"`
	Multiplier float64 `json:"multiplier"`
}

type Option struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Price float64 `json:"price"` // prix forfaitaire TTC
	// Visible3D indique si l'option a une représentation dans la scène 3D.
	Visible3D bool `json:"visible3d"`
}

type Color struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	RAL   string `json:"ral"`
	Hex   string `json:"hex"`
}

// FamilyConfig holds the whole configurator dataset for one product family.
// Dimensions are keyed by axis: "width", "height" and optionally "depth",
// expressed in centimetres.
type FamilyConfig struct {
	Slug       string                    `json:"slug"`
	Nom        string                    `json:"nom"`
	BasePrice  float64                   `json:"basePrice"` // prix TTC de la configuration par défaut
	Dimensions map[string]DimensionRange `json:"dimensions"`
	Materials  []Material                `json:"materials"`
	Styles     []Style                   `json:"styles"`
	Options    []Option                  `json:"options"`
	Colors     []Color                   `json:"colors"`
}

// FamilyBySlug resolves a family config; nil when unknown.
func FamilyBySlug(slug string) *FamilyConfig {
	for i := range Families {
		if Families[i].Slug == slug {
			return &Families[i]
		}
	}
	return nil
}

// Slugs lists the known family slugs in catalog order.
func Slugs() []string {
	out := make([]string, 0, len(Families))
	for i := range Families {
		out = append(out, Families[i].Slug)
	}
	return out
}

func (f *FamilyConfig) MaterialByID(id string) *Material {
	for i := range f.Materials {
		if f.Materials[i].ID == id {
			return &f.Materials[i]
		}
	}
	return nil
}

func (f *FamilyConfig) StyleByID(id string) *Style {
	for i := range f.Styles {
		if f.Styles[i].ID == id {
			return &f.Styles[i]
		}
	}
	return nil
}

func (f *FamilyConfig) OptionByID(id string) *Option {
	for i := range f.Options {
		if f.Options[i].ID == id {
			return &f.Options[i]
		}
	}
	return nil
}

func (f *FamilyConfig) ColorByID(id string) *Color {
	for i := range f.Colors {
		if f.Colors[i].ID == id {
			return &f.Colors[i]
		}
	}
	return nil
}

// ClampDimension bounds v to the configured range for the given axis.
// Unknown axes are returned unchanged.
func (f *FamilyConfig) ClampDimension(axis string, v float64) float64 {
	r, ok := f.Dimensions[axis]
	if !ok {
		return v
	}
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}
