package configurator

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mbodji/metallerie-backend/internal/catalog"
	"github.com/mbodji/metallerie-backend/internal/statestore"
)

// Finish types for powder coating.
const (
	FinishMat      = "mat"
	FinishSatine   = "satine"
	FinishBrillant = "brillant"
)

const storeNamespace = "configurator"

// Dimensions in centimetres. Depth is only meaningful for families that
// declare a depth axis (escaliers).
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth,omitempty"`
}

// State is the in-progress configuration of one product. Pure state plus
// derived price; no I/O besides the explicit Persist/Restore boundary.
// Setters replace fields without validating ids against the catalog —
// resolution happens at read time (Export, CalculatePrice). Dimensions are
// the exception: the store owns the bounds invariant and clamps at the
// setter rather than trusting every caller to do it.
type State struct {
	Family          string     `json:"family"`
	StyleID         string     `json:"styleId"`
	Dimensions      Dimensions `json:"dimensions"`
	MaterialID      string     `json:"materialId"`
	ColorID         string     `json:"colorId"`
	ColorHex        string     `json:"colorHex"`
	Finish          string     `json:"finish"`
	SelectedOptions []string   `json:"selectedOptions"`

	// UI-only fields, never persisted and carrying no business meaning.
	Step     int    `json:"-"`
	Loading  bool   `json:"-"`
	ViewMode string `json:"-"`
	Camera   Camera `json:"-"`
}

type Camera struct {
	OrbitX float64
	OrbitY float64
	Zoom   float64
}

// New returns a state initialised with the family's catalog defaults.
// Unknown slugs yield an empty state on that family (the configurator page
// guards against unknown families before instantiating).
func New(family string) *State {
	s := &State{Family: family, Finish: FinishMat, SelectedOptions: []string{}}
	fc := catalog.FamilyBySlug(family)
	if fc == nil {
		return s
	}
	s.Dimensions = defaultDimensions(fc)
	if len(fc.Styles) > 0 {
		s.StyleID = fc.Styles[0].ID
	}
	if len(fc.Materials) > 0 {
		s.MaterialID = fc.Materials[0].ID
	}
	if len(fc.Colors) > 0 {
		s.ColorID = fc.Colors[0].ID
		s.ColorHex = fc.Colors[0].Hex
	}
	return s
}

func defaultDimensions(fc *catalog.FamilyConfig) Dimensions {
	d := Dimensions{}
	if r, ok := fc.Dimensions["width"]; ok {
		d.Width = r.Default
	}
	if r, ok := fc.Dimensions["height"]; ok {
		d.Height = r.Default
	}
	if r, ok := fc.Dimensions["depth"]; ok {
		d.Depth = r.Default
	}
	return d
}

func (s *State) SetFamily(family string) {
	if family == s.Family {
		return
	}
	*s = *New(family)
}

func (s *State) SetStyle(id string)    { s.StyleID = id }
func (s *State) SetMaterial(id string) { s.MaterialID = id }
func (s *State) SetFinish(f string)    { s.Finish = f }

func (s *State) SetColor(id, hex string) {
	s.ColorID = id
	s.ColorHex = hex
}

// SetDimension merges one axis value, clamped to the active family's range.
func (s *State) SetDimension(axis string, v float64) {
	if fc := catalog.FamilyBySlug(s.Family); fc != nil {
		v = fc.ClampDimension(axis, v)
	}
	switch axis {
	case "width":
		s.Dimensions.Width = v
	case "height":
		s.Dimensions.Height = v
	case "depth":
		s.Dimensions.Depth = v
	}
}

// SetDimensions merges the non-zero axes of d.
func (s *State) SetDimensions(d Dimensions) {
	if d.Width != 0 {
		s.SetDimension("width", d.Width)
	}
	if d.Height != 0 {
		s.SetDimension("height", d.Height)
	}
	if d.Depth != 0 {
		s.SetDimension("depth", d.Depth)
	}
}

// ToggleOption adds the id if absent, removes it if present. Toggling an id
// unknown to the catalog is not an error; stale ids are ignored at price
// computation time.
func (s *State) ToggleOption(id string) {
	for i, sel := range s.SelectedOptions {
		if sel == id {
			s.SelectedOptions = append(s.SelectedOptions[:i], s.SelectedOptions[i+1:]...)
			return
		}
	}
	s.SelectedOptions = append(s.SelectedOptions, id)
}

// HasOption reports membership in the selection set.
func (s *State) HasOption(id string) bool {
	for _, sel := range s.SelectedOptions {
		if sel == id {
			return true
		}
	}
	return false
}

// CalculatePrice derives the TTC price of the current configuration from the
// family's pricing grid:
//
//	base × (w/defaultW) × (h/defaultH) × materialMult × styleMult + options
//
// rounded to the nearest euro. Option ids that do not resolve in the family
// catalog contribute zero. Deterministic: same state + same grid = same price.
func (s *State) CalculatePrice(fc *catalog.FamilyConfig) float64 {
	if fc == nil {
		return 0
	}
	price := fc.BasePrice
	if r, ok := fc.Dimensions["width"]; ok && r.Default > 0 && s.Dimensions.Width > 0 {
		price *= s.Dimensions.Width / r.Default
	}
	if r, ok := fc.Dimensions["height"]; ok && r.Default > 0 && s.Dimensions.Height > 0 {
		price *= s.Dimensions.Height / r.Default
	}
	if m := fc.MaterialByID(s.MaterialID); m != nil {
		price *= m.Multiplier
	}
	if st := fc.StyleByID(s.StyleID); st != nil {
		price *= st.Multiplier
	}
	for _, id := range s.SelectedOptions {
		if opt := fc.OptionByID(id); opt != nil {
			price += opt.Price
		}
	}
	return math.Round(price)
}

// Reset restores catalog defaults; the selected family survives so the user
// stays on the same configurator page.
func (s *State) Reset() {
	family := s.Family
	*s = *New(family)
}

// Export freezes the current configuration into an immutable snapshot with
// resolved display names and the computed price. The snapshot is read-only
// context carried through the quote request flow; it is never re-derived
// except by re-running the configurator.
func (s *State) Export(fc *catalog.FamilyConfig) *ExportConfig {
	ec := &ExportConfig{
		Family:      s.Family,
		Dimensions:  s.Dimensions,
		Finish:      s.Finish,
		GeneratedAt: time.Now(),
		Reference:   "CFG-" + strings.ToUpper(uuid.NewString()[:8]),
	}
	if fc == nil {
		return ec
	}
	ec.FamilyName = fc.Nom
	ec.Price = s.CalculatePrice(fc)
	if st := fc.StyleByID(s.StyleID); st != nil {
		ec.StyleName = st.Label
	}
	if m := fc.MaterialByID(s.MaterialID); m != nil {
		ec.MaterialName = m.Label
	}
	if c := fc.ColorByID(s.ColorID); c != nil {
		ec.ColorName = c.Label + " (" + c.RAL + ")"
	}
	for _, id := range s.SelectedOptions {
		if opt := fc.OptionByID(id); opt != nil {
			ec.Options = append(ec.Options, opt.Label)
		}
	}
	return ec
}

// ExportConfig is the frozen snapshot taken when the user proceeds to request
// a quote. Display names are resolved; ids are dropped.
type ExportConfig struct {
	Family       string     `json:"family"`
	FamilyName   string     `json:"familyName"`
	StyleName    string     `json:"styleName"`
	MaterialName string     `json:"materialName"`
	ColorName    string     `json:"colorName"`
	Finish       string     `json:"finish"`
	Dimensions   Dimensions `json:"dimensions"`
	Options      []string   `json:"options"`
	Price        float64    `json:"price"`
	GeneratedAt  time.Time  `json:"generatedAt"`
	Reference    string     `json:"reference,omitempty"`
}

// Persist writes the durable subset of the state (UI fields excluded via
// struct tags) under the caller's key.
func (s *State) Persist(store statestore.Store, key string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return store.Save(storeNamespace, key, b)
}

// Restore merges a persisted snapshot into family defaults. Missing blob is
// not an error: the zero-value defaults stand.
func Restore(store statestore.Store, key string) (*State, error) {
	b, ok, err := store.Load(storeNamespace, key)
	if err != nil || !ok {
		return nil, err
	}
	var snap State
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, err
	}
	s := New(snap.Family)
	if snap.StyleID != "" {
		s.StyleID = snap.StyleID
	}
	if snap.MaterialID != "" {
		s.MaterialID = snap.MaterialID
	}
	if snap.ColorID != "" {
		s.SetColor(snap.ColorID, snap.ColorHex)
	}
	if snap.Finish != "" {
		s.Finish = snap.Finish
	}
	s.SetDimensions(snap.Dimensions)
	if snap.SelectedOptions != nil {
		s.SelectedOptions = snap.SelectedOptions
	}
	return s, nil
}

// Clear drops the persisted snapshot.
func Clear(store statestore.Store, key string) error {
	return store.Delete(storeNamespace, key)
}
