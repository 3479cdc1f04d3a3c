package config

import (
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/wallsync/wallsync/monitor"
)

// ImageProperties is the per-image settings resolved for a single
// (image, display) pair. Every field is optional; nil means "unset". Nested
// is always empty on a value returned by Resolve.
type ImageProperties struct {
	Vertical   *float64
	Horizontal *float64
	Top        *int
	Bottom     *int
	Left       *int
	Right      *int
	Background *color.RGBA
	Denoise    *int

	// Nested maps reduced-aspect-ratio numerator -> denominator -> override.
	Nested map[string]map[string]*ImageProperties
}

// IsEmpty reports whether p forces no transformation: every optional field
// is unset and every nested override is itself empty (or there are none).
func (p *ImageProperties) IsEmpty() bool {
	if p == nil {
		return true
	}
	if p.Vertical != nil || p.Horizontal != nil || p.Top != nil || p.Bottom != nil ||
		p.Left != nil || p.Right != nil || p.Background != nil || p.Denoise != nil {
		return false
	}
	for _, row := range p.Nested {
		for _, np := range row {
			if !np.IsEmpty() {
				return false
			}
		}
	}
	return true
}

// Clone returns a copy of p with Nested cleared. A nil receiver clones to
// nil.
func (p *ImageProperties) Clone() *ImageProperties {
	if p == nil {
		return nil
	}
	c := *p
	c.Nested = nil
	return &c
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func floatOrZero(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// formatFloat renders v with the shortest decimal representation that
// round-trips, matching the locale-independent form Rust's f64::to_string
// produces for the percentage ranges this tool deals with.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// CropPadString is the crop/pad fingerprint fragment. Empty iff none of
// top/bottom/left/right/background is set.
func (p *ImageProperties) CropPadString() string {
	if p == nil {
		return ""
	}
	if p.Top == nil && p.Bottom == nil && p.Left == nil && p.Right == nil && p.Background == nil {
		return ""
	}

	bgcat := ""
	if p.Background != nil {
		b := p.Background
		bgcat = strconv.Itoa(int(b.R)) + strconv.Itoa(int(b.G)) + strconv.Itoa(int(b.B)) + strconv.Itoa(int(b.A))
	}

	return strings.Join([]string{
		strconv.Itoa(intOrZero(p.Top)),
		strconv.Itoa(intOrZero(p.Bottom)),
		strconv.Itoa(intOrZero(p.Left)),
		strconv.Itoa(intOrZero(p.Right)),
		bgcat,
	}, ",")
}

// FullString is the fingerprint fragment covering every pixel-affecting
// field: CropPadString plus denoise/vertical/horizontal when any of those
// are set.
func (p *ImageProperties) FullString() string {
	s := p.CropPadString()
	if p == nil || (p.Vertical == nil && p.Horizontal == nil && p.Denoise == nil) {
		return s
	}

	return s + "-" + strconv.Itoa(intOrZero(p.Denoise)) + "," +
		formatFloat(floatOrZero(p.Vertical)) + "," + formatFloat(floatOrZero(p.Horizontal))
}

// ParseColour parses "black", "white", or a 6-hex-digit RRGGBB string
// (case-insensitive), always producing an opaque colour.
func ParseColour(s string) (color.RGBA, bool) {
	s = strings.ToLower(s)
	switch s {
	case "black":
		return color.RGBA{R: 0, G: 0, B: 0, A: 0xff}, true
	case "white":
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, true
	}
	if len(s) != 6 {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8((v >> 8) & 0xff),
		B: uint8(v & 0xff),
		A: 0xff,
	}, true
}

// ColourToString renders c back into the grammar ParseColour accepts,
// preferring the "black"/"white" names when they apply.
func ColourToString(c color.RGBA) string {
	switch {
	case c.R == 0 && c.G == 0 && c.B == 0:
		return "black"
	case c.R == 0xff && c.G == 0xff && c.B == 0xff:
		return "white"
	default:
		return toHex(c.R) + toHex(c.G) + toHex(c.B)
	}
}

func toHex(b uint8) string {
	const hex = "0123456789abcdef"
	return string([]byte{hex[b>>4], hex[b&0xf]})
}

// Resolve looks up key in store and, if found, returns the per-aspect-ratio
// override for d's (width, height) when one exists, else the top-level
// entry. The returned value always has Nested cleared. A missing key
// resolves to nil.
func Resolve(store Store, key string, d monitor.Display) *ImageProperties {
	props, ok := store[key]
	if !ok {
		return nil
	}

	ax, ay := reduceAspect(d.Width, d.Height)
	if row, ok := props.Nested[ax]; ok {
		if np, ok := row[ay]; ok {
			return np.Clone()
		}
	}
	return props.Clone()
}

func reduceAspect(w, h int) (string, string) {
	a, b := w, h
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		a = 1
	}
	return strconv.Itoa(w / a), strconv.Itoa(h / a)
}

// Store is an unordered mapping from LibraryID slash path to its
// ImageProperties, loaded from the properties TOML file at the root of the
// originals directory.
type Store map[string]*ImageProperties

// PropertiesFileName is the properties file's name, relative to the
// originals directory root.
const PropertiesFileName = ".properties.toml"

// LoadStore loads the properties file at path. A missing file yields an
// empty, non-nil Store.
func LoadStore(path string) (Store, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Store{}, nil
	}

	var raw map[string]interface{}
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, errors.Wrapf(err, "decoding properties file %q", path)
	}

	store := make(Store, len(raw))
	for key, v := range raw {
		table, ok := v.(map[string]interface{})
		if !ok {
			return nil, errors.Errorf("properties entry %q is not a table", key)
		}
		props, err := decodeProperties(table)
		if err != nil {
			return nil, errors.Wrapf(err, "decoding properties for %q", key)
		}
		store[key] = props
	}
	return store, nil
}

// knownKeys are the scalar fields recognized at every level of an
// ImageProperties table. Any other key whose value is itself a table is
// treated as an aspect-ratio numerator, one level of nesting deep.
var knownKeys = map[string]bool{
	"vertical": true, "horizontal": true, "top": true, "bottom": true,
	"left": true, "right": true, "background": true, "denoise": true,
}

func decodeProperties(table map[string]interface{}) (*ImageProperties, error) {
	p := &ImageProperties{}

	if v, ok := table["vertical"].(float64); ok {
		p.Vertical = &v
	}
	if v, ok := table["horizontal"].(float64); ok {
		p.Horizontal = &v
	}
	for key, dst := range map[string]**int{"top": &p.Top, "bottom": &p.Bottom, "left": &p.Left, "right": &p.Right, "denoise": &p.Denoise} {
		if raw, ok := table[key]; ok {
			i, err := toInt(raw)
			if err != nil {
				return nil, errors.Wrapf(err, "field %q", key)
			}
			if i != 0 {
				*dst = &i
			}
		}
	}
	if raw, ok := table["background"]; ok {
		s, ok := raw.(string)
		if !ok {
			return nil, errors.New("field \"background\" must be a string")
		}
		c, ok := ParseColour(s)
		if !ok {
			return nil, errors.Errorf("unable to parse colour %q", s)
		}
		p.Background = &c
	}

	for numKey, rawNum := range table {
		if knownKeys[numKey] {
			continue
		}
		numTable, ok := rawNum.(map[string]interface{})
		if !ok {
			continue
		}
		for denKey, rawDen := range numTable {
			denTable, ok := rawDen.(map[string]interface{})
			if !ok {
				continue
			}
			nested, err := decodeProperties(denTable)
			if err != nil {
				return nil, errors.Wrapf(err, "nested override %s.%s", numKey, denKey)
			}
			if p.Nested == nil {
				p.Nested = make(map[string]map[string]*ImageProperties)
			}
			if p.Nested[numKey] == nil {
				p.Nested[numKey] = make(map[string]*ImageProperties)
			}
			p.Nested[numKey][denKey] = nested
		}
	}

	return p, nil
}

func toInt(raw interface{}) (int, error) {
	switch v := raw.(type) {
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, errors.Errorf("expected integer, got %T", raw)
	}
}

// Save writes the store back to path as TOML, after copying any
// pre-existing file to path+".bak".
func (s Store) Save(path string) error {
	if data, err := os.ReadFile(path); err == nil {
		if err := os.WriteFile(path+".bak", data, 0o644); err != nil {
			return errors.Wrapf(err, "backing up %q", path)
		}
	}

	out := make(map[string]interface{}, len(s))
	for key, props := range s {
		out[key] = encodeProperties(props)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %q", path)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(out); err != nil {
		return errors.Wrapf(err, "encoding %q", path)
	}
	return nil
}

func encodeProperties(p *ImageProperties) map[string]interface{} {
	out := map[string]interface{}{}
	if p == nil {
		return out
	}
	if p.Vertical != nil {
		out["vertical"] = *p.Vertical
	}
	if p.Horizontal != nil {
		out["horizontal"] = *p.Horizontal
	}
	if p.Top != nil {
		out["top"] = *p.Top
	}
	if p.Bottom != nil {
		out["bottom"] = *p.Bottom
	}
	if p.Left != nil {
		out["left"] = *p.Left
	}
	if p.Right != nil {
		out["right"] = *p.Right
	}
	if p.Denoise != nil {
		out["denoise"] = *p.Denoise
	}
	if p.Background != nil {
		out["background"] = ColourToString(*p.Background)
	}
	for num, row := range p.Nested {
		rowOut := map[string]interface{}{}
		for den, np := range row {
			if np.IsEmpty() {
				continue
			}
			rowOut[den] = encodeProperties(np)
		}
		if len(rowOut) > 0 {
			out[num] = rowOut
		}
	}
	return out
}
