package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bitfantasy/toolcat/internal/catalog/enum"
)

// AxialSizes are the sizes of a rotating tool.
type AxialSizes struct {
	DiaMM                 float64 `json:"dia_mm" validate:"gte=0"`
	LengthMM              float64 `json:"length_mm" validate:"gte=0"`
	RadiusOfCuttingVertex float64 `json:"radius_of_cutting_vertex" validate:"gte=0"`
}

// GabaritVolume is the volume of the bounding prism D×D×L.
func (s AxialSizes) GabaritVolume() float64 {
	return s.DiaMM * s.DiaMM * s.LengthMM
}

func (s AxialSizes) GabaritStr() string {
	return "Ø" + formatNumber(s.DiaMM) + "×" + formatNumber(s.LengthMM)
}

// PrismaticSizes are the sizes of a bar-shaped tool.
type PrismaticSizes struct {
	LengthMM              float64 `json:"length_mm" validate:"gte=0"`
	WidthMM               float64 `json:"width_mm" validate:"gte=0"`
	HeightMM              float64 `json:"height_mm" validate:"gte=0"`
	RadiusOfCuttingVertex float64 `json:"radius_of_cutting_vertex" validate:"gte=0"`
}

func (s PrismaticSizes) GabaritVolume() float64 {
	return s.LengthMM * s.WidthMM * s.HeightMM
}

func (s PrismaticSizes) GabaritStr() string {
	return formatNumber(s.LengthMM) + "×" + formatNumber(s.WidthMM) + "×" + formatNumber(s.HeightMM)
}

// Angles of the cutting edge, in degrees.
type Angles struct {
	MainAngle              float64 `json:"main_angle" validate:"gte=0,lte=360"`
	FrontAngle             float64 `json:"front_angle" validate:"gte=0,lte=360"`
	InclinationOfMainBlade float64 `json:"inclination_of_main_blade" validate:"gte=0,lte=360"`
}

// BladeMaterial is the grade of the cutting part.
type BladeMaterial struct {
	MatOfCuttingPart enum.Material `json:"mat_of_cutting_part" validate:"enum"`
}

// TypeOfMat is 0 for high-speed steel and 1 for hard alloy; ok is false when unspecified.
func (m BladeMaterial) TypeOfMat() (int, bool) {
	info, ok := enum.MaterialInfo(m.MatOfCuttingPart)
	return info.Type, ok
}

func (m BladeMaterial) DescriptionType() string {
	info, _ := enum.MaterialInfo(m.MatOfCuttingPart)
	return info.Description
}

// Tolerance is a tolerance field letter followed by an accuracy grade, e.g. "H8".
// The zero value means no tolerance; otherwise both parts are required.
type Tolerance struct {
	Field enum.ToleranceField `json:"field" validate:"omitempty,enum"`
	Grade string              `json:"grade" validate:"omitempty,numeric"`
}

// NewTolerance builds a tolerance from its accuracy grade digits and field letter.
func NewTolerance(grade string, field enum.ToleranceField) (Tolerance, error) {
	return ParseTolerance(string(field) + grade)
}

// ParseTolerance parses the combined form. An empty string yields the zero value.
func ParseTolerance(s string) (Tolerance, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Tolerance{}, nil
	}
	i := strings.IndexFunc(s, func(r rune) bool { return r >= '0' && r <= '9' })
	if i <= 0 {
		return Tolerance{}, fmt.Errorf("tolerance %q: expected field letters followed by grade digits", s)
	}
	letters, digits := s[:i], s[i:]
	if _, err := strconv.ParseUint(digits, 10, 8); err != nil {
		return Tolerance{}, fmt.Errorf("tolerance %q: grade %q is not a number", s, digits)
	}
	field, err := enum.ToleranceFields.FromValue(letters)
	if err != nil {
		return Tolerance{}, err
	}
	return Tolerance{Field: field, Grade: digits}, nil
}

// SetFromString replaces t with the parsed value of s; t is untouched on error.
func (t *Tolerance) SetFromString(s string) error {
	parsed, err := ParseTolerance(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Tolerance) IsZero() bool { return t.Field == "" && t.Grade == "" }

func (t Tolerance) String() string {
	if t.IsZero() {
		return ""
	}
	return string(t.Field) + t.Grade
}

func (t Tolerance) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *Tolerance) UnmarshalText(text []byte) error { return t.SetFromString(string(text)) }

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
