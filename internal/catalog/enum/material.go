package enum

// Material is the grade of the cutting part. MaterialNone means unspecified.
type Material string

const (
	MaterialNone Material = ""

	// High-speed steels.
	MaterialR18    Material = "Р18"
	MaterialR9     Material = "Р9"
	MaterialR12    Material = "Р12"
	MaterialR6M3   Material = "Р6М3"
	MaterialR6M5   Material = "Р6М5"
	MaterialR6M5K5 Material = "Р6М5К5"
	MaterialR9K5   Material = "Р9К5"

	// Hard alloys.
	MaterialVK3M   Material = "ВК3М"
	MaterialVK6    Material = "ВК6"
	MaterialVK8    Material = "ВК8"
	MaterialT5K10  Material = "Т5К10"
	MaterialT15K6  Material = "Т15К6"
	MaterialT30K4  Material = "Т30К4"
	MaterialTT7K12 Material = "ТТ7К12"
)

var Materials = NewSet("cutting part material",
	Item[Material]{"None", MaterialNone},
	Item[Material]{"R18", MaterialR18},
	Item[Material]{"R9", MaterialR9},
	Item[Material]{"R12", MaterialR12},
	Item[Material]{"R6M3", MaterialR6M3},
	Item[Material]{"R6M5", MaterialR6M5},
	Item[Material]{"R6M5K5", MaterialR6M5K5},
	Item[Material]{"R9K5", MaterialR9K5},
	Item[Material]{"VK3M", MaterialVK3M},
	Item[Material]{"VK6", MaterialVK6},
	Item[Material]{"VK8", MaterialVK8},
	Item[Material]{"T5K10", MaterialT5K10},
	Item[Material]{"T15K6", MaterialT15K6},
	Item[Material]{"T30K4", MaterialT30K4},
	Item[Material]{"TT7K12", MaterialTT7K12},
).withNormalizer(func(s string) string { return foldLookalikes(s, latinToCyrillic) })

// latinToCyrillic covers the Latin letters legacy data uses in grade names.
var latinToCyrillic = map[rune]rune{
	'P': 'Р', 'p': 'Р',
	'M': 'М', 'm': 'М',
	'K': 'К', 'k': 'К',
	'T': 'Т', 't': 'Т',
	'B': 'В', 'b': 'В',
	'V': 'В', 'v': 'В',
}

func (m Material) String() string { return string(m) }
func (m Material) Valid() bool    { return Materials.Has(m) }

func (m *Material) UnmarshalText(text []byte) error { return parseInto(Materials, m, text) }

const (
	MaterialTypeHighSpeedSteel = 0
	MaterialTypeHardAlloy      = 1
)

// MaterialDescriptor classifies a grade.
type MaterialDescriptor struct {
	Type        int
	Description string
}

var materialTypeDescriptions = map[int]string{
	MaterialTypeHighSpeedSteel: "Быстрорежущая сталь",
	MaterialTypeHardAlloy:      "Твердый сплав",
}

var materialTypes = map[Material]int{
	MaterialR18:    MaterialTypeHighSpeedSteel,
	MaterialR9:     MaterialTypeHighSpeedSteel,
	MaterialR12:    MaterialTypeHighSpeedSteel,
	MaterialR6M3:   MaterialTypeHighSpeedSteel,
	MaterialR6M5:   MaterialTypeHighSpeedSteel,
	MaterialR6M5K5: MaterialTypeHighSpeedSteel,
	MaterialR9K5:   MaterialTypeHighSpeedSteel,
	MaterialVK3M:   MaterialTypeHardAlloy,
	MaterialVK6:    MaterialTypeHardAlloy,
	MaterialVK8:    MaterialTypeHardAlloy,
	MaterialT5K10:  MaterialTypeHardAlloy,
	MaterialT15K6:  MaterialTypeHardAlloy,
	MaterialT30K4:  MaterialTypeHardAlloy,
	MaterialTT7K12: MaterialTypeHardAlloy,
}

// MaterialInfo returns the classification of m; ok is false for MaterialNone.
func MaterialInfo(m Material) (MaterialDescriptor, bool) {
	t, ok := materialTypes[m]
	if !ok {
		return MaterialDescriptor{}, false
	}
	return MaterialDescriptor{Type: t, Description: materialTypeDescriptions[t]}, true
}
