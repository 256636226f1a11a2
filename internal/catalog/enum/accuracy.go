package enum

// AccuracyClass is the coarse quality class of a tool. AccuracyNone means unspecified.
type AccuracyClass string

const (
	AccuracyNone AccuracyClass = ""
	AccuracyAAA  AccuracyClass = "AAA"
	AccuracyAA   AccuracyClass = "AA"
	AccuracyA    AccuracyClass = "A"
	AccuracyB    AccuracyClass = "B"
	AccuracyC    AccuracyClass = "C"
	AccuracyD    AccuracyClass = "D"
)

var AccuracyClasses = NewSet("accuracy class",
	Item[AccuracyClass]{"None", AccuracyNone},
	Item[AccuracyClass]{"AAA", AccuracyAAA},
	Item[AccuracyClass]{"AA", AccuracyAA},
	Item[AccuracyClass]{"A", AccuracyA},
	Item[AccuracyClass]{"B", AccuracyB},
	Item[AccuracyClass]{"C", AccuracyC},
	Item[AccuracyClass]{"D", AccuracyD},
).withNormalizer(func(s string) string { return foldLookalikes(s, cyrillicToLatin) })

var cyrillicToLatin = map[rune]rune{
	'А': 'A', 'а': 'A',
	'В': 'B', 'в': 'B',
	'С': 'C', 'с': 'C',
	'Д': 'D', 'д': 'D',
	'a': 'A', 'b': 'B', 'c': 'C', 'd': 'D',
}

func (c AccuracyClass) String() string { return string(c) }
func (c AccuracyClass) Valid() bool    { return AccuracyClasses.Has(c) }

func (c *AccuracyClass) UnmarshalText(text []byte) error {
	return parseInto(AccuracyClasses, c, text)
}

// ToleranceField is the fundamental-deviation letter of a tolerance ("H" in "H8").
type ToleranceField string

var ToleranceFields = NewSet("tolerance field",
	Item[ToleranceField]{"d", "d"}, Item[ToleranceField]{"D", "D"},
	Item[ToleranceField]{"e", "e"}, Item[ToleranceField]{"E", "E"},
	Item[ToleranceField]{"f", "f"}, Item[ToleranceField]{"F", "F"},
	Item[ToleranceField]{"g", "g"}, Item[ToleranceField]{"G", "G"},
	Item[ToleranceField]{"h", "h"}, Item[ToleranceField]{"H", "H"},
	Item[ToleranceField]{"js", "js"}, Item[ToleranceField]{"JS", "JS"},
	Item[ToleranceField]{"k", "k"}, Item[ToleranceField]{"K", "K"},
	Item[ToleranceField]{"m", "m"}, Item[ToleranceField]{"M", "M"},
	Item[ToleranceField]{"n", "n"}, Item[ToleranceField]{"N", "N"},
	Item[ToleranceField]{"p", "p"}, Item[ToleranceField]{"P", "P"},
	Item[ToleranceField]{"u", "u"}, Item[ToleranceField]{"U", "U"},
	Item[ToleranceField]{"x", "x"}, Item[ToleranceField]{"X", "X"},
	Item[ToleranceField]{"z", "z"}, Item[ToleranceField]{"Z", "Z"},
)

func (f ToleranceField) String() string { return string(f) }
func (f ToleranceField) Valid() bool    { return ToleranceFields.Has(f) }

func (f *ToleranceField) UnmarshalText(text []byte) error {
	return parseInto(ToleranceFields, f, text)
}
