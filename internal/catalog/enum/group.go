package enum

import "strings"

// Group is the tool family stored in tools.group.
type Group string

const (
	GroupTool          Group = "Инструмент"
	GroupCutter        Group = "Резец"
	GroupMillingCutter Group = "Фреза"
	GroupDrill         Group = "Сверло"
	GroupCountersink   Group = "Зенкер"
	GroupReamer        Group = "Развертка"
	GroupBroach        Group = "Протяжка"
)

var Groups = NewSet("tool group",
	Item[Group]{"Tool", GroupTool},
	Item[Group]{"Cutter", GroupCutter},
	Item[Group]{"MillingCutter", GroupMillingCutter},
	Item[Group]{"Drill", GroupDrill},
	Item[Group]{"Countersink", GroupCountersink},
	Item[Group]{"Reamer", GroupReamer},
	Item[Group]{"Broach", GroupBroach},
)

func (g Group) String() string { return string(g) }
func (g Group) Valid() bool    { return Groups.Has(g) }

func (g *Group) UnmarshalText(text []byte) error { return parseInto(Groups, g, text) }

// StandardPrefix is a normative document family.
type StandardPrefix string

const (
	PrefixGOST StandardPrefix = "ГОСТ"
	PrefixOST  StandardPrefix = "ОСТ"
	PrefixDIN  StandardPrefix = "DIN"
	PrefixISO  StandardPrefix = "ИСО"
)

var StandardPrefixes = NewSet("standard prefix",
	Item[StandardPrefix]{"GOST", PrefixGOST},
	Item[StandardPrefix]{"OST", PrefixOST},
	Item[StandardPrefix]{"DIN", PrefixDIN},
	Item[StandardPrefix]{"ISO", PrefixISO},
)

func (p StandardPrefix) String() string { return string(p) }
func (p StandardPrefix) Valid() bool    { return StandardPrefixes.Has(p) }

func (p *StandardPrefix) UnmarshalText(text []byte) error {
	return parseInto(StandardPrefixes, p, text)
}

// PrefixOf reports the normative prefix contained in a standard designation.
// ГОСТ is checked before ОСТ since the latter is its suffix.
func PrefixOf(standard string) (StandardPrefix, bool) {
	for _, p := range StandardPrefixes.Values() {
		if strings.Contains(standard, string(p)) {
			return p, true
		}
	}
	return "", false
}

// IsStandard reports whether s names a known normative document with a year suffix.
func IsStandard(s string) bool {
	_, ok := PrefixOf(s)
	return ok && strings.Contains(s, "-")
}

// SpecialMarking is the marking literal of custom (non-normative) tools.
type SpecialMarking string

const (
	SpecialMasculine SpecialMarking = "специальный"
	SpecialFeminine  SpecialMarking = "специальная"
	SpecialNeuter    SpecialMarking = "специальное"
)

var SpecialMarkings = NewSet("special marking",
	Item[SpecialMarking]{"Masculine", SpecialMasculine},
	Item[SpecialMarking]{"Feminine", SpecialFeminine},
	Item[SpecialMarking]{"Neuter", SpecialNeuter},
).withNormalizer(func(s string) string { return strings.ToLower(strings.TrimSpace(s)) })

func (m SpecialMarking) String() string { return string(m) }
func (m SpecialMarking) Valid() bool    { return SpecialMarkings.Has(m) }

func (m *SpecialMarking) UnmarshalText(text []byte) error {
	return parseInto(SpecialMarkings, m, text)
}
