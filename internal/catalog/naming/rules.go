package naming

// DefaultRules returns the built-in standard → rule table.
func DefaultRules() map[string]Rule {
	return map[string]Rule{
		// Custom tools carry no standard.
		"": RuleNone,

		// Drills.
		"ГОСТ 886-77":   RuleTolerance,
		"ГОСТ 2092-77":  RuleTolerance,
		"ГОСТ 4010-77":  RuleTolerance,
		"ГОСТ 10902-77": RuleTolerance,
		"ГОСТ 10903-77": RuleTolerance,
		"ГОСТ 12121-77": RuleTolerance,
		"ГОСТ 12122-77": RuleTolerance,
		"ГОСТ 17274-71": RuleMaterial,
		"ГОСТ 22735-77": RuleMaterial,
		"ГОСТ 22736-77": RuleMaterial,
		"DIN 338-2003":  RulePlain,

		// Countersinks.
		"ГОСТ 12489-71": RuleTolerance,
		"ГОСТ 3231-71":  RuleTolerance,
		"ГОСТ 21584-76": RuleMaterial,
		"ГОСТ 14953-80": RulePlain,

		// Reamers.
		"ГОСТ 1672-80":  RuleTolerance,
		"ГОСТ 11174-75": RuleTolerance,
		"ГОСТ 11175-80": RuleTolerance,
		"ГОСТ 10079-71": RuleTolerance,
		"ГОСТ 11180-80": RuleMaterial,
		"ГОСТ 10081-84": RuleNone,

		// Milling cutters.
		"ГОСТ 29092-91": RulePlain,
		"ГОСТ 9304-69":  RulePlain,
		"ГОСТ 28527-90": RulePlain,
		"ГОСТ 3964-69":  RulePlain,
		"ГОСТ 17025-71": RulePlain,
		"ГОСТ 17026-71": RulePlain,
		"ГОСТ 7063-72":  RulePlain,
		"ГОСТ 8543-71":  RulePlain,
		"ГОСТ 1336-77":  RulePlain,
		"ГОСТ 9140-78":  RuleTolerance,
		"ГОСТ 2679-93":  RuleAccuracyClass,
		"ГОСТ 18372-73": RuleMaterial,
		"ГОСТ 10996-64": RuleNumber,
		"ГОСТ 9324-80":  RuleModuleAccuracyClass,
		"ГОСТ 26595-85": RuleNone,
		"ИСО 6462-83":   RulePlain,

		// Turning cutters.
		"ГОСТ 18868-73": RuleMaterial,
		"ГОСТ 18869-73": RuleMaterial,
		"ГОСТ 18877-73": RuleMaterial,
		"ГОСТ 18878-73": RuleMaterial,
		"ГОСТ 18879-73": RuleMaterial,
		"ГОСТ 18880-73": RuleMaterial,
		"ГОСТ 18882-73": RuleMaterial,
		"ОСТ 2И41-1-78": RuleNone,
	}
}
