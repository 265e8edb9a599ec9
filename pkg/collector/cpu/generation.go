package cpu

import "strings"

// generationRule maps a model-name fragment to a CPU generation and
// microarchitecture. Order matters: the first match wins.
type generationRule struct {
	fragments []string
	gen       string
	uarch     string
}

var generationRules = []generationRule{
	// Intel
	{[]string{"i7-11700", "i9-11", "i5-11"}, "11th Gen (Rocket Lake)", "Cypress Cove"},
	{[]string{"i7-12", "i9-12", "i5-12"}, "12th Gen (Alder Lake)", "Golden Cove + Gracemont"},
	{[]string{"i7-13", "i9-13"}, "13th Gen (Raptor Lake)", "Raptor Cove + Gracemont"},
	{[]string{"i7-14", "i9-14"}, "14th Gen (Raptor Lake Refresh)", "Raptor Cove"},
	{[]string{"i7-10", "i9-10"}, "10th Gen (Comet Lake)", "Skylake"},

	// AMD
	{[]string{"Ryzen 9 7"}, "Ryzen 7000 series", "Zen 4"},
	{[]string{"Ryzen 9 5", "Ryzen 7 5"}, "Ryzen 5000 series", "Zen 3"},
	{[]string{"Ryzen 9 3", "Ryzen 7 3"}, "Ryzen 3000 series", "Zen 2"},
}

// Generation maps a CPU model name to a generation label and
// microarchitecture. Unrecognized models return ("Unknown", "Unknown").
func Generation(modelName string) (gen, microarch string) {
	for _, rule := range generationRules {
		for _, frag := range rule.fragments {
			if strings.Contains(modelName, frag) {
				return rule.gen, rule.uarch
			}
		}
	}
	return "Unknown", "Unknown"
}
