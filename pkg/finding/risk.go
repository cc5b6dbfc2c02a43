package finding

import "strings"

// RiskLevel is the ordinal risk classification of a web alert.
// Informational < Low < Medium < High, matching scanner risk codes 0..3.
type RiskLevel int

const (
	// RiskInformational carries no direct security impact (risk code "0").
	RiskInformational RiskLevel = iota

	// RiskLow represents limited impact (risk code "1").
	RiskLow

	// RiskMedium represents moderate impact (risk code "2").
	RiskMedium

	// RiskHigh represents significant impact requiring prompt fix (risk code "3").
	RiskHigh
)

// RiskLevels returns all levels ordered from most to least severe.
func RiskLevels() []RiskLevel {
	return []RiskLevel{RiskHigh, RiskMedium, RiskLow, RiskInformational}
}

// RiskFromCode maps a scanner risk code string to a level.
// Unknown or empty codes classify as Informational.
func RiskFromCode(code string) RiskLevel {
	switch strings.TrimSpace(code) {
	case "3":
		return RiskHigh
	case "2":
		return RiskMedium
	case "1":
		return RiskLow
	default:
		return RiskInformational
	}
}

// RiskFromDescriptor maps the leading word of a risk descriptor such as
// "High (Medium)" to a level. Unknown words classify as Informational.
func RiskFromDescriptor(desc string) RiskLevel {
	word, _, _ := strings.Cut(strings.TrimSpace(desc), " ")
	switch strings.ToLower(word) {
	case "high":
		return RiskHigh
	case "medium":
		return RiskMedium
	case "low":
		return RiskLow
	default:
		return RiskInformational
	}
}

// IsValid reports whether r is one of the four defined levels.
func (r RiskLevel) IsValid() bool {
	return r >= RiskInformational && r <= RiskHigh
}

// Code returns the scanner risk code ("0".."3").
func (r RiskLevel) Code() string {
	switch r {
	case RiskHigh:
		return "3"
	case RiskMedium:
		return "2"
	case RiskLow:
		return "1"
	default:
		return "0"
	}
}

// IsCritical reports whether the level is Medium or High (risk code 2 or 3).
// Critical alerts feed the plain-text analysis export.
func (r RiskLevel) IsCritical() bool {
	return r == RiskMedium || r == RiskHigh
}

// String returns the English level name.
func (r RiskLevel) String() string {
	switch r {
	case RiskHigh:
		return "High"
	case RiskMedium:
		return "Medium"
	case RiskLow:
		return "Low"
	default:
		return "Informational"
	}
}
