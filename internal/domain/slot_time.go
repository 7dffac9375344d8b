package domain

import "github.com/m04kA/SMC-PetCareService/pkg/types"

// ParseSlotTime canonicalizes a stored or requested slot time:
// "9:00" becomes "09:00", "Half Day" / "half-day" become "HalfDay".
func ParseSlotTime(value string) (string, bool) {
	if label, ok := ParseDaycareType(value); ok {
		return string(label), true
	}
	ts, err := types.NewTimeStringFromString(value)
	if err != nil {
		return "", false
	}
	return ts.String(), true
}

// ParseSlotTimeFor is ParseSlotTime restricted to what the category books:
// day labels only for DayCare, HH:MM for every category.
func ParseSlotTimeFor(category Category, value string) (string, bool) {
	if _, isLabel := ParseDaycareType(value); isLabel && category != CategoryDayCare {
		return "", false
	}
	return ParseSlotTime(value)
}
