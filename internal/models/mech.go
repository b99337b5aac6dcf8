package models

import "fmt"

// MechCategory is the closed set of mech classifications.
type MechCategory string

const (
	CategorySuper MechCategory = "Super"
	CategoryReal  MechCategory = "Real"
)

// MechCategories lists every category in display order.
var MechCategories = []MechCategory{CategorySuper, CategoryReal}

// ParseMechCategory maps a form value to a category. An empty value yields
// the default, CategorySuper.
func ParseMechCategory(s string) (MechCategory, error) {
	switch MechCategory(s) {
	case "":
		return CategorySuper, nil
	case CategorySuper:
		return CategorySuper, nil
	case CategoryReal:
		return CategoryReal, nil
	default:
		return "", fmt.Errorf("unknown mech category %q", s)
	}
}

// String implements fmt.Stringer.
func (c MechCategory) String() string {
	return string(c)
}

// Mech represents a catalogued robot.
type Mech struct {
	ID       uint         `json:"id" gorm:"primaryKey;autoIncrement"`
	Name     string       `json:"name" gorm:"type:varchar(80);not null"`
	Series   string       `json:"series" gorm:"type:varchar(100);not null"`
	Category MechCategory `json:"category" gorm:"type:varchar(16);not null;default:Super"`
	Attacks  []Attack     `json:"attacks,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
}
