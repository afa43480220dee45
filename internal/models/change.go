package models

// Category is the ITIL change type a request is classified into.
type Category string

const (
	CategoryStandard  Category = "Standard"
	CategoryNormal    Category = "Normal"
	CategoryEmergency Category = "Emergency"
)

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{CategoryStandard, CategoryNormal, CategoryEmergency}
}

// Valid reports whether c is one of the three defined categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryStandard, CategoryNormal, CategoryEmergency:
		return true
	}
	return false
}

// ClassificationDetails holds the display class and explanatory text for a category.
type ClassificationDetails struct {
	DisplayClass string `json:"display_class" yaml:"display_class"`
	Description  string `json:"description" yaml:"description"`
}
