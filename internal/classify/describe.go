package classify

import "github.com/joescharf/changeflow/internal/models"

var details = map[models.Category]models.ClassificationDetails{
	models.CategoryStandard: {
		DisplayClass: "badge-standard",
		Description: "Standard Change — Pre-authorized, low-risk, and repeatable. " +
			"No additional approval is needed at request time (pre-approved " +
			"via change model). Lead time target: minutes to hours via " +
			"automated pipeline. Documentation: minimal log entry only.",
	},
	models.CategoryNormal: {
		DisplayClass: "badge-normal",
		Description: "Normal Change — Requires assessment, authorization, and scheduling. " +
			"Use the risk dimension sliders below to score each dimension 1–5 " +
			"and determine the risk tier and approval path. " +
			"Lead time target: 1–5 business days depending on risk tier.",
	},
	models.CategoryEmergency: {
		DisplayClass: "badge-emergency",
		Description: "Emergency Change — Must be implemented immediately to restore " +
			"service or prevent imminent critical impact. Requires expedited " +
			"ECAB (Emergency CAB) approval. Full documentation must be " +
			"completed within 48 hours after implementation. A corresponding " +
			"incident or problem record is required.",
	},
}

// Describe returns the display class and explanation for a category.
// Unknown categories get empty details.
func Describe(c models.Category) models.ClassificationDetails {
	return details[c]
}
