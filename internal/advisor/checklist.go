package advisor

import "github.com/joescharf/changeflow/internal/models"

var checklist = []models.ChecklistItem{
	{ID: "rollback", Label: "Rollback plan documented and tested"},
	{ID: "backup", Label: "Backups or snapshots taken before implementation"},
	{ID: "stakeholders", Label: "Affected stakeholders and service owners notified"},
	{ID: "monitoring", Label: "Monitoring and alerting in place for the change window"},
	{ID: "test-evidence", Label: "Test evidence attached to the change record"},
	{ID: "schedule", Label: "Change window checked against the change calendar and freeze periods"},
	{ID: "validation", Label: "Post-implementation validation steps defined"},
}

// Checklist returns the mitigation checklist shown with every resolved path.
func Checklist() []models.ChecklistItem {
	out := make([]models.ChecklistItem, len(checklist))
	copy(out, checklist)
	return out
}
