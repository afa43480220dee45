package models

// ApprovalPath is the ordered workflow a change must follow.
// An empty path (no title, no steps) means the path is not yet determined.
type ApprovalPath struct {
	Title string   `json:"title" yaml:"title"`
	Steps []string `json:"steps" yaml:"steps"`
}

// NoPath returns the not-yet-determined path. Steps is an empty list rather
// than nil so it encodes as "steps": [].
func NoPath() ApprovalPath {
	return ApprovalPath{Steps: []string{}}
}

// IsEmpty reports whether the path has not been determined.
func (p ApprovalPath) IsEmpty() bool {
	return p.Title == "" && len(p.Steps) == 0
}

// ChecklistItem is a single mitigation check shown alongside an approval path.
type ChecklistItem struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}
