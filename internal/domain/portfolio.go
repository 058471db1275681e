package domain

import (
	"time"

	"github.com/google/uuid"
)

// Template identifies one of the closed set of portfolio page templates.
type Template string

const (
	TemplateMinimal  Template = "minimal"
	TemplateTech     Template = "tech"
	TemplateCreative Template = "creative"
)

// Templates lists all selectable templates.
var Templates = []Template{TemplateMinimal, TemplateTech, TemplateCreative}

// IsValidTemplate reports whether id names a known template.
func IsValidTemplate(id string) bool {
	for _, t := range Templates {
		if string(t) == id {
			return true
		}
	}
	return false
}

// TemplateInfo describes a template for the selection UI.
type TemplateInfo struct {
	ID          Template `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
}

// TemplateCatalog lists the selectable templates with display metadata.
var TemplateCatalog = []TemplateInfo{
	{ID: TemplateMinimal, Name: "Minimal", Description: "Clean single-column layout with generous whitespace"},
	{ID: TemplateTech, Name: "Tech", Description: "Dark terminal-inspired layout for developers"},
	{ID: TemplateCreative, Name: "Creative", Description: "Bold colors and cards for visual work"},
}

// Portfolio is a user-owned page scoped by a globally unique slug.
// The owner field is the sole authority for access control on all
// nested collections.
type Portfolio struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Subtitle    *string   `json:"subtitle,omitempty" db:"subtitle"`
	Description *string   `json:"description,omitempty" db:"description"`
	Slug        string    `json:"slug" db:"slug"`
	Template    Template  `json:"template" db:"template"`
	IsPublished bool      `json:"is_published" db:"is_published"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
