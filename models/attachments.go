package models

import "time"

// Image is a picture attached to a line item, product option, phase, or
// subtask. Exactly one of URL and Data is expected to be set: URL points at an
// external location, Data carries an inline-encoded (data-URI) payload.
type Image struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`
	Data string `json:"data,omitempty"`

	// IsMainImage marks the display default. At most one image per list
	// should carry it; when none does, the first image is the default.
	IsMainImage bool `json:"isMainImage,omitempty"`

	// Size is the payload size in bytes, informational only.
	Size int64 `json:"size,omitempty"`
}

// LearningCategory tags a learning note.
type LearningCategory string

const (
	LearningTip      LearningCategory = "tip"
	LearningIssue    LearningCategory = "issue"
	LearningDecision LearningCategory = "decision"
	LearningNote     LearningCategory = "note"
)

// Learning is a tagged note attached to a phase or subtask.
type Learning struct {
	ID       string           `json:"id"`
	Content  string           `json:"content"`
	Date     *time.Time       `json:"date,omitempty"`
	Category LearningCategory `json:"category,omitempty"`
}

// ReferenceType discriminates the kind of auxiliary material a Reference holds.
type ReferenceType string

const (
	ReferenceImage    ReferenceType = "image"
	ReferenceLink     ReferenceType = "link"
	ReferenceDocument ReferenceType = "document"
)

// Reference is an auxiliary image, link, or document attached to a phase.
type Reference struct {
	ID          string        `json:"id"`
	Type        ReferenceType `json:"type"`
	Name        string        `json:"name,omitempty"`
	URL         string        `json:"url,omitempty"`
	Data        string        `json:"data,omitempty"`
	Description string        `json:"description,omitempty"`
	UploadedAt  *time.Time    `json:"uploadedAt,omitempty"`
}

// Link is a labelled URL attached to a line item.
type Link struct {
	URL   string `json:"url"`
	Label string `json:"label,omitempty"`
}
