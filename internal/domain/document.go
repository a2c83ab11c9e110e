package domain

import (
	"time"

	"github.com/google/uuid"
)

// Document is one uploaded artifact attached to an application.
// The file body lives in the external file store; FilePath is the store key.
type Document struct {
	ID            uuid.UUID
	ApplicationID uuid.UUID
	UserID        uuid.UUID
	Type          DocumentType
	FilePath      string
	FileName      string
	ContentType   string
	SizeBytes     int64
	CreatedAt     time.Time
}

// HasRequiredDocuments reports whether the set contains at least one photo
// and one passport document, the completeness precondition for submission.
func HasRequiredDocuments(docs []*Document) bool {
	var photo, passport bool
	for _, d := range docs {
		switch d.Type {
		case DocumentTypePhoto:
			photo = true
		case DocumentTypePassport:
			passport = true
		}
	}
	return photo && passport
}
