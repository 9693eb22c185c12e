package models

import "time"

// UploadedFile is a multipart file that the transport layer has already
// spooled to a local temp path. The media adapter owns the file from then on
// and removes it once the upload attempt is over.
type UploadedFile struct {
	// Path is the absolute path of the temp file.
	Path string

	// Filename is the client-side name, kept for logging.
	Filename string

	// Size is the number of bytes spooled.
	Size int64
}

// Uploads groups spooled files by their multipart field name.
type Uploads map[string][]UploadedFile

// First returns the first file of field, or nil.
func (u Uploads) First(field string) *UploadedFile {
	if files := u[field]; len(files) > 0 {
		return &files[0]
	}
	return nil
}

// All returns every file regardless of field.
func (u Uploads) All() []UploadedFile {
	var all []UploadedFile
	for _, files := range u {
		all = append(all, files...)
	}
	return all
}

// Media is the result of a successful upload.
type Media struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// Event is a domain event published after a committed change.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Key        string    `json:"key"`
	Payload    any       `json:"payload"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Event types.
const (
	EventReviewCreated  = "review.created"
	EventReviewDeleted  = "review.deleted"
	EventEnquiryCreated = "enquiry.created"
	EventEnquiryDeleted = "enquiry.deleted"
	EventTyreCreated    = "tyre.created"
	EventTyreDeleted    = "tyre.deleted"
	EventSubscribed     = "newsletter.subscribed"
)
