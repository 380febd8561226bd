package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	codes "docregistry/internal/validation"
)

// Document is a registered record with descriptive and identifying metadata.
// It carries no persistence tags and is shared by the HTTP, service and storage layers.
type Document struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description,omitempty"`
	AuthorFullName  string     `json:"author_full_name"`
	AuthorEmail     string     `json:"author_email"`
	SerialCode      string     `json:"serial_code"`
	PublicationCode string     `json:"publication_code"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty"`
	Active          bool       `json:"active"`
}

// PageIndex marks a named page inside a document. It is always owned by one document.
type PageIndex struct {
	ID         int64     `json:"id"`
	DocumentID int64     `json:"document_id"`
	Name       string    `json:"name,omitempty"`
	Page       int       `json:"page"`
	CreatedAt  time.Time `json:"created_at"`
}

// DocumentView is a document together with its page index entries.
type DocumentView struct {
	Document Document    `json:"document"`
	Pages    []PageIndex `json:"pages"`
}

// DocumentInput is the mutable part of a document plus its replacement page set,
// as accepted by create and update.
type DocumentInput struct {
	Name            string
	Description     string
	AuthorFullName  string
	AuthorEmail     string
	SerialCode      string
	PublicationCode string
	// Active is only honoured on create; nil means true.
	Active *bool
	Pages  []PageIndex
}

// Validate checks required fields, lengths and code formats.
func (in DocumentInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.RuneLength(0, 100)),
		validation.Field(&in.Description, validation.RuneLength(0, 1000)),
		validation.Field(&in.AuthorFullName, validation.Required, validation.RuneLength(0, 300)),
		validation.Field(&in.AuthorEmail, validation.Required, validation.RuneLength(0, 100), is.EmailFormat),
		validation.Field(&in.SerialCode, validation.Required, validation.RuneLength(0, 16), codes.HexCode),
		validation.Field(&in.PublicationCode, validation.Required, validation.RuneLength(0, 100), codes.PublicationCode),
		validation.Field(&in.Pages, validation.Required.Error("at least one page index is required"), validation.Each(validation.By(validatePage))),
	)
}

func validatePage(value interface{}) error {
	p, _ := value.(PageIndex)
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.RuneLength(0, 100)),
	)
}

// Document builds the document row described by the input.
func (in DocumentInput) Document() Document {
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	return Document{
		Name:            in.Name,
		Description:     in.Description,
		AuthorFullName:  in.AuthorFullName,
		AuthorEmail:     in.AuthorEmail,
		SerialCode:      in.SerialCode,
		PublicationCode: in.PublicationCode,
		Active:          active,
	}
}
