package handler

import "docregistry/internal/model"

// pageRequest is one page index entry in a create or update body.
type pageRequest struct {
	Name string `json:"name" example:"Introducción"`
	Page int    `json:"page" example:"1"`
}

// documentRequest is the body accepted by create and update.
type documentRequest struct {
	Name            string        `json:"name" example:"Ley de transparencia"`
	Description     string        `json:"description,omitempty"`
	AuthorFullName  string        `json:"author_full_name" example:"Ana Pérez"`
	AuthorEmail     string        `json:"author_email" example:"ana@example.com"`
	SerialCode      string        `json:"serial_code" example:"0x1F"`
	PublicationCode string        `json:"publication_code" example:"Ley N° 20.285"`
	Active          *bool         `json:"active,omitempty"`
	Pages           []pageRequest `json:"pages"`
}

func (r documentRequest) toInput() model.DocumentInput {
	pages := make([]model.PageIndex, 0, len(r.Pages))
	for _, p := range r.Pages {
		pages = append(pages, model.PageIndex{Name: p.Name, Page: p.Page})
	}
	return model.DocumentInput{
		Name:            r.Name,
		Description:     r.Description,
		AuthorFullName:  r.AuthorFullName,
		AuthorEmail:     r.AuthorEmail,
		SerialCode:      r.SerialCode,
		PublicationCode: r.PublicationCode,
		Active:          r.Active,
		Pages:           pages,
	}
}

// searchRequest is the body of POST /documents/search. Omitted terms take no
// part in the search; an omitted page means the first one.
type searchRequest struct {
	ID              *int64  `json:"id,omitempty"`
	SerialCode      *string `json:"serial_code,omitempty"`
	PublicationCode *string `json:"publication_code,omitempty"`
	AuthorOrEmail   *string `json:"author_or_email,omitempty"`
	Page            *int    `json:"page,omitempty"`
}

func (r searchRequest) toFilter() model.DocumentFilter {
	page := 1
	if r.Page != nil {
		page = *r.Page
	}
	return model.DocumentFilter{
		ID:              r.ID,
		SerialCode:      r.SerialCode,
		PublicationCode: r.PublicationCode,
		AuthorOrEmail:   r.AuthorOrEmail,
		Page:            page,
	}
}
