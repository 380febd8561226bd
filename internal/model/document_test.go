package model

import (
	"strings"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() DocumentInput {
	return DocumentInput{
		Name:            "Security baseline",
		Description:     "Controls for the archive",
		AuthorFullName:  "Ana Rojas",
		AuthorEmail:     "ana@example.com",
		SerialCode:      "0x1A2B",
		PublicationCode: "ISO-27001",
		Pages:           []PageIndex{{Name: "Intro", Page: 1}},
	}
}

func TestDocumentInput_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(in *DocumentInput)
		wantField string
	}{
		{name: "valid", mutate: func(in *DocumentInput) {}},
		{name: "missing name", mutate: func(in *DocumentInput) { in.Name = "" }, wantField: "Name"},
		{name: "name too long", mutate: func(in *DocumentInput) { in.Name = strings.Repeat("a", 101) }, wantField: "Name"},
		{name: "description too long", mutate: func(in *DocumentInput) { in.Description = strings.Repeat("a", 1001) }, wantField: "Description"},
		{name: "missing author", mutate: func(in *DocumentInput) { in.AuthorFullName = "" }, wantField: "AuthorFullName"},
		{name: "bad email", mutate: func(in *DocumentInput) { in.AuthorEmail = "ana.example.com" }, wantField: "AuthorEmail"},
		{name: "serial not hex", mutate: func(in *DocumentInput) { in.SerialCode = "12G4" }, wantField: "SerialCode"},
		{name: "serial too long", mutate: func(in *DocumentInput) { in.SerialCode = strings.Repeat("f", 17) }, wantField: "SerialCode"},
		{name: "bad publication code", mutate: func(in *DocumentInput) { in.PublicationCode = "ISO27001" }, wantField: "PublicationCode"},
		{name: "no pages", mutate: func(in *DocumentInput) { in.Pages = nil }, wantField: "Pages"},
		{name: "page name too long", mutate: func(in *DocumentInput) { in.Pages[0].Name = strings.Repeat("p", 101) }, wantField: "Pages"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			err := in.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var errs validation.Errors
			require.ErrorAs(t, err, &errs)
			assert.Contains(t, errs, tt.wantField)
		})
	}
}

func TestDocumentInput_Document(t *testing.T) {
	in := validInput()
	doc := in.Document()
	assert.True(t, doc.Active)
	assert.Equal(t, in.SerialCode, doc.SerialCode)

	inactive := false
	in.Active = &inactive
	assert.False(t, in.Document().Active)
}

func TestDocumentFilter_Empty(t *testing.T) {
	assert.True(t, DocumentFilter{Page: 1}.Empty())
	serial := "0xff"
	assert.False(t, DocumentFilter{SerialCode: &serial}.Empty())
}
