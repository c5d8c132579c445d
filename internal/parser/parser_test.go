package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	in := "Jane   Roe\t\tEngineer\n\n\n\n\nEXPERIENCE\n  Acme  "
	out := CleanText(in)

	assert.Equal(t, "Jane Roe Engineer\n\nEXPERIENCE\n Acme", out)
}

func TestCleanTextKeepsParagraphBreaks(t *testing.T) {
	out := CleanText("first\n\nsecond")
	assert.Equal(t, "first\n\nsecond", out)
}

func TestExtractContactInfo(t *testing.T) {
	text := "Jane Roe\njane.roe@example.com | 555-123-4567\nSpringfield"

	info := ExtractContactInfo(text)
	assert.Equal(t, "Jane Roe", info.Name)
	assert.Equal(t, "jane.roe@example.com", info.Email)
	assert.Equal(t, "555-123-4567", info.Phone)
}

func TestExtractContactInfoSkipsNonNameFirstLine(t *testing.T) {
	info := ExtractContactInfo("jane.roe@example.com\nJane Roe")
	assert.Empty(t, info.Name)
	assert.Equal(t, "jane.roe@example.com", info.Email)
}

func TestExtractSections(t *testing.T) {
	text := `Jane Roe
Springfield

WORK EXPERIENCE
Engineer at Acme

EDUCATION
B.S. Computer Science

SKILLS
Go, SQL`

	sections := ExtractSections(text)

	assert.Contains(t, sections["HEADER"], "Jane Roe")
	assert.Contains(t, sections["WORK EXPERIENCE"], "Engineer at Acme")
	assert.Contains(t, sections["EDUCATION"], "B.S. Computer Science")
	assert.Contains(t, sections["SKILLS"], "Go, SQL")
}

func TestExtractSectionsWithoutHeaders(t *testing.T) {
	sections := ExtractSections("just a paragraph of text")
	assert.Equal(t, "just a paragraph of text", sections["HEADER"])
}
