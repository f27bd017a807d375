package usecase

import (
	"strings"

	"github.com/xavierca1/ligue-cursos/internal/entity"
)

// TemplateFields são os valores de um lead usados na renderização.
type TemplateFields struct {
	FullName    string
	CourseName  string
	StartDate   string
	PaymentLink string
	AccessLink  string
}

// Tabela declarativa de placeholders: token literal -> accessor + default.
// Token novo entra aqui e em mais lugar nenhum.
var placeholders = []struct {
	token    string
	value    func(f TemplateFields) string
	fallback string
}{
	{"[FULLNAME]", func(f TemplateFields) string { return f.FullName }, ""},
	{"[Course Name]", func(f TemplateFields) string { return f.CourseName }, "the course"},
	{"[Start Date]", func(f TemplateFields) string { return f.StartDate }, "soon"},
	{"[Payment Link]", func(f TemplateFields) string { return f.PaymentLink }, ""},
	{"[Access Link]", func(f TemplateFields) string { return f.AccessLink }, ""},
}

// RenderTemplate substitui cada token conhecido pelo campo do lead (ou pelo
// default quando o campo está vazio). Tokens desconhecidos ficam como estão.
// Idempotente: sem tokens restantes, renderizar de novo é no-op.
func RenderTemplate(tmpl string, fields TemplateFields) string {
	out := tmpl
	for _, p := range placeholders {
		v := p.value(fields)
		if v == "" {
			v = p.fallback
		}
		out = strings.ReplaceAll(out, p.token, v)
	}
	return out
}

// FieldsFromResolution monta os campos de renderização a partir do que o
// resolver devolveu.
func FieldsFromResolution(res *entity.TemplateResolution) TemplateFields {
	return TemplateFields{
		FullName:    res.FullName,
		CourseName:  res.CourseName,
		StartDate:   res.StartDate,
		PaymentLink: res.PaymentLink,
		AccessLink:  res.AccessLink,
	}
}
