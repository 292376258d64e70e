package tour

import "fmt"

// Field names a tour attribute a caller can submit on save.
type Field string

// Submittable tour fields.
const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldLanguage    Field = "language"
	FieldPublished   Field = "published"
	FieldOrdering    Field = "ordering"
)

// Fields lists every submittable field.
var Fields = []Field{FieldTitle, FieldDescription, FieldLanguage, FieldPublished, FieldOrdering}

// ParseField maps a submitted attribute name to its Field.
func ParseField(name string) (Field, error) {
	for _, f := range Fields {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown tour field %q", name)
}

// BindTo returns stored with the submitted fields of t written over it.
// A nil fields slice submits every field. Identity, stamps and check-out
// metadata always come from stored.
func (t *Tour) BindTo(stored Tour, fields []Field) Tour {
	if fields == nil {
		fields = Fields
	}

	out := stored
	for _, f := range fields {
		switch f {
		case FieldTitle:
			out.Title = t.Title
		case FieldDescription:
			out.Description = t.Description
		case FieldLanguage:
			out.Language = t.Language
		case FieldPublished:
			out.Published = t.Published
		case FieldOrdering:
			out.Ordering = t.Ordering
		}
	}
	out.TitleTranslation = ""
	out.DescriptionTranslation = ""
	return out
}
