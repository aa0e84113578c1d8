// Package entity contains the core business objects of the project.
package entity

// LocalizedText holds a bilingual text value. Geodata records carry their
// names and descriptions in both Myanmar and English.
type LocalizedText struct {
	MM string `json:"mm"`
	EN string `json:"en"`
}

// IsEmpty reports whether both language variants are blank.
func (t LocalizedText) IsEmpty() bool {
	return t.MM == "" && t.EN == ""
}

// WithFallback fills blank variants from the other language so that a
// record named in only one language still renders in both.
func (t LocalizedText) WithFallback() LocalizedText {
	out := t
	if out.MM == "" {
		out.MM = out.EN
	}
	if out.EN == "" {
		out.EN = out.MM
	}

	return out
}
