// Package model contains the GORM-specific structs mirroring database tables.
package model

import (
	"encoding/json"

	"citynav/internal/domain/entity"

	"gorm.io/datatypes"
)

// Bilingual text, string lists and length lists are stored as JSONB columns.
// Marshalling of these value types cannot fail, so errors are discarded.

func localizedToJSON(t entity.LocalizedText) datatypes.JSON {
	raw, _ := json.Marshal(t)

	return datatypes.JSON(raw)
}

func localizedFromJSON(raw datatypes.JSON) entity.LocalizedText {
	var t entity.LocalizedText
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &t)
	}

	return t
}

// LocalizedFromJSON decodes a stored bilingual text column.
// Exported for repositories that project single columns.
func LocalizedFromJSON(raw datatypes.JSON) entity.LocalizedText {
	return localizedFromJSON(raw)
}

func stringsToJSON(ss []string) datatypes.JSON {
	if ss == nil {
		ss = []string{}
	}
	raw, _ := json.Marshal(ss)

	return datatypes.JSON(raw)
}

func stringsFromJSON(raw datatypes.JSON) []string {
	var ss []string
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &ss)
	}

	return ss
}

func floatsToJSON(fs []float64) datatypes.JSON {
	if fs == nil {
		fs = []float64{}
	}
	raw, _ := json.Marshal(fs)

	return datatypes.JSON(raw)
}

func floatsFromJSON(raw datatypes.JSON) []float64 {
	var fs []float64
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &fs)
	}

	return fs
}
