package model

import (
	"citynav/internal/errors"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// errInvalidGeometryKind is returned when a stored WKT value decodes to an
// unexpected geometry type.
var errInvalidGeometryKind = errors.New("stored geometry has unexpected type")

func parseLineStringWKT(raw string) (orb.LineString, error) {
	geom, err := wkt.Unmarshal(raw)
	if err != nil {
		return nil, err
	}
	line, ok := geom.(orb.LineString)
	if !ok {
		return nil, errInvalidGeometryKind
	}

	return line, nil
}
