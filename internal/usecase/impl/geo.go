package impl

// validLonLat reports whether the pair is a usable WGS84 coordinate.
func validLonLat(lon, lat float64) bool {
	return lon >= -180 && lon <= 180 && lat >= -90 && lat <= 90
}
