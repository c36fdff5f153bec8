package fire

// Burned-area thresholds in hectares for fire size classification.
const (
	AttemptMaxArea     = 1.0   // at most this size counts as an attempt ("conato")
	MajorFireThreshold = 500.0 // at least this size counts as a major fire
)

// Size class display names, matching the dataset conventions.
const (
	SizeAttempt = "Conato (<1 ha)"
	SizeFire    = "Incendio (1–500 ha)"
	SizeMajor   = "Gran incendio (>500 ha)"
)

// SizeClass classifies a fire by its burned area in hectares.
func SizeClass(burnedArea float64) string {
	switch {
	case burnedArea <= AttemptMaxArea:
		return SizeAttempt
	case burnedArea < MajorFireThreshold:
		return SizeFire
	default:
		return SizeMajor
	}
}

// IsMajor reports whether a fire qualifies as a major fire.
func IsMajor(burnedArea float64) bool {
	return burnedArea >= MajorFireThreshold
}
