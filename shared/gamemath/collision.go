package gamemath

// Collided reports whether two circles overlap. Touching circles do not.
func Collided(a, b Vec2, radiusA, radiusB float64) bool {
	return Distance(a, b) < radiusA+radiusB
}
