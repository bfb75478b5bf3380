package gamemath

// ThrowVelocity returns the launch velocity of a hook thrown along aim. The
// thrower's own velocity component along aim is added to the base speed.
func ThrowVelocity(aim, throwerVel Vec2, baseSpeed float64) Vec2 {
	dir := aim.Normalized()
	return dir.WithLength(baseSpeed + throwerVel.Dot(dir))
}

// ThrowOrigin is the point on the thrower's edge where a hook spawns.
func ThrowOrigin(throwerLoc, aim Vec2, throwerRadius float64) Vec2 {
	return throwerLoc.Add(aim.WithLength(throwerRadius))
}

// HomingVelocity returns a velocity of the given speed pointing from pos to
// target.
func HomingVelocity(pos, target Vec2, speed float64) Vec2 {
	return target.Sub(pos).WithLength(speed)
}

// ReelVelocity returns the pull velocity of a reeled hook: toward the owner
// at the owner's own speed along that line, never slower than minSpeed.
func ReelVelocity(hookLoc, ownerLoc, ownerVel Vec2, minSpeed float64) Vec2 {
	dir := ownerLoc.Sub(hookLoc).Normalized()
	speed := ownerVel.Dot(dir)
	if speed < minSpeed {
		speed = minSpeed
	}
	return dir.WithLength(speed)
}

// Confine keeps pos within radius of center, preserving its direction from
// center.
func Confine(pos, center Vec2, radius float64) Vec2 {
	offset := pos.Sub(center)
	if offset.Magnitude() > radius {
		return center.Add(offset.WithLength(radius))
	}
	return pos
}
