package sim

// Step advances the world by dt milliseconds. It only touches in-memory
// state, so the same state and dt always give the same result.
func (s *State) Step(dt float64) {
	s.movePlayers(dt)
	s.resolveHooks()
	s.moveHooks(dt)
	s.confinePlayers()
	s.snapTrackingHooks()
	s.Tick++
}
