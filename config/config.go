package config

import "github.com/automoto/hookshot/assets"

// PlayerConfig contains all player-related configuration values. Distances
// are in world pixels, speeds in pixels per millisecond.
type PlayerConfig struct {
	Radius          float64 // collision circle radius
	WalkSpeed       float64 // walking speed while free
	WalkSpeedHooked float64 // walking speed while confined by a reeling hook
	FollowRadius    float64 // max distance from the hook reeling this player
}

// BoostConfig contains the flick-boost tuning. The decay follows
// dm/dt = -(A*m^2 + B + C/(m + D)).
type BoostConfig struct {
	StartIncrement    float64 // added when a flick starts a boost
	ExtendIncrement   float64 // added when a flick continues the same boost
	RepeatPenalty     float64 // added when the same key is tapped twice
	RedirectIncrement float64 // added when the boost switches direction
	MultMax           float64 // clamp on the accumulated multiplier after decay
	MultEffectiveMax  float64 // cap on the multiplier used for velocity

	DecayA float64 // quadratic term
	DecayB float64 // constant term
	DecayC float64 // rational term numerator
	DecayD float64 // rational term offset
}

// HookConfig contains hook lifecycle configuration values
type HookConfig struct {
	Radius         float64 // collision circle radius
	ThrowSpeed     float64 // base launch speed
	ResetSpeed     float64 // return speed while resetting
	ReelMinSpeed   float64 // slowest pull while reeling
	ReelCooldown   float64 // ms before the owner may reel again
	CutoffDistance float64 // owner-to-hook distance that forces a reset
}

// ServerConfig contains process-level settings of the game server.
type ServerConfig struct {
	Name          string
	Version       string // required client version, empty accepts any
	TickRate      int    // simulation ticks per second
	MaxPlayers    int
	World         string // embedded world to load
	MasterURL     string // server browser, empty disables registration
	PublicAddress string // address advertised to the server browser
	Region        string
}

// Config groups every tunable of the game server.
type Config struct {
	Player PlayerConfig
	Boost  BoostConfig
	Hook   HookConfig
	Server ServerConfig
}

// Default returns the tuning the game was balanced with.
func Default() Config {
	playerRadius := 20 * 1.5

	return Config{
		Player: PlayerConfig{
			Radius:          playerRadius,
			WalkSpeed:       124.0 / 1000,
			WalkSpeedHooked: 124.0 / 1000,
			FollowRadius:    playerRadius,
		},
		Boost: BoostConfig{
			StartIncrement:    0.5,
			ExtendIncrement:   0.5,
			RepeatPenalty:     -0.1,
			RedirectIncrement: 0.5,
			MultMax:           3,
			MultEffectiveMax:  2.5,

			DecayA: 1 / (160.0 * 16),
			DecayB: 1 / (80.0 * 16),
			DecayC: 1 / (37.5 * 16),
			DecayD: 1 / (0.5 * 16),
		},
		Hook: HookConfig{
			Radius:         10,
			ThrowSpeed:     200.0 / 1000,
			ResetSpeed:     500.0 / 1000,
			ReelMinSpeed:   80.0 / 1000,
			ReelCooldown:   1000,
			CutoffDistance: 500,
		},
		Server: ServerConfig{
			Name:       "Hookshot Server",
			TickRate:   60,
			MaxPlayers: 32,
			World:      assets.DefaultWorld,
			Region:     "local",
		},
	}
}
