package protocol

import (
	"fmt"

	"github.com/automoto/hookshot/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
)

// Sync ID constants - ID 1 is reserved by necs for NetworkId
const (
	SyncIDNetPlayer uint = 10
	SyncIDNetHook   uint = 11
	SyncIDNetWorld  uint = 12
)

// Interpolation IDs (uint8 for WithInterpFn)
const (
	InterpIDNetPlayer uint8 = 10
	InterpIDNetHook   uint8 = 11
)

// RegisterComponents registers all network components with necs for serialization.
// This must be called by both server and client before any network operations.
func RegisterComponents() error {
	if err := esync.RegisterComponent(
		SyncIDNetPlayer,
		netcomponents.NetPlayerData{},
		netcomponents.NetPlayer,
		esync.WithInterpFn(InterpIDNetPlayer, netcomponents.LerpNetPlayer),
	); err != nil {
		return fmt.Errorf("register NetPlayer: %w", err)
	}

	if err := esync.RegisterComponent(
		SyncIDNetHook,
		netcomponents.NetHookData{},
		netcomponents.NetHook,
		esync.WithInterpFn(InterpIDNetHook, netcomponents.LerpNetHook),
	); err != nil {
		return fmt.Errorf("register NetHook: %w", err)
	}

	// World: no interpolation (static)
	if err := esync.RegisterComponent(
		SyncIDNetWorld,
		netcomponents.NetWorldData{},
		netcomponents.NetWorld,
	); err != nil {
		return fmt.Errorf("register NetWorld: %w", err)
	}

	return nil
}
