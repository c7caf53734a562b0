package protocol

import (
	"github.com/automoto/illuyanka/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
)

// Sync ID constants - ID 1 is reserved by necs for NetworkId
const (
	SyncIDNetPosition uint = 10
	SyncIDNetActor    uint = 11
	SyncIDNetEffect   uint = 12
	SyncIDNetArena    uint = 13
)

// Interpolation IDs (uint8 for WithInterpFn)
const (
	InterpIDNetPosition uint8 = 10
	InterpIDNetActor    uint8 = 11
	InterpIDNetEffect   uint8 = 12
)

// RegisterComponents registers all network components with necs for serialization.
// This must be called by both server and client before any network operations.
func RegisterComponents() error {
	if err := esync.RegisterComponent(
		SyncIDNetPosition,
		netcomponents.NetPositionData{},
		netcomponents.NetPosition,
		esync.WithInterpFn(InterpIDNetPosition, netcomponents.LerpNetPosition),
	); err != nil {
		return err
	}

	if err := esync.RegisterComponent(
		SyncIDNetActor,
		netcomponents.NetActorData{},
		netcomponents.NetActor,
		esync.WithInterpFn(InterpIDNetActor, netcomponents.LerpNetActor),
	); err != nil {
		return err
	}

	if err := esync.RegisterComponent(
		SyncIDNetEffect,
		netcomponents.NetEffectData{},
		netcomponents.NetEffect,
		esync.WithInterpFn(InterpIDNetEffect, netcomponents.LerpNetEffect),
	); err != nil {
		return err
	}

	// Arena summary: no interpolation (discrete state)
	if err := esync.RegisterComponent(
		SyncIDNetArena,
		netcomponents.NetArenaData{},
		netcomponents.NetArena,
	); err != nil {
		return err
	}

	return nil
}
