package entities

import "github.com/KirkDiggler/rpg-toolkit/core"

// EntityTypePet is the rpg-toolkit entity type of a creature
const EntityTypePet = "pet"

// PetEntity wraps a PlayerState to implement core.Entity so creatures can be
// the source or target of toolkit events
type PetEntity struct {
	*PlayerState
}

// GetID returns chat:player
func (p *PetEntity) GetID() string {
	return p.Key().String()
}

// GetType returns the entity type for rpg-toolkit
func (p *PetEntity) GetType() string {
	return EntityTypePet
}

// WrapPet converts a PlayerState to a PetEntity
func WrapPet(state *PlayerState) *PetEntity {
	return &PetEntity{PlayerState: state}
}

var _ core.Entity = (*PetEntity)(nil)
