package component

import "github.com/google/uuid"

// NavRegion marks an entity as a navigable area centred on its transform.
type NavRegion struct {
	ID    uuid.UUID
	Width float64
	Depth float64
}

var NavRegionComponent = NewComponent[NavRegion]()
