package component

import "image/color"

// Tint is the colour the viewer draws an entity with.
type Tint struct {
	Color color.Color
}

var TintComponent = NewComponent[Tint]()
