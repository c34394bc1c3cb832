package component

// Patrol moves an entity horizontally between MinX and MaxX, reversing at
// either end. Speed is in px/s.
type Patrol struct {
	Speed     float64
	Direction int
	MinX      float64
	MaxX      float64
}

var PatrolComponent = NewComponent[Patrol]("patrol")
