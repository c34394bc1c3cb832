package component

import (
	"image/color"

	"github.com/milk9111/jamble/geom"
)

type ObstacleKind string

const (
	ObstacleTree        ObstacleKind = "tree"
	ObstacleTreeCeiling ObstacleKind = "tree_ceiling"
	ObstacleBird        ObstacleKind = "bird"
)

// Obstacle marks a collidable level element. Only deadly obstacles end a run.
type Obstacle struct {
	Name      string
	Kind      ObstacleKind
	Deadly    bool
	Collision geom.Config
	Color     color.Color
}

var ObstacleComponent = NewComponent[Obstacle]("obstacle")
