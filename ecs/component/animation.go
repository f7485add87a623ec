package component

import (
	"github.com/milk9111/modelviewer/anim"
	"github.com/milk9111/modelviewer/assets"
)

// AnimationPlayer is present on an entity once its skeleton has loaded.
type AnimationPlayer struct {
	Player *anim.Player
}

var AnimationPlayerComponent = NewComponent[AnimationPlayer]()

// AnimationGraph links an animated entity to the graph it plays from.
type AnimationGraph struct {
	Handle *assets.Handle[*anim.Graph]
}

var AnimationGraphComponent = NewComponent[AnimationGraph]()

// AnimationTransitions is the entity's current transition set.
type AnimationTransitions struct {
	Transitions *anim.Transitions
}

var AnimationTransitionsComponent = NewComponent[AnimationTransitions]()
