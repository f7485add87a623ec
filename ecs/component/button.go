package component

type ButtonVisual int

const (
	ButtonNormal ButtonVisual = iota
	ButtonPressed
)

// AnimationButton selects catalog slot Slot when Pressed. Input writers set
// Pressed; the animation controller clears it.
type AnimationButton struct {
	Slot    int
	Label   string
	Pressed bool
	Visual  ButtonVisual
}

var AnimationButtonComponent = NewComponent[AnimationButton]()
