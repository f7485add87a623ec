package component

// Pointer is the cursor in window pixels, y down.
type Pointer struct {
	X, Y       float32
	InViewport bool
}

var PointerComponent = NewComponent[Pointer]()

// OrbitInput accumulates drag and wheel deltas for one tick.
type OrbitInput struct {
	DragX  float32
	DragY  float32
	PanX   float32
	PanY   float32
	Scroll float32
}

var OrbitInputComponent = NewComponent[OrbitInput]()
