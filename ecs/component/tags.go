package component

// MarkerTag marks the single pick marker. Marker meshes are never pickable.
type MarkerTag struct{}

var MarkerTagComponent = NewComponent[MarkerTag]()

// PickableTag marks a mesh the cursor ray may hit. Once added it stays.
type PickableTag struct{}

var PickableTagComponent = NewComponent[PickableTag]()

// LightTag marks the directional light. The wireframe renderer ignores it
// apart from drawing its gizmo.
type LightTag struct{}

var LightTagComponent = NewComponent[LightTag]()

type SkeletonTag struct{}

var SkeletonTagComponent = NewComponent[SkeletonTag]()
