// Package anim holds animation playback state: a blend graph of clips, a
// per-entity player with playback cursors, and transition sets that crossfade
// between clips.
package anim

// NodeIndex addresses a node in a Graph.
type NodeIndex int

// Clip is a resolved animation clip.
type Clip struct {
	Name     string
	Duration float32 // seconds
}

// ClipSource yields a clip once it has been resolved. Asset handles satisfy it;
// an unresolved source simply reports false.
type ClipSource interface {
	Get() (Clip, bool)
}

type graphNode struct {
	clip   ClipSource
	weight float32
	parent NodeIndex
}

// Graph is a tree of blend nodes with clips at the leaves. One graph is shared
// by every entity that plays from it.
type Graph struct {
	nodes []graphNode
}

// NewGraph returns a graph holding only its root blend node.
func NewGraph() *Graph {
	return &Graph{nodes: []graphNode{{weight: 1, parent: -1}}}
}

// Root returns the root blend node.
func (g *Graph) Root() NodeIndex {
	return 0
}

// AddClip attaches a clip leaf under parent.
func (g *Graph) AddClip(src ClipSource, weight float32, parent NodeIndex) NodeIndex {
	g.nodes = append(g.nodes, graphNode{clip: src, weight: weight, parent: parent})
	return NodeIndex(len(g.nodes) - 1)
}

// AddClips attaches clips under parent and returns their indices in order.
func (g *Graph) AddClips(srcs []ClipSource, weight float32, parent NodeIndex) []NodeIndex {
	out := make([]NodeIndex, 0, len(srcs))
	for _, src := range srcs {
		out = append(out, g.AddClip(src, weight, parent))
	}
	return out
}

// Len returns the number of nodes, root included.
func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.nodes)
}

// Contains reports whether n addresses a node of g.
func (g *Graph) Contains(n NodeIndex) bool {
	return g != nil && n >= 0 && int(n) < len(g.nodes)
}

// Clip returns the resolved clip at n.
func (g *Graph) Clip(n NodeIndex) (Clip, bool) {
	if !g.Contains(n) || g.nodes[n].clip == nil {
		return Clip{}, false
	}
	return g.nodes[n].clip.Get()
}

// Weight returns the effective node weight: its own weight times every
// ancestor's.
func (g *Graph) Weight(n NodeIndex) float32 {
	if !g.Contains(n) {
		return 0
	}
	w := float32(1)
	for n >= 0 {
		w *= g.nodes[n].weight
		n = g.nodes[n].parent
	}
	return w
}
