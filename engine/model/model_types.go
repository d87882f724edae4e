package model

// Vertex is a single mesh vertex in model space.
type Vertex struct {
	// Position is the vertex location in model space.
	Position [3]float32

	// Normal is the unit surface normal at the vertex.
	Normal [3]float32
}

// Kind identifies which procedural primitive produced a Model.
type Kind int

const (
	KindCustom Kind = iota
	KindPlane
	KindBox
	KindCylinder
	KindTube
)

// String returns the lower-case primitive name.
func (k Kind) String() string {
	switch k {
	case KindPlane:
		return "plane"
	case KindBox:
		return "box"
	case KindCylinder:
		return "cylinder"
	case KindTube:
		return "tube"
	default:
		return "custom"
	}
}
