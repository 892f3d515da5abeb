package common

// Logical resolution of the windowed host. The world is drawn 1:1 in these
// units and the camera scrolls horizontally.
const (
	BaseWidth  = 960
	BaseHeight = 540
)
