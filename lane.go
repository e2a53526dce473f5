package odr2gml

// Lane is a single lane of a lane section with its reconstructed width and
// height offset functions. Width and height offsets are defined on the lane
// section local curve position domain.
type Lane struct {
	ID                LaneIdentifier
	Width             UnivariateFunction
	InnerHeightOffset UnivariateFunction
	OuterHeightOffset UnivariateFunction
	Level             bool
	Type              string
	Attributes        *AttributeList
}
