package odr2gml

// Roadspace is the read-only geometric model of a whole road network
type Roadspace struct {
	Name  string
	roads map[RoadspaceIdentifier]*Road
	order []RoadspaceIdentifier
}

// NewRoadspace returns roadspace over given roads, preserving their order
func NewRoadspace(name string, roads []*Road) (*Roadspace, error) {
	roadMap := make(map[RoadspaceIdentifier]*Road, len(roads))
	order := make([]RoadspaceIdentifier, 0, len(roads))
	for _, road := range roads {
		if _, ok := roadMap[road.ID]; ok {
			return nil, newIllegalState("duplicated road id '%s'", road.ID.RoadID)
		}
		roadMap[road.ID] = road
		order = append(order, road.ID)
	}
	return &Roadspace{Name: name, roads: roadMap, order: order}, nil
}

// Road returns the road with given identifier
func (rs *Roadspace) Road(id RoadspaceIdentifier) (*Road, error) {
	road, ok := rs.roads[id]
	if !ok {
		return nil, &NotFoundError{What: "road", ID: id.RoadID}
	}
	return road, nil
}

// Roads returns all roads in input order
func (rs *Roadspace) Roads() []*Road {
	roads := make([]*Road, 0, len(rs.order))
	for _, id := range rs.order {
		roads = append(roads, rs.roads[id])
	}
	return roads
}

// NumRoads returns number of roads in the model
func (rs *Roadspace) NumRoads() int {
	return len(rs.roads)
}
