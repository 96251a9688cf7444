package stepio

import (
	"github.com/brepkit/kernel/naming"
	"github.com/brepkit/kernel/numeric"
	"github.com/brepkit/kernel/tess"
)

// edgeKey identifies an undirected edge by its two endpoint positions,
// position order-independent so a triangle walking the edge in either
// direction looks it up the same way.
type edgeKey struct {
	a, b numeric.Vec3
}

func newEdgeKey(p, q numeric.Vec3) edgeKey {
	if vecLess(p, q) {
		return edgeKey{p, q}
	}
	return edgeKey{q, p}
}

// cachedEdge is an already-emitted EDGE_CURVE plus the position its
// EdgeStart actually resolves to, so a later caller walking the same
// edge in the opposite direction can tell SameSense apart from
// reversed without re-deriving it from edgeKey's canonical order.
type cachedEdge struct {
	id    int
	start numeric.Vec3
}

func vecLess(a, b numeric.Vec3) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}

// converter turns a tess.Mesh triangle soup into STEP entities, one
// ADVANCED_FACE per triangle, deduplicating CARTESIAN_POINT, DIRECTION,
// VERTEX_POINT and EDGE_CURVE entities by value/position so a welded
// mesh doesn't re-emit a point, vertex or edge per triangle corner
// that touches it.
type converter struct {
	entities  []Entity
	idCounter int

	pointCache  map[numeric.Vec3]int
	dirCache    map[numeric.Vec3]int
	vertexCache map[numeric.Vec3]int
	edgeCache   map[edgeKey]cachedEdge

	Logger func(string, ...any)
}

func newConverter() *converter {
	return &converter{
		entities:    make([]Entity, 0),
		idCounter:   1,
		pointCache:  make(map[numeric.Vec3]int),
		dirCache:    make(map[numeric.Vec3]int),
		vertexCache: make(map[numeric.Vec3]int),
		edgeCache:   make(map[edgeKey]cachedEdge),
		Logger:      func(string, ...any) {},
	}
}

func (c *converter) addEntity(e Entity) int {
	e.SetID(c.idCounter)
	c.entities = append(c.entities, e)
	c.idCounter++
	return e.ID()
}

func (c *converter) getOrCreatePoint(p numeric.Vec3) int {
	if id, ok := c.pointCache[p]; ok {
		return id
	}
	id := c.addEntity(&CartesianPoint{Coordinates: []float64{p.X, p.Y, p.Z}})
	c.pointCache[p] = id
	return id
}

func (c *converter) getOrCreateDirection(d numeric.Vec3) int {
	d = d.Normalize()
	if id, ok := c.dirCache[d]; ok {
		return id
	}
	id := c.addEntity(&Direction{DirectionRatios: []float64{d.X, d.Y, d.Z}})
	c.dirCache[d] = id
	return id
}

func (c *converter) createAxis2Placement(origin, zAxis, xAxis numeric.Vec3) int {
	return c.addEntity(&Axis2Placement3D{
		Location:     c.getOrCreatePoint(origin),
		Axis:         c.getOrCreateDirection(zAxis),
		RefDirection: c.getOrCreateDirection(xAxis),
	})
}

// createVertexPoint returns the VERTEX_POINT for p, reusing the one
// already emitted for any earlier corner at the same position: the
// tessellator (tess/body.go) appends a fresh position per triangle
// fan within a face but does not weld across faces, so without this
// cache every shared body edge would get a VERTEX_POINT per adjoining
// triangle instead of one.
func (c *converter) createVertexPoint(p numeric.Vec3) int {
	if id, ok := c.vertexCache[p]; ok {
		return id
	}
	id := c.addEntity(&VertexPoint{VertexGeometry: c.getOrCreatePoint(p)})
	c.vertexCache[p] = id
	return id
}

// createEdgeCurve returns the EDGE_CURVE for the undirected segment
// (v1,v2), building it once and reusing it for the second triangle
// that walks the same body edge in the opposite direction — the
// faceted analogue of the half-edge/twin pairing the topology store
// (brep.HalfEdge) already keeps for analytic edges, so a shared facet
// edge is one curve referenced by two oppositely-oriented
// ORIENTED_EDGEs rather than two independent curves occupying the
// same line. forward reports whether v1 is the curve's EdgeStart.
func (c *converter) createEdgeCurve(v1, v2 numeric.Vec3) (id int, forward bool) {
	key := newEdgeKey(v1, v2)
	if cached, ok := c.edgeCache[key]; ok {
		return cached.id, cached.start == v1
	}

	v1ID := c.createVertexPoint(v1)
	v2ID := c.createVertexPoint(v2)

	dir := v2.Sub(v1)
	length := dir.Length()
	if length > 0 {
		dir = dir.Scale(1 / length)
	}
	dirID := c.getOrCreateDirection(dir)
	vectorID := c.addEntity(&Vector{Orientation: dirID, Magnitude: length})
	lineID := c.addEntity(&Line{Pnt: c.getOrCreatePoint(v1), Dir: vectorID})

	id = c.addEntity(&EdgeCurve{EdgeStart: v1ID, EdgeEnd: v2ID, EdgeGeometry: lineID, SameSense: true})
	c.edgeCache[key] = cachedEdge{id: id, start: v1}
	return id, true
}

// createTriangleFace emits an ADVANCED_FACE bounded by a 3-edge loop on
// a PLANE through v0/v1/v2; normal carries the tessellator's own
// per-vertex normal average rather than a freshly recomputed
// cross-product, so a face whose winding the tessellator already
// fixed up stays consistent here. Each ORIENTED_EDGE's Orientation
// reflects whether this triangle walks its (shared, cached) EDGE_CURVE
// forward or backward, so the neighboring triangle across a facet
// edge gets Orientation false on the same curve instead of a second
// curve running the other way.
func (c *converter) createTriangleFace(v0, v1, v2, normal numeric.Vec3) int {
	edge1, fwd1 := c.createEdgeCurve(v0, v1)
	edge2, fwd2 := c.createEdgeCurve(v1, v2)
	edge3, fwd3 := c.createEdgeCurve(v2, v0)

	oe1 := c.addEntity(&OrientedEdge{EdgeElement: edge1, Orientation: fwd1})
	oe2 := c.addEntity(&OrientedEdge{EdgeElement: edge2, Orientation: fwd2})
	oe3 := c.addEntity(&OrientedEdge{EdgeElement: edge3, Orientation: fwd3})

	loopID := c.addEntity(&EdgeLoop{EdgeList: []int{oe1, oe2, oe3}})
	boundID := c.addEntity(&FaceOuterBound{Bound: loopID, Orientation: true})

	xAxis := v1.Sub(v0)
	if l := xAxis.Length(); l > 0 {
		xAxis = xAxis.Scale(1 / l)
	} else {
		xAxis = numeric.UnitX
	}
	planeAxisID := c.createAxis2Placement(v0, normal, xAxis)
	planeID := c.addEntity(&Plane{Position: planeAxisID})

	return c.addEntity(&AdvancedFace{Bounds: []int{boundID}, FaceGeometry: planeID, SameSense: true})
}

// convertMesh walks mesh's flat triangle soup, skipping triangles with
// an area below 1e-12, and assembles the full PRODUCT/PRODUCT_DEFINITION/
// ADVANCED_BREP_SHAPE_REPRESENTATION scaffold the teacher's writer
// already established, returning the finished entity list.
func (c *converter) convertMesh(mesh tess.Mesh, name string, lengthTol float64, history []naming.EvolutionMapping) []Entity {
	c.Logger("stepio: converting %d triangles", mesh.TriangleCount())

	appContextID := c.addEntity(&ApplicationContext{Application: "brepkit/kernel stepio"})
	lengthUnitID := c.addEntity(&LengthUnit{})
	planeAngleUnitID := c.addEntity(&PlaneAngleUnit{})
	solidAngleUnitID := c.addEntity(&SolidAngleUnit{})

	uncertaintyID := c.addEntity(&UncertaintyMeasureWithUnit{
		Value:       lengthTol,
		Unit:        lengthUnitID,
		Name:        "DISTANCE_ACCURACY_VALUE",
		Description: "Maximum model space distance between geometric entities",
	})

	geomContextID := c.addEntity(&GeometricRepresentationContext{
		ContextType:              "3D",
		CoordinateSpaceDimension: 3,
		Uncertainty:              []int{uncertaintyID},
		Units:                    []int{lengthUnitID, planeAngleUnitID, solidAngleUnitID},
	})

	productContextID := c.addEntity(&ProductContext{FrameOfReference: appContextID, DisciplineType: "mechanical"})
	description := "brepkit/kernel tessellated export"
	if len(history) > 0 {
		description = "brepkit/kernel tessellated export with naming history"
	}
	productID := c.addEntity(&Product{Name: name, Description: description, FrameOfReference: []int{productContextID}})
	pdfID := c.addEntity(&ProductDefinitionFormation{OfProduct: productID})
	pdcID := c.addEntity(&ProductDefinitionContext{FrameOfReference: appContextID, LifeCycleStage: "design"})
	pdID := c.addEntity(&ProductDefinition{Formation: pdfID, FrameOfReference: pdcID})
	pdsID := c.addEntity(&ProductDefinitionShape{Definition: pdID})

	faceIDs := make([]int, 0, mesh.TriangleCount())
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		a, b, c2 := mesh.Indices[i], mesh.Indices[i+1], mesh.Indices[i+2]
		v0 := vertexAt(mesh, a)
		v1 := vertexAt(mesh, b)
		v2 := vertexAt(mesh, c2)
		if triangleArea(v0, v1, v2) < 1e-12 {
			continue
		}
		normal := normalAt(mesh, a).Add(normalAt(mesh, b)).Add(normalAt(mesh, c2))
		if l := normal.Length(); l > 0 {
			normal = normal.Scale(1 / l)
		} else {
			normal = numeric.UnitZ
		}
		faceIDs = append(faceIDs, c.createTriangleFace(v0, v1, v2, normal))
	}

	shellID := c.addEntity(&ClosedShell{Faces: faceIDs})
	brepID := c.addEntity(&ManifoldSolidBrep{Outer: shellID})

	placementID := c.createAxis2Placement(numeric.Vec3{}, numeric.UnitZ, numeric.UnitX)
	advBrepID := c.addEntity(&AdvancedBrepShapeRepresentation{Items: []int{brepID, placementID}, ContextOfItems: geomContextID})
	c.addEntity(&ShapeDefinitionRepresentation{Definition: pdsID, UsedRepresentation: advBrepID})

	c.Logger("stepio: emitted %d entities for %d faces", len(c.entities), len(faceIDs))
	return c.entities
}

func vertexAt(mesh tess.Mesh, idx uint32) numeric.Vec3 {
	i := int(idx) * 3
	return numeric.Vec3{X: float64(mesh.Positions[i]), Y: float64(mesh.Positions[i+1]), Z: float64(mesh.Positions[i+2])}
}

func normalAt(mesh tess.Mesh, idx uint32) numeric.Vec3 {
	i := int(idx) * 3
	return numeric.Vec3{X: float64(mesh.Normals[i]), Y: float64(mesh.Normals[i+1]), Z: float64(mesh.Normals[i+2])}
}

func triangleArea(v0, v1, v2 numeric.Vec3) float64 {
	return v1.Sub(v0).Cross(v2.Sub(v0)).Length() * 0.5
}
