// Package stepio writes a tessellated body as a STEP AP214 faceted BREP:
// one ADVANCED_FACE per triangle, wired through the same
// CARTESIAN_POINT/DIRECTION/EDGE_CURVE vocabulary a real kernel's
// analytic-surface export would use, just specialized to planar
// triangle facets (SPEC_FULL.md "io/stepio").
package stepio

import (
	"fmt"
	"strings"
)

// Entity is anything that can appear in a STEP DATA section line.
type Entity interface {
	ID() int
	SetID(int)
	String() string
}

type BaseEntity struct {
	id int
}

func (e *BaseEntity) ID() int      { return e.id }
func (e *BaseEntity) SetID(id int) { e.id = id }

type ApplicationContext struct {
	BaseEntity
	Application string
}

func (e *ApplicationContext) String() string {
	return fmt.Sprintf("#%d=APPLICATION_CONTEXT('%s');", e.id, e.Application)
}

type Product struct {
	BaseEntity
	Name             string
	Description      string
	FrameOfReference []int
}

func (e *Product) String() string {
	return fmt.Sprintf("#%d=PRODUCT('','%s','%s',(%s));", e.id, e.Name, e.Description, formatRefs(e.FrameOfReference))
}

type ProductContext struct {
	BaseEntity
	Name             string
	FrameOfReference int
	DisciplineType   string
}

func (e *ProductContext) String() string {
	return fmt.Sprintf("#%d=PRODUCT_CONTEXT('%s',#%d,'%s');", e.id, e.Name, e.FrameOfReference, e.DisciplineType)
}

type ProductDefinitionFormation struct {
	BaseEntity
	Description string
	OfProduct   int
}

func (e *ProductDefinitionFormation) String() string {
	return fmt.Sprintf("#%d=PRODUCT_DEFINITION_FORMATION('','%s',#%d);", e.id, e.Description, e.OfProduct)
}

type ProductDefinitionContext struct {
	BaseEntity
	Name             string
	FrameOfReference int
	LifeCycleStage   string
}

func (e *ProductDefinitionContext) String() string {
	return fmt.Sprintf("#%d=PRODUCT_DEFINITION_CONTEXT('%s',#%d,'%s');", e.id, e.Name, e.FrameOfReference, e.LifeCycleStage)
}

type ProductDefinition struct {
	BaseEntity
	Description      string
	Formation        int
	FrameOfReference int
}

func (e *ProductDefinition) String() string {
	return fmt.Sprintf("#%d=PRODUCT_DEFINITION('','%s',#%d,#%d);", e.id, e.Description, e.Formation, e.FrameOfReference)
}

type ProductDefinitionShape struct {
	BaseEntity
	Name        string
	Description string
	Definition  int
}

func (e *ProductDefinitionShape) String() string {
	return fmt.Sprintf("#%d=PRODUCT_DEFINITION_SHAPE('%s','%s',#%d);", e.id, e.Name, e.Description, e.Definition)
}

type ShapeDefinitionRepresentation struct {
	BaseEntity
	Definition         int
	UsedRepresentation int
}

func (e *ShapeDefinitionRepresentation) String() string {
	return fmt.Sprintf("#%d=SHAPE_DEFINITION_REPRESENTATION(#%d,#%d);", e.id, e.Definition, e.UsedRepresentation)
}

type AdvancedBrepShapeRepresentation struct {
	BaseEntity
	Name           string
	Items          []int
	ContextOfItems int
}

func (e *AdvancedBrepShapeRepresentation) String() string {
	return fmt.Sprintf("#%d=ADVANCED_BREP_SHAPE_REPRESENTATION('%s',(%s),#%d);", e.id, e.Name, formatRefs(e.Items), e.ContextOfItems)
}

type ManifoldSolidBrep struct {
	BaseEntity
	Name  string
	Outer int
}

func (e *ManifoldSolidBrep) String() string {
	return fmt.Sprintf("#%d=MANIFOLD_SOLID_BREP('%s',#%d);", e.id, e.Name, e.Outer)
}

type ClosedShell struct {
	BaseEntity
	Name  string
	Faces []int
}

func (e *ClosedShell) String() string {
	return fmt.Sprintf("#%d=CLOSED_SHELL('%s',(%s));", e.id, e.Name, formatRefs(e.Faces))
}

type AdvancedFace struct {
	BaseEntity
	Name         string
	Bounds       []int
	FaceGeometry int
	SameSense    bool
}

func (e *AdvancedFace) String() string {
	return fmt.Sprintf("#%d=ADVANCED_FACE('%s',(%s),#%d,%s);", e.id, e.Name, formatRefs(e.Bounds), e.FaceGeometry, formatBool(e.SameSense))
}

type FaceOuterBound struct {
	BaseEntity
	Name        string
	Bound       int
	Orientation bool
}

func (e *FaceOuterBound) String() string {
	return fmt.Sprintf("#%d=FACE_OUTER_BOUND('%s',#%d,%s);", e.id, e.Name, e.Bound, formatBool(e.Orientation))
}

type EdgeLoop struct {
	BaseEntity
	Name     string
	EdgeList []int
}

func (e *EdgeLoop) String() string {
	return fmt.Sprintf("#%d=EDGE_LOOP('%s',(%s));", e.id, e.Name, formatRefs(e.EdgeList))
}

type OrientedEdge struct {
	BaseEntity
	Name        string
	EdgeElement int
	Orientation bool
}

func (e *OrientedEdge) String() string {
	return fmt.Sprintf("#%d=ORIENTED_EDGE('%s',*,*,#%d,%s);", e.id, e.Name, e.EdgeElement, formatBool(e.Orientation))
}

type EdgeCurve struct {
	BaseEntity
	Name         string
	EdgeStart    int
	EdgeEnd      int
	EdgeGeometry int
	SameSense    bool
}

func (e *EdgeCurve) String() string {
	return fmt.Sprintf("#%d=EDGE_CURVE('%s',#%d,#%d,#%d,%s);", e.id, e.Name, e.EdgeStart, e.EdgeEnd, e.EdgeGeometry, formatBool(e.SameSense))
}

type VertexPoint struct {
	BaseEntity
	Name           string
	VertexGeometry int
}

func (e *VertexPoint) String() string {
	return fmt.Sprintf("#%d=VERTEX_POINT('%s',#%d);", e.id, e.Name, e.VertexGeometry)
}

type CartesianPoint struct {
	BaseEntity
	Name        string
	Coordinates []float64
}

func (e *CartesianPoint) String() string {
	return fmt.Sprintf("#%d=CARTESIAN_POINT('%s',(%s));", e.id, e.Name, formatFloats(e.Coordinates))
}

type Direction struct {
	BaseEntity
	Name            string
	DirectionRatios []float64
}

func (e *Direction) String() string {
	return fmt.Sprintf("#%d=DIRECTION('%s',(%s));", e.id, e.Name, formatFloats(e.DirectionRatios))
}

type Vector struct {
	BaseEntity
	Name        string
	Orientation int
	Magnitude   float64
}

func (e *Vector) String() string {
	return fmt.Sprintf("#%d=VECTOR('%s',#%d,%.6f);", e.id, e.Name, e.Orientation, e.Magnitude)
}

type Axis2Placement3D struct {
	BaseEntity
	Name         string
	Location     int
	Axis         int
	RefDirection int
}

func (e *Axis2Placement3D) String() string {
	return fmt.Sprintf("#%d=AXIS2_PLACEMENT_3D('%s',#%d,#%d,#%d);", e.id, e.Name, e.Location, e.Axis, e.RefDirection)
}

type Line struct {
	BaseEntity
	Name string
	Pnt  int
	Dir  int
}

func (e *Line) String() string {
	return fmt.Sprintf("#%d=LINE('%s',#%d,#%d);", e.id, e.Name, e.Pnt, e.Dir)
}

type Plane struct {
	BaseEntity
	Name     string
	Position int
}

func (e *Plane) String() string {
	return fmt.Sprintf("#%d=PLANE('%s',#%d);", e.id, e.Name, e.Position)
}

// GeometricRepresentationContext is the complex
// (REPRESENTATION_CONTEXT / GLOBAL_UNIT_ASSIGNED_CONTEXT /
// GLOBAL_UNCERTAINTY_ASSIGNED_CONTEXT) entity every ADVANCED_BREP
// representation is hung off of.
type GeometricRepresentationContext struct {
	BaseEntity
	ContextIdentifier        string
	ContextType              string
	CoordinateSpaceDimension int
	Uncertainty              []int
	Units                    []int
}

func (e *GeometricRepresentationContext) String() string {
	parts := []string{
		fmt.Sprintf("GEOMETRIC_REPRESENTATION_CONTEXT(%d)", e.CoordinateSpaceDimension),
		fmt.Sprintf("GLOBAL_UNCERTAINTY_ASSIGNED_CONTEXT((%s))", formatRefs(e.Uncertainty)),
		fmt.Sprintf("GLOBAL_UNIT_ASSIGNED_CONTEXT((%s))", formatRefs(e.Units)),
		fmt.Sprintf("REPRESENTATION_CONTEXT('%s','%s')", e.ContextIdentifier, e.ContextType),
	}
	return fmt.Sprintf("#%d=(%s);", e.id, strings.Join(parts, "\n"))
}

type UncertaintyMeasureWithUnit struct {
	BaseEntity
	Value       float64
	Unit        int
	Name        string
	Description string
}

func (e *UncertaintyMeasureWithUnit) String() string {
	return fmt.Sprintf("#%d=UNCERTAINTY_MEASURE_WITH_UNIT(LENGTH_MEASURE(%.6E),#%d,'%s','%s');", e.id, e.Value, e.Unit, e.Name, e.Description)
}

type LengthUnit struct{ BaseEntity }

func (e *LengthUnit) String() string {
	return fmt.Sprintf("#%d=(LENGTH_UNIT()\nNAMED_UNIT(*)\nSI_UNIT(.MILLI.,.METRE.));", e.id)
}

type PlaneAngleUnit struct{ BaseEntity }

func (e *PlaneAngleUnit) String() string {
	return fmt.Sprintf("#%d=(NAMED_UNIT(*)\nPLANE_ANGLE_UNIT()\nSI_UNIT($,.RADIAN.));", e.id)
}

type SolidAngleUnit struct{ BaseEntity }

func (e *SolidAngleUnit) String() string {
	return fmt.Sprintf("#%d=(NAMED_UNIT(*)\nSI_UNIT($,.STERADIAN.)\nSOLID_ANGLE_UNIT());", e.id)
}

func formatRefs(refs []int) string {
	strs := make([]string, len(refs))
	for i, ref := range refs {
		strs[i] = fmt.Sprintf("#%d", ref)
	}
	return strings.Join(strs, ",")
}

func formatFloats(vals []float64) string {
	strs := make([]string, len(vals))
	for i, val := range vals {
		strs[i] = fmt.Sprintf("%.6f", val)
	}
	return strings.Join(strs, ",")
}

func formatBool(b bool) string {
	if b {
		return ".T."
	}
	return ".F."
}
