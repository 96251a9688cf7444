// Package boolean implements the planar boolean engine of spec §4.F:
// union, subtract and intersect over bodies whose faces are planar or
// carry a bounding planar projection.
//
// What:
//   - Every live planar face of one operand is tested against the
//     candidate faces of the other (pruned by an R-tree of bounding
//     boxes, faceintersect.go/rtree.go) via a genuine plane-plane
//     intersection: computeFaceIntersection's closed-form pierce line,
//     clipped to the 3D interval each face's own boundary confines it
//     to, so the cutting geometry comes from the two faces actually
//     involved rather than from one operand's whole boundary. Coplanar
//     faces go through a separate 2D polygon-overlap handler. Each real
//     pierce segment becomes one local clipping half-space, oriented by
//     sampling which side is inside the other body.
//   - A face with no pierce segments against it is carried through
//     whole — reassigned into the result shell without rebuilding its
//     topology, so holes, p-curves and curved surfaces on an untouched
//     face survive unchanged — or dropped, decided by a ray-cast
//     point-in-polyhedron test against the other body's actual
//     boundary (classify.go), not by a convexity-assuming half-space
//     test. A face that IS pierced is re-cut into new planar sub-faces
//     by Sutherland-Hodgman clipping against its derived local
//     half-spaces.
//   - Cylindrical, toroidal and conical faces are never split; they are
//     classified wholesale by a centroid ray-cast against the other
//     body's actual boundary and kept or dropped (spec §4.F "carried
//     through unchanged when they do not intersect" — the one scope
//     narrowing spec.md itself authorizes).
//
// Why:
//   - An operand's interior cannot be modeled as the intersection of
//     its own faces' half-spaces except when that operand is convex; a
//     chained boolean (spec §1's motivating "subsequent cuts" scenario)
//     routinely hands this engine a non-convex operand as the very next
//     input. Deriving both the cutting geometry and the inside/outside
//     test from the bodies' actual boundaries, rather than from a
//     convex approximation of one, is what makes the engine correct for
//     that case; see DESIGN.md's boolean entry for the remaining,
//     spec-described scope limits (coplanar overlap construction exact
//     for convex overlap regions; one local half-space per pairwise
//     pierce segment rather than a full multi-cut arrangement).
//
// Errors:
//   - KindInvalidInput for a missing/deleted operand body.
//   - KindDegenerate when an operation leaves the result body with
//     zero surviving faces (the whole body would vanish).
package boolean
