package naming

import (
	"testing"

	"github.com/brepkit/kernel/numeric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectorKeyIsOrderIndependent(t *testing.T) {
	a := Selector{Kind: SelExtrudeSide, Data: map[string]int{"segment": 2, "loop": 0}}
	b := Selector{Kind: SelExtrudeSide, Data: map[string]int{"loop": 0, "segment": 2}}
	assert.Equal(t, a.Key(), b.Key())
}

func TestRecordBirthAndResolveUnchanged(t *testing.T) {
	tr := NewTracker(10)
	feature := tr.AllocateFeatureID()
	sel := Selector{Kind: SelExtrudeTopCap, Data: map[string]int{"loop": 0}}
	ref := SubshapeRef{Kind: KindFace, Body: 1, ID: 7}
	tr.RecordBirth(feature, sel, ref, nil)

	pref, ok := tr.LookupRefForSubshape(ref)
	require.True(t, ok)

	result := tr.Resolve(pref)
	require.Equal(t, ResolveFound, result.Status)
	assert.Equal(t, ref, result.Ref)
}

func TestResolveFollowsModifyChain(t *testing.T) {
	tr := NewTracker(10)
	feature := tr.AllocateFeatureID()
	sel := Selector{Kind: SelExtrudeSide, Data: map[string]int{"segment": 0}}
	birth := SubshapeRef{Kind: KindFace, Body: 1, ID: 5}
	tr.RecordBirth(feature, sel, birth, nil)

	step1 := tr.AllocateStepID()
	mid := SubshapeRef{Kind: KindFace, Body: 1, ID: 9}
	tr.RecordStep(step1, []EvolutionMapping{
		{Old: birth, News: []SubshapeRef{mid}, Tag: TagModify},
	})

	step2 := tr.AllocateStepID()
	final := SubshapeRef{Kind: KindFace, Body: 2, ID: 3}
	tr.RecordStep(step2, []EvolutionMapping{
		{Old: mid, News: []SubshapeRef{final}, Tag: TagUnchanged},
	})

	pref := PersistentRef{OriginFeatureID: feature, Selector: sel, ExpectedType: KindFace}
	result := tr.Resolve(pref)
	require.Equal(t, ResolveFound, result.Status)
	assert.Equal(t, final, result.Ref)
}

func TestResolveDeathIsNotFound(t *testing.T) {
	tr := NewTracker(10)
	feature := tr.AllocateFeatureID()
	sel := Selector{Kind: SelExtrudeBottomCap}
	birth := SubshapeRef{Kind: KindFace, Body: 1, ID: 2}
	tr.RecordBirth(feature, sel, birth, nil)

	tr.RecordStep(tr.AllocateStepID(), []EvolutionMapping{
		{Old: birth, News: nil, Tag: TagDeath},
	})

	result := tr.Resolve(PersistentRef{OriginFeatureID: feature, Selector: sel})
	assert.Equal(t, ResolveNotFound, result.Status)
}

func TestResolveSplitDisambiguatesByFingerprint(t *testing.T) {
	tr := NewTracker(10)
	feature := tr.AllocateFeatureID()
	sel := Selector{Kind: SelPrimitiveFace, Data: map[string]int{"face": 0}}
	birth := SubshapeRef{Kind: KindFace, Body: 1, ID: 1}
	birthFP := &Fingerprint{Centroid: numeric.Vec3{X: 0, Y: 0, Z: 0}, Extent: 1}
	tr.RecordBirth(feature, sel, birth, birthFP)

	near := SubshapeRef{Kind: KindFace, Body: 1, ID: 2}
	far := SubshapeRef{Kind: KindFace, Body: 1, ID: 3}
	tr.RecordBirth(feature, Selector{Kind: SelPrimitiveFace, Data: map[string]int{"face": 1}}, near, &Fingerprint{Centroid: numeric.Vec3{X: 0.01}, Extent: 1})
	tr.RecordBirth(feature, Selector{Kind: SelPrimitiveFace, Data: map[string]int{"face": 2}}, far, &Fingerprint{Centroid: numeric.Vec3{X: 5}, Extent: 1})

	tr.RecordStep(tr.AllocateStepID(), []EvolutionMapping{
		{Old: birth, News: []SubshapeRef{near, far}, Tag: TagSplit},
	})

	pref := PersistentRef{OriginFeatureID: feature, Selector: sel, Fingerprint: birthFP}
	result := tr.Resolve(pref)
	require.Equal(t, ResolveFound, result.Status)
	assert.Equal(t, near, result.Ref)
}

func TestResolveSplitAmbiguousWithoutFingerprint(t *testing.T) {
	tr := NewTracker(10)
	feature := tr.AllocateFeatureID()
	sel := Selector{Kind: SelPrimitiveFace}
	birth := SubshapeRef{Kind: KindFace, Body: 1, ID: 1}
	tr.RecordBirth(feature, sel, birth, nil)

	a := SubshapeRef{Kind: KindFace, Body: 1, ID: 2}
	b := SubshapeRef{Kind: KindFace, Body: 1, ID: 3}
	tr.RecordStep(tr.AllocateStepID(), []EvolutionMapping{
		{Old: birth, News: []SubshapeRef{a, b}, Tag: TagSplit},
	})

	result := tr.Resolve(PersistentRef{OriginFeatureID: feature, Selector: sel})
	assert.Equal(t, ResolveAmbiguous, result.Status)
	assert.ElementsMatch(t, []SubshapeRef{a, b}, result.Candidates)
}

func TestUpdateBodyMappingRemapsResolvedBody(t *testing.T) {
	tr := NewTracker(10)
	feature := tr.AllocateFeatureID()
	sel := Selector{Kind: SelExtrudeTopCap}
	ref := SubshapeRef{Kind: KindFace, Body: 1, ID: 4}
	tr.RecordBirth(feature, sel, ref, nil)
	tr.UpdateBodyMapping(1, 2)

	result := tr.Resolve(PersistentRef{OriginFeatureID: feature, Selector: sel})
	require.Equal(t, ResolveFound, result.Status)
	assert.Equal(t, 2, result.Ref.Body)
}

func TestComputeFingerprintCentroidAndExtent(t *testing.T) {
	pts := []numeric.Vec3{
		{X: -1, Y: -1, Z: 0},
		{X: 1, Y: -1, Z: 0},
		{X: 1, Y: 1, Z: 0},
		{X: -1, Y: 1, Z: 0},
	}
	normal := numeric.UnitZ
	fp := ComputeFingerprint(pts, &normal, 4, 0)
	assert.InDelta(t, 0, fp.Centroid.X, 1e-9)
	assert.InDelta(t, 0, fp.Centroid.Y, 1e-9)
	assert.Greater(t, fp.Extent, 0.0)
	require.NotNil(t, fp.AdjacentCount)
	assert.Equal(t, 4, *fp.AdjacentCount)
}

func TestFingerprintDistanceZeroForIdentical(t *testing.T) {
	fp := Fingerprint{Centroid: numeric.Vec3{X: 1, Y: 2, Z: 3}, Extent: 2}
	assert.Equal(t, 0.0, FingerprintDistance(fp, fp, DefaultWeights(), 10))
}

func TestFingerprintDistanceGrowsWithCentroidOffset(t *testing.T) {
	a := Fingerprint{Centroid: numeric.Vec3{}, Extent: 1}
	near := Fingerprint{Centroid: numeric.Vec3{X: 0.1}, Extent: 1}
	far := Fingerprint{Centroid: numeric.Vec3{X: 5}, Extent: 1}
	w := DefaultWeights()
	assert.Less(t, FingerprintDistance(a, near, w, 10), FingerprintDistance(a, far, w, 10))
}
