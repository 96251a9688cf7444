package naming

import "fmt"

// birthKey identifies a birth record: the feature that created the
// sub-shape plus the selector distinguishing it among that feature's
// other sub-shapes.
type birthKey struct {
	feature FeatureID
	sel     string
}

// stepRecord is one recorded boolean/feature step: an ordered list of
// EvolutionMappings plus the step that produced them (spec §3.5 "every
// operation appends to the evolution map; nothing is ever rewritten").
type stepRecord struct {
	id       StepID
	mappings []EvolutionMapping
}

// Tracker is the persistent-naming engine (spec §3.5/§4.G): it
// allocates FeatureID/StepID, records each feature's initial births and
// each step's evolution mappings, and resolves a PersistentRef forward
// through that history to find the current sub-shape(s) it refers to.
//
// Tracker never touches brep.Model directly; callers pass SubshapeRef
// values built from their own handles, keeping this package free of an
// import cycle back to brep.
type Tracker struct {
	nextFeature FeatureID
	nextStep    StepID

	births map[birthKey]SubshapeRef
	// bySubshape is the reverse index: given a live ref, which birth
	// (feature, selector) produced it — needed by LookupRefForSubshape.
	bySubshape map[SubshapeRef]PersistentRef

	steps []stepRecord

	// bodyRemap maps an old body id to its replacement when a whole
	// body is rebuilt in place (spec §3.5 "UpdateBodyMapping"), keyed
	// by the old body id and valid for any SubshapeRef.Body matching it.
	bodyRemap map[int]int

	weights    Weights
	charLength float64
}

// NewTracker returns an empty Tracker. charLength is the characteristic
// length used to normalize centroid distances in fingerprint
// disambiguation (spec §4.G); pass the diagonal of the model's bounding
// box, or 1 if unknown.
func NewTracker(charLength float64) *Tracker {
	if charLength <= 0 {
		charLength = 1
	}
	return &Tracker{
		births:     make(map[birthKey]SubshapeRef),
		bySubshape: make(map[SubshapeRef]PersistentRef),
		bodyRemap:  make(map[int]int),
		weights:    DefaultWeights(),
		charLength: charLength,
	}
}

// SetWeights overrides the fingerprint-distance weights used by
// Resolve's split disambiguation.
func (t *Tracker) SetWeights(w Weights) { t.weights = w }

// AllocateFeatureID returns the next unused FeatureID.
func (t *Tracker) AllocateFeatureID() FeatureID {
	id := t.nextFeature
	t.nextFeature++
	return id
}

// AllocateStepID returns the next unused StepID.
func (t *Tracker) AllocateStepID() StepID {
	id := t.nextStep
	t.nextStep++
	return id
}

// RecordBirth registers that feature originated ref under selector
// (spec §3.5: "a feature operator registers a Selector for every
// sub-shape it creates, in a fixed declared order"). fp may be nil for
// sub-shapes the caller does not want fingerprint-disambiguated.
func (t *Tracker) RecordBirth(feature FeatureID, sel Selector, ref SubshapeRef, fp *Fingerprint) {
	key := birthKey{feature: feature, sel: sel.Key()}
	t.births[key] = ref
	t.bySubshape[ref] = PersistentRef{
		OriginFeatureID: feature,
		Selector:        sel,
		ExpectedType:    ref.Kind,
		Fingerprint:     fp,
	}
}

// RecordStep appends an evolution step (spec §3.5: boolean and later
// feature operators record Old -> News[] with a Tag for every sub-shape
// touched). A sub-shape that appears in no mapping of a step is treated
// by Resolve as unchanged across that step.
func (t *Tracker) RecordStep(id StepID, mappings []EvolutionMapping) {
	t.steps = append(t.steps, stepRecord{id: id, mappings: mappings})
	for _, m := range mappings {
		if len(m.News) != 1 {
			continue
		}
		if pref, ok := t.bySubshape[m.Old]; ok {
			delete(t.bySubshape, m.Old)
			t.bySubshape[m.News[0]] = pref
		}
	}
}

// UpdateBodyMapping records that every SubshapeRef with Body==oldBody
// should now be looked up under newBody (spec §3.5: a body-level
// rebuild, e.g. a boolean result replacing both operands' bodies with
// one result body).
func (t *Tracker) UpdateBodyMapping(oldBody, newBody int) {
	t.bodyRemap[oldBody] = newBody
}

func (t *Tracker) resolvedBody(body int) int {
	seen := map[int]bool{}
	for {
		next, ok := t.bodyRemap[body]
		if !ok || seen[body] {
			return body
		}
		seen[body] = true
		body = next
	}
}

// ResolveStatus classifies a Resolve outcome (spec §3.5's "Found /
// NotFound / Ambiguous").
type ResolveStatus int

const (
	ResolveFound ResolveStatus = iota
	ResolveNotFound
	ResolveAmbiguous
)

// ResolveResult is the outcome of Resolve.
type ResolveResult struct {
	Status     ResolveStatus
	Ref        SubshapeRef   // valid when Status == ResolveFound
	Candidates []SubshapeRef // valid when Status == ResolveAmbiguous
}

// Resolve walks a PersistentRef forward through every recorded step to
// find the live sub-shape(s) it now names (spec §3.5/§4.G). The walk:
//
//  1. Looks up the ref's birth by (OriginFeatureID, Selector.Key()).
//     Missing birth is NotFound — the reference predates any feature
//     this tracker knows about, or the selector never existed.
//  2. Replays every recorded step in order. At each step, if the
//     current ref appears as an Old side of a mapping:
//       - TagDeath: the sub-shape is gone -> NotFound.
//       - TagUnchanged, TagModify, TagMerge: follow the single News[0].
//       - TagSplit: multiple candidates. If pref carries a Fingerprint,
//         compute FingerprintDistance against each candidate's own
//         recorded fingerprint (via bySubshape) and pick the
//         unambiguous nearest if it is closer than the runner-up by at
//         least a 2x margin; otherwise return Ambiguous with every
//         candidate.
//  3. After replaying all steps, remaps the surviving ref's Body
//     through bodyRemap (a body rebuild may not itself appear as an
//     explicit per-subshape mapping).
func (t *Tracker) Resolve(pref PersistentRef) ResolveResult {
	key := birthKey{feature: pref.OriginFeatureID, sel: pref.Selector.Key()}
	cur, ok := t.births[key]
	if !ok {
		return ResolveResult{Status: ResolveNotFound}
	}

	for _, step := range t.steps {
		var mapping *EvolutionMapping
		for i := range step.mappings {
			if step.mappings[i].Old == cur {
				mapping = &step.mappings[i]
				break
			}
		}
		if mapping == nil {
			continue
		}
		switch mapping.Tag {
		case TagDeath:
			return ResolveResult{Status: ResolveNotFound}
		case TagUnchanged, TagModify, TagMerge:
			if len(mapping.News) != 1 {
				return ResolveResult{Status: ResolveNotFound}
			}
			cur = mapping.News[0]
		case TagSplit:
			winner, ambiguous := t.disambiguateSplit(pref, mapping.News)
			if ambiguous {
				return ResolveResult{Status: ResolveAmbiguous, Candidates: mapping.News}
			}
			cur = winner
		default:
			return ResolveResult{Status: ResolveNotFound}
		}
	}

	cur.Body = t.resolvedBody(cur.Body)
	return ResolveResult{Status: ResolveFound, Ref: cur}
}

// disambiguateSplit picks the single candidate closest to pref's
// fingerprint, by at least a 2x margin over the runner-up. It reports
// ambiguous when pref has no fingerprint, a candidate lacks a recorded
// fingerprint, or no candidate clears the margin.
func (t *Tracker) disambiguateSplit(pref PersistentRef, candidates []SubshapeRef) (SubshapeRef, bool) {
	if pref.Fingerprint == nil || len(candidates) == 0 {
		return SubshapeRef{}, true
	}
	dists := make([]float64, len(candidates))
	for i, c := range candidates {
		cp, ok := t.bySubshape[c]
		if !ok || cp.Fingerprint == nil {
			return SubshapeRef{}, true
		}
		dists[i] = FingerprintDistance(*pref.Fingerprint, *cp.Fingerprint, t.weights, t.charLength)
	}
	bestIdx := 0
	for i, d := range dists {
		if d < dists[bestIdx] {
			bestIdx = i
		}
	}
	if len(candidates) == 1 {
		return candidates[0], false
	}
	secondBest := -1.0
	for i, d := range dists {
		if i == bestIdx {
			continue
		}
		if secondBest < 0 || d < secondBest {
			secondBest = d
		}
	}
	if dists[bestIdx] == 0 {
		return candidates[bestIdx], false
	}
	if secondBest/dists[bestIdx] >= 2.0 {
		return candidates[bestIdx], false
	}
	return SubshapeRef{}, true
}

// LookupRefForSubshape returns the PersistentRef a currently-live
// sub-shape was last known under, if any — the inverse direction from
// Resolve, used when the caller wants to persist a selection the user
// just made in the live model rather than resolve an existing one.
func (t *Tracker) LookupRefForSubshape(ref SubshapeRef) (PersistentRef, bool) {
	ref.Body = t.resolvedBody(ref.Body)
	pref, ok := t.bySubshape[ref]
	return pref, ok
}

func (k birthKey) String() string {
	return fmt.Sprintf("feature#%d/%s", k.feature, k.sel)
}
