package mlxml

// Destination locates the write target for one occurrence of a schema node.
// It replaces the source's raw pointer arithmetic (base + occurrence*stride)
// with an accessor closure supplied by the schema author, per spec's own
// redesign note: the closure knows statically how to place a value, so there
// is never a need for unsafe.Pointer offset math.
type Destination interface {
	// Resolve returns the write target for this occurrence. parentBase is
	// the target resolved for the enclosing element (or the caller's
	// top-level target at the root). discard reports that the caller
	// should validate but not store this occurrence's value.
	Resolve(parentBase any, occurrence uint32, ctx any) (target any, discard bool, err error)
}

type staticDestination struct {
	get func(occurrence uint32) any
}

func (d staticDestination) Resolve(_ any, occurrence uint32, _ any) (any, bool, error) {
	return d.get(occurrence), false, nil
}

// Static addresses a fixed storage site that does not depend on the parent,
// e.g. a package-level array or a field on a target the caller already owns.
func Static(get func(occurrence uint32) any) Destination {
	return staticDestination{get: get}
}

type relativeDestination struct {
	get func(parentBase any, occurrence uint32) any
}

func (d relativeDestination) Resolve(parentBase any, occurrence uint32, _ any) (any, bool, error) {
	return d.get(parentBase, occurrence), false, nil
}

// Relative addresses a field within the currently-constructed parent value,
// given the parent's own resolved target.
func Relative(get func(parentBase any, occurrence uint32) any) Destination {
	return relativeDestination{get: get}
}

type dynamicDestination struct {
	allocate    func(occurrence uint32, ctx any) (target any, ok bool)
	discardable bool
}

func (d dynamicDestination) Resolve(_ any, occurrence uint32, ctx any) (any, bool, error) {
	target, ok := d.allocate(occurrence, ctx)
	if ok && target != nil {
		return target, false, nil
	}
	if d.discardable {
		return nil, true, nil
	}
	return nil, false, ErrAllocationFailure
}

// Dynamic invokes allocate reentrantly to obtain storage for open-ended
// sequences (linked lists, heap-grown slices). allocate must not recurse
// back into Parse.
//
// A false ok or a nil target is treated as ErrAllocationFailure. Callers that
// intend either to mean "skip this occurrence" must build the destination with
// DynamicDiscardable instead (spec's open question on Dynamic's nil-return
// semantics, resolved explicitly rather than left to documentation).
func Dynamic(allocate func(occurrence uint32, ctx any) (target any, ok bool)) Destination {
	return dynamicDestination{allocate: allocate}
}

// DynamicDiscardable is Dynamic, except a false ok or a nil target means
// "validate this occurrence's content but do not store it", rather than
// failing the parse.
func DynamicDiscardable(allocate func(occurrence uint32, ctx any) (target any, ok bool)) Destination {
	return dynamicDestination{allocate: allocate, discardable: true}
}

// resolveDestination resolves dest, tolerating a nil Destination (schemas
// that declare no destination for a node still need their content validated,
// just not stored).
func resolveDestination(dest Destination, parentBase any, occurrence uint32, ctx any) (target any, discard bool, err error) {
	if dest == nil {
		return nil, true, nil
	}
	return dest.Resolve(parentBase, occurrence, ctx)
}
