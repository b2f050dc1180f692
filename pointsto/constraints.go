package pointsto

// VarID and LocationID identify, respectively, a program variable and an
// abstract allocation site. Both are 32-bit for cache locality across
// the large constraint sets whole-program analysis produces.
type VarID uint32
type LocationID uint32

// ConstraintKind classifies one points-to constraint.
type ConstraintKind int

const (
	// ConstraintAlloc: v = alloc(l) — v may point to location l.
	ConstraintAlloc ConstraintKind = iota
	// ConstraintCopy: v = w — v's points-to set includes w's.
	ConstraintCopy
	// ConstraintLoad: v = *w — v's points-to set includes whatever the
	// locations w points to may themselves point to.
	ConstraintLoad
	// ConstraintStore: *v = w — every location v may point to gains w's
	// points-to set.
	ConstraintStore
)

// Constraint is one points-to fact extracted from a function's
// assignments, pointer dereferences and allocation sites.
type Constraint struct {
	Kind ConstraintKind
	V    VarID
	W    VarID      // operand for Copy/Load/Store
	L    LocationID // operand for Alloc
}
