package ir

// Role is a SCIP-style role bitflag describing how a symbol appears at an
// occurrence site. A single occurrence can carry more than one role, e.g.
// Definition|Generated.
type Role uint8

const (
	RoleDefinition       Role = 1 << iota // the symbol is introduced here
	RoleImport                            // the occurrence is an import statement
	RoleReadAccess                        // the value is read
	RoleWriteAccess                       // the value is written
	RoleGenerated                         // produced by codegen, not hand-written
	RoleTest                              // occurs in test code
	RoleForwardDefinition                 // a forward declaration (e.g. interface method)
)

// Has reports whether r contains every bit set in flag.
func (r Role) Has(flag Role) bool { return r&flag == flag }

// Occurrence records one appearance of a symbol in source text. Unlike a
// Node (one per declaration), a symbol may have many occurrences: every
// read, write, call and import site gets its own record.
type Occurrence struct {
	SymbolID     NodeID
	Span         Span
	File         string
	Role         Role
	ParentSymbol NodeID
	SyntaxKind   string
	Importance   float64
}

// BuildOccurrences derives the bulk occurrence set from a finished graph.
// It is run once IR construction is complete: every Reads/Writes/
// Calls/Imports edge becomes an occurrence at the edge's span, and every
// node becomes a Definition occurrence at its own span.
func BuildOccurrences(g *Graph) []Occurrence {
	occs := make([]Occurrence, 0, len(g.Nodes)+len(g.Edges))

	for _, n := range g.Nodes {
		occs = append(occs, Occurrence{
			SymbolID:     n.ID,
			Span:         n.Span,
			File:         n.File,
			Role:         RoleDefinition,
			ParentSymbol: n.OwnerID,
			SyntaxKind:   string(n.Kind),
		})
	}

	for _, e := range g.Edges {
		role, ok := edgeRole(e.Kind)
		if !ok {
			continue
		}
		target := g.Nodes[e.TargetID]
		file := ""
		if target != nil {
			file = target.File
		}
		occs = append(occs, Occurrence{
			SymbolID:     e.TargetID,
			Span:         e.Span,
			File:         file,
			Role:         role,
			ParentSymbol: e.SourceID,
			SyntaxKind:   string(e.Kind),
		})
	}

	return occs
}

func edgeRole(k EdgeKind) (Role, bool) {
	switch k {
	case EdgeReads:
		return RoleReadAccess, true
	case EdgeWrites:
		return RoleWriteAccess, true
	case EdgeImports:
		return RoleImport, true
	case EdgeCalls, EdgeInvokes, EdgeReferences, EdgeReferencesSymbol, EdgeReferencesType:
		return RoleReadAccess, true
	default:
		return 0, false
	}
}
