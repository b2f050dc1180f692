package flow

// DefSite is one location where a variable is defined (assigned a new
// value).
type DefSite struct {
	Var  string
	Line uint32
}

// UseSite is one location where a variable is read.
type UseSite struct {
	Var  string
	Line uint32
}

// DataFlowEdge links a definition to a use it reaches.
type DataFlowEdge struct {
	Def DefSite
	Use UseSite
}

// DataFlowGraph is the per-function def/use index: every definition and
// use site, and the def→use edges between them.
type DataFlowGraph struct {
	FunctionID string
	Defs       map[string][]DefSite
	Uses       map[string][]UseSite
	Edges      []DataFlowEdge
}

// BuildDFG extracts (var, span) definitions and uses from a function's
// statements and links each definition to every use that follows it
// before the next definition of the same variable, mirroring
// core.BuildDefUseChains' single-pass inverted index.
func BuildDFG(functionID string, statements []*Statement) *DataFlowGraph {
	dfg := &DataFlowGraph{
		FunctionID: functionID,
		Defs:       make(map[string][]DefSite),
		Uses:       make(map[string][]UseSite),
	}

	flat := flattenAll(statements)
	lastDef := make(map[string]DefSite)

	for _, stmt := range flat {
		for _, v := range stmt.Uses {
			use := UseSite{Var: v, Line: stmt.Line}
			dfg.Uses[v] = append(dfg.Uses[v], use)
			if def, ok := lastDef[v]; ok {
				dfg.Edges = append(dfg.Edges, DataFlowEdge{Def: def, Use: use})
			}
		}
		if stmt.Def != "" {
			def := DefSite{Var: stmt.Def, Line: stmt.Line}
			dfg.Defs[stmt.Def] = append(dfg.Defs[stmt.Def], def)
			lastDef[stmt.Def] = def
		}
	}

	return dfg
}

func flattenAll(statements []*Statement) []*Statement {
	out := make([]*Statement, 0, len(statements))
	for _, s := range statements {
		out = append(out, s.Flatten()...)
	}
	return out
}

// ReachingDefs returns every definition of v that reaches at least one
// use (i.e. is not dead).
func (d *DataFlowGraph) ReachingDefs(v string) []DefSite {
	seen := make(map[uint32]bool)
	var out []DefSite
	for _, e := range d.Edges {
		if e.Def.Var == v && !seen[e.Def.Line] {
			seen[e.Def.Line] = true
			out = append(out, e.Def)
		}
	}
	return out
}
