// Package ssa constructs static single assignment form for a function's
// control flow graph using Braun et al.'s on-the-fly algorithm: no
// separate dominance-frontier pass, phi nodes are inserted and pruned as
// each variable read is resolved.
package ssa

import (
	"fmt"
	"sort"

	"github.com/shivasurya/code-pathfinder/engine/flow"
)

// Value is either a versioned variable or a phi node; Graph.Values always
// holds one of the two concrete types below.
type Value interface {
	isValue()
}

// Version is one SSA-renamed occurrence of a source variable.
type Version struct {
	Var      string
	Num      int
	LocalSeq int // deterministic tie-break within a block
}

func (*Version) isValue() {}

// Phi is a merge point: one operand per CFG predecessor of Block.
type Phi struct {
	Block    string
	Var      string
	Num      int
	Operands map[string]Value // predecessor block ID -> incoming value
	removed  bool
}

func (*Phi) isValue() {}

// Graph is the SSA form of one function.
type Graph struct {
	FunctionID string
	Values     []Value // phis and final versions, in creation order
	sparse     map[string]bool
}

// Sparse reports whether v was tracked by the sparse filter: only
// variables with more than one textual definition are renamed, the rest
// remain single-version and are skipped by Braun's machinery entirely.
func (g *Graph) Sparse(v string) bool { return g.sparse[v] }

// builder performs Braun on-the-fly SSA renaming. The original algorithm
// runs alongside IR construction and may have to reason about blocks
// whose predecessors aren't fully known yet (e.g. an unresolved loop
// back-edge). This builder instead runs after flow.Build has already
// produced the complete CFG, so every predecessor set is final before
// renaming starts.
type builder struct {
	cfg        *flow.ControlFlowGraph
	preds      map[string][]string
	currentDef map[string]map[string]Value // block -> var -> value
	graph      *Graph
	versionSeq map[string]int
	localSeq   int
}

// Rename walks a function's blocks and statements in source order,
// performing the actual Braun renaming: each Def becomes a new Version,
// each Use resolves via readVariable (recursing through predecessors and
// inserting phis at merges), and trivial phis (every operand identical)
// are pruned immediately.
func Rename(functionID string, bfg *flow.BasicFlowGraph, cfg *flow.ControlFlowGraph, dfg *flow.DataFlowGraph) *Graph {
	b := &builder{
		cfg:        cfg,
		preds:      predecessors(cfg),
		currentDef: make(map[string]map[string]Value),
		graph:      &Graph{FunctionID: functionID, sparse: sparseVars(dfg)},
		versionSeq: make(map[string]int),
	}

	for _, blk := range bfg.Blocks {
		for _, stmt := range blk.Statements {
			for _, use := range stmt.Uses {
				if b.graph.Sparse(use) {
					b.readVariable(use, blk.ID)
				}
			}
			if stmt.Def != "" && b.graph.Sparse(stmt.Def) {
				b.writeVariable(stmt.Def, blk.ID)
			}
		}
	}

	return b.graph
}

func (b *builder) writeVariable(v, block string) Value {
	b.versionSeq[v]++
	b.localSeq++
	ver := &Version{Var: v, Num: b.versionSeq[v], LocalSeq: b.localSeq}
	b.setCurrentDef(v, block, ver)
	b.graph.Values = append(b.graph.Values, ver)
	return ver
}

func (b *builder) setCurrentDef(v, block string, val Value) {
	if b.currentDef[block] == nil {
		b.currentDef[block] = make(map[string]Value)
	}
	b.currentDef[block][v] = val
}

func (b *builder) readVariable(v, block string) Value {
	if val, ok := b.currentDef[block][v]; ok {
		return val
	}
	return b.readVariableRecursive(v, block)
}

func (b *builder) readVariableRecursive(v, block string) Value {
	var val Value

	preds := b.preds[block]
	if len(preds) == 1 {
		val = b.readVariable(v, preds[0])
	} else if len(preds) == 0 {
		// Unresolved read with no reaching definition (e.g. a parameter);
		// synthesize a version so callers always get a value back.
		val = b.writeVariable(v, block)
	} else {
		phi := b.newPhi(v, block)
		b.setCurrentDef(v, block, phi)
		val = b.addPhiOperands(v, phi)
	}

	b.setCurrentDef(v, block, val)
	return val
}

func (b *builder) newPhi(v, block string) *Phi {
	b.versionSeq[v]++
	phi := &Phi{Block: block, Var: v, Num: b.versionSeq[v], Operands: make(map[string]Value)}
	b.graph.Values = append(b.graph.Values, phi)
	return phi
}

func (b *builder) addPhiOperands(v string, phi *Phi) Value {
	for _, pred := range b.preds[phi.Block] {
		phi.Operands[pred] = b.readVariable(v, pred)
	}
	return b.tryRemoveTrivialPhi(phi)
}

// tryRemoveTrivialPhi implements the pruning rule: a phi whose
// operands all resolve to the same value (ignoring self-references) is
// marked removed and that value is returned in its place; operands of
// other phis that already refer to it are not rewritten.
func (b *builder) tryRemoveTrivialPhi(phi *Phi) Value {
	var same Value
	for _, op := range phi.Operands {
		if op == Value(phi) || op == same {
			continue
		}
		if same != nil {
			return phi // more than one distinct operand: not trivial
		}
		same = op
	}
	if same == nil {
		// Phi with only self-references: unreachable definition, keep as-is.
		return phi
	}
	phi.removed = true
	return same
}

// predecessors derives the CFG predecessor map from its edge list.
func predecessors(cfg *flow.ControlFlowGraph) map[string][]string {
	preds := make(map[string][]string)
	for _, e := range cfg.Edges {
		preds[e.TargetBlockID] = append(preds[e.TargetBlockID], e.SourceBlockID)
	}
	for k := range preds {
		sort.Strings(preds[k])
	}
	return preds
}

// sparseVars implements the sparse-SSA preprocessing pass: only
// variables with more than one definition are tracked; single-def
// variables are reported as non-sparse and left as plain textual
// variables by the renamer.
func sparseVars(dfg *flow.DataFlowGraph) map[string]bool {
	out := make(map[string]bool)
	if dfg == nil {
		return out
	}
	for v, defs := range dfg.Defs {
		if len(defs) > 1 {
			out[v] = true
		}
	}
	return out
}

// String renders a phi for debugging/golden output; not used on any hot
// path.
func (p *Phi) String() string {
	return fmt.Sprintf("%s_%d = phi(%s)@%s", p.Var, p.Num, p.Var, p.Block)
}
