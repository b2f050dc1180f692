// Package ir defines the language-neutral intermediate representation
// that every analysis in this module is built on: nodes, edges and the
// spans and occurrences that tie them back to source text.
package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Span is a half-open source range, 1-indexed on both line and column
// to match editor conventions.
type Span struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// Kind enumerates the IR node categories. New language plugins should
// reuse an existing kind wherever the construct maps cleanly; only add a
// new one when no existing kind fits.
type Kind string

const (
	KindModule    Kind = "Module"
	KindClass     Kind = "Class"
	KindStruct    Kind = "Struct"
	KindInterface Kind = "Interface"
	KindFunction  Kind = "Function"
	KindMethod    Kind = "Method"
	KindLambda    Kind = "Lambda"
	KindField     Kind = "Field"
	KindVariable  Kind = "Variable"
	KindParameter Kind = "Parameter"
	KindCall      Kind = "Call"
	KindLiteral   Kind = "Literal"
	KindTypeRef   Kind = "TypeRef"
	KindImport    Kind = "Import"
	KindBlock     Kind = "Block"
)

// EdgeKind enumerates the relationships an Edge can carry.
type EdgeKind string

const (
	EdgeContains         EdgeKind = "Contains"
	EdgeCalls            EdgeKind = "Calls"
	EdgeInvokes          EdgeKind = "Invokes"
	EdgeImports          EdgeKind = "Imports"
	EdgeInherits         EdgeKind = "Inherits"
	EdgeImplements       EdgeKind = "Implements"
	EdgeReads            EdgeKind = "Reads"
	EdgeWrites           EdgeKind = "Writes"
	EdgeReferences       EdgeKind = "References"
	EdgeDataFlow         EdgeKind = "DataFlow"
	EdgeControlFlow      EdgeKind = "ControlFlow"
	EdgeTrueBranch       EdgeKind = "TrueBranch"
	EdgeFalseBranch      EdgeKind = "FalseBranch"
	EdgeThrows           EdgeKind = "Throws"
	EdgeCatches          EdgeKind = "Catches"
	EdgeFinally          EdgeKind = "Finally"
	EdgeCaptures         EdgeKind = "Captures"
	EdgeDefines          EdgeKind = "Defines"
	EdgeTypeAnnotation   EdgeKind = "TypeAnnotation"
	EdgeCfgNext          EdgeKind = "CfgNext"
	EdgeCfgBranch        EdgeKind = "CfgBranch"
	EdgeCfgLoop          EdgeKind = "CfgLoop"
	EdgeCfgHandler       EdgeKind = "CfgHandler"
	EdgeReferencesType   EdgeKind = "ReferencesType"
	EdgeReferencesSymbol EdgeKind = "ReferencesSymbol"
	EdgeDecorates        EdgeKind = "Decorates"
	EdgeRouteHandler     EdgeKind = "RouteHandler"
)

// NodeID is a stable identifier: deterministic across re-runs over
// identical content, globally unique within a snapshot.
type NodeID string

// Node is one IR entity: a module, class, function, call site, and so on.
// Optional fields are left at their zero value when a language plugin has
// nothing to report for them.
type Node struct {
	ID       NodeID
	FQN      string
	File     string
	Span     Span
	Kind     Kind
	LocalSeq uint64 // per-file monotonic stamp, for deterministic ordering

	Docstring    string
	Decorators   []string
	Modifiers    []string
	IsAsync      bool
	IsGenerator  bool
	IsStatic     bool
	IsAbstract   bool
	Parameters   []string
	ReturnType   string
	BaseClasses  []string
	OwnerID      NodeID
	ConditionStr string

	Language string
}

// Edge is a directed relationship between two nodes.
type Edge struct {
	SourceID NodeID
	TargetID NodeID
	Kind     EdgeKind
	Span     Span
	Attrs    map[string]string
}

// NewStableID derives a deterministic ID from the repository, file, fully
// qualified name, kind and a content hash of the node's subtree. The first
// 8 hex characters of the content hash are appended to resolve collisions
// between otherwise-identical (repo, file, FQN, kind) tuples — e.g. two
// overloaded functions with the same name but different bodies.
func NewStableID(repoID, filePath, fqn string, kind Kind, content []byte) NodeID {
	h := sha256.Sum256(content)
	contentHash := hex.EncodeToString(h[:])
	key := fmt.Sprintf("%s|%s|%s|%s|%s", repoID, filePath, fqn, kind, contentHash[:8])
	idHash := sha256.Sum256([]byte(key))
	return NodeID(hex.EncodeToString(idHash[:]))
}

// Graph is an in-memory IR snapshot: nodes keyed by ID plus the full
// edge list. It is the zero-copy unit the orchestrator publishes into
// PipelineContext — callers must treat a published Graph as read-only.
type Graph struct {
	Nodes map[NodeID]*Node
	Edges []*Edge

	outgoing map[NodeID][]*Edge
	incoming map[NodeID][]*Edge
}

// NewGraph returns an empty, ready-to-populate Graph.
func NewGraph() *Graph {
	return &Graph{
		Nodes:    make(map[NodeID]*Node),
		outgoing: make(map[NodeID][]*Edge),
		incoming: make(map[NodeID][]*Edge),
	}
}

// AddNode inserts or overwrites a node by ID.
func (g *Graph) AddNode(n *Node) {
	g.Nodes[n.ID] = n
}

// AddEdge appends an edge and indexes it for adjacency lookups.
func (g *Graph) AddEdge(e *Edge) {
	g.Edges = append(g.Edges, e)
	g.outgoing[e.SourceID] = append(g.outgoing[e.SourceID], e)
	g.incoming[e.TargetID] = append(g.incoming[e.TargetID], e)
}

// Outgoing returns edges leaving a node, in insertion order.
func (g *Graph) Outgoing(id NodeID) []*Edge { return g.outgoing[id] }

// Incoming returns edges entering a node, in insertion order.
func (g *Graph) Incoming(id NodeID) []*Edge { return g.incoming[id] }

// ByKind enumerates every node of the given kind. Callers that need a
// deterministic order must sort the result by ID themselves (this
// outputs with no natural order are sorted at the serialization
// boundary, not by every caller of ByKind).
func (g *Graph) ByKind(k Kind) []*Node {
	out := make([]*Node, 0)
	for _, n := range g.Nodes {
		if n.Kind == k {
			out = append(out, n)
		}
	}
	return out
}

// WellFormed checks the IR well-formedness property: every edge
// endpoint references an existing node.
func (g *Graph) WellFormed() error {
	for _, e := range g.Edges {
		if _, ok := g.Nodes[e.SourceID]; !ok {
			return fmt.Errorf("ir: edge %s->%s: source node missing", e.SourceID, e.TargetID)
		}
		if _, ok := g.Nodes[e.TargetID]; !ok {
			return fmt.Errorf("ir: edge %s->%s: target node missing", e.SourceID, e.TargetID)
		}
	}
	return nil
}
