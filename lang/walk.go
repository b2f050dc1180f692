package lang

import (
	"fmt"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/shivasurya/code-pathfinder/engine/ir"
)

// Table is a per-language mapping from tree-sitter node type names to
// the IR construct they represent, driving a single shared AST walker
// instead of one bespoke walk per language. Grammars disagree on field
// names more than on node-type taxonomy, so NameField is overridable
// per node type with "name" as the common-case default.
type Table struct {
	// Entities maps a tree-sitter node type to the ir.Kind it produces.
	Entities map[string]ir.Kind
	// NameField overrides the child-field name holding the entity's
	// identifier, keyed by node type. Falls back to "name".
	NameField map[string]string
	// CallTypes are node types representing a call expression.
	CallTypes map[string]bool
	// CallFunctionField is the field on a call node holding the callee
	// expression.
	CallFunctionField string
	// ImportTypes are node types representing an import/use statement.
	ImportTypes map[string]bool
}

// Walk runs a single depth-first pass producing IR nodes for every
// node type in t.Entities, Contains edges from each entity to its
// nearest enclosing entity, and Calls/Imports edges for call and
// import sites. Per-subtree panics (malformed trees from partial
// parses) are recovered into ExtractResult.Errors so one bad function
// doesn't drop the rest of the file.
func Walk(tree *sitter.Tree, source []byte, file, repoID, languageID string, t Table) (result ExtractResult) {
	defer func() {
		if r := recover(); r != nil {
			result.Errors = append(result.Errors, fmt.Errorf("lang: panic walking %s: %v", file, r))
		}
	}()

	var seq uint64

	var walk func(n *sitter.Node, owner ir.NodeID)
	walk = func(n *sitter.Node, owner ir.NodeID) {
		if n == nil {
			return
		}
		defer func() {
			if r := recover(); r != nil {
				result.Errors = append(result.Errors, fmt.Errorf("lang: panic walking subtree in %s: %v", file, r))
			}
		}()
		nextOwner := owner

		if kind, ok := t.Entities[n.Type()]; ok {
			seq++
			id := entityID(n, source, file, repoID, kind, t)
			node := &ir.Node{
				ID:       id,
				FQN:      entityName(n, source, t),
				File:     file,
				Span:     spanOf(n),
				Kind:     kind,
				LocalSeq: seq,
				OwnerID:  owner,
				Language: languageID,
			}
			result.Nodes = append(result.Nodes, node)
			if owner != "" {
				result.Edges = append(result.Edges, &ir.Edge{SourceID: owner, TargetID: id, Kind: ir.EdgeContains, Span: node.Span})
			}
			nextOwner = id
		} else if t.CallTypes[n.Type()] && owner != "" {
			callee := ""
			if t.CallFunctionField != "" {
				if f := n.ChildByFieldName(t.CallFunctionField); f != nil {
					callee = f.Content(source)
				}
			}
			if callee != "" {
				result.Edges = append(result.Edges, &ir.Edge{
					SourceID: owner,
					TargetID: ir.NodeID(callee),
					Kind:     ir.EdgeCalls,
					Span:     spanOf(n),
					Attrs:    map[string]string{"callee_text": callee},
				})
			}
		} else if t.ImportTypes[n.Type()] && owner != "" {
			result.Edges = append(result.Edges, &ir.Edge{
				SourceID: owner,
				TargetID: ir.NodeID(n.Content(source)),
				Kind:     ir.EdgeImports,
				Span:     spanOf(n),
			})
		}

		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i), nextOwner)
		}
	}

	walk(tree.RootNode(), "")

	sort.SliceStable(result.Nodes, func(i, j int) bool { return result.Nodes[i].LocalSeq < result.Nodes[j].LocalSeq })
	return result
}

func entityName(n *sitter.Node, source []byte, t Table) string {
	field := t.NameField[n.Type()]
	if field == "" {
		field = "name"
	}
	if child := n.ChildByFieldName(field); child != nil {
		return child.Content(source)
	}
	return n.Type()
}

func entityID(n *sitter.Node, source []byte, file, repoID string, kind ir.Kind, t Table) ir.NodeID {
	name := entityName(n, source, t)
	return ir.NewStableID(repoID, file, name, kind, []byte(n.Content(source)))
}

func spanOf(n *sitter.Node) ir.Span {
	start := n.StartPoint()
	end := n.EndPoint()
	return ir.Span{
		StartLine: int(start.Row) + 1,
		StartCol:  int(start.Column) + 1,
		EndLine:   int(end.Row) + 1,
		EndCol:    int(end.Column) + 1,
	}
}
