package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_Has(t *testing.T) {
	r := RoleDefinition | RoleGenerated
	assert.True(t, r.Has(RoleDefinition))
	assert.True(t, r.Has(RoleGenerated))
	assert.False(t, r.Has(RoleImport))
}

func TestBuildOccurrences_DefinitionsAndReads(t *testing.T) {
	g := NewGraph()
	g.AddNode(&Node{ID: "f", Kind: KindFunction, File: "a.py"})
	g.AddNode(&Node{ID: "x", Kind: KindVariable, File: "a.py"})
	g.AddEdge(&Edge{SourceID: "f", TargetID: "x", Kind: EdgeReads})

	occs := BuildOccurrences(g)

	var defs, reads int
	for _, o := range occs {
		if o.Role.Has(RoleDefinition) {
			defs++
		}
		if o.Role.Has(RoleReadAccess) {
			reads++
		}
	}
	assert.Equal(t, 2, defs)
	assert.Equal(t, 1, reads)
}
