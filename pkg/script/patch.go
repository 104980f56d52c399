package script

import (
	"github.com/expr-lang/expr/ast"
)

// attrsFunc is the function map literals are rewritten to call.
const attrsFunc = "attrs"

// orderedMaps rewrites every map literal into a call to attrsFunc with
// alternating key/value arguments, so that attribute order follows the
// source instead of Go map iteration order.
type orderedMaps struct{}

func (orderedMaps) Visit(node *ast.Node) {
	m, ok := (*node).(*ast.MapNode)
	if !ok {
		return
	}
	args := make([]ast.Node, 0, 2*len(m.Pairs))
	for _, p := range m.Pairs {
		pair, ok := p.(*ast.PairNode)
		if !ok {
			continue
		}
		args = append(args, pair.Key, pair.Value)
	}
	ast.Patch(node, &ast.CallNode{
		Callee:    &ast.IdentifierNode{Value: attrsFunc},
		Arguments: args,
	})
}
