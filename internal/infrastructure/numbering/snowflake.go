// Package numbering genera números de documento (pedidos, lotes, facturas).
package numbering

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// Generator números <PREFIJO>-<snowflake>, únicos entre réplicas con distinto nodo.
type Generator struct {
	node *snowflake.Node
}

// NewGenerator nodeID debe estar en [0, 1023].
func NewGenerator(nodeID int64) (*Generator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("nodo snowflake %d: %w", nodeID, err)
	}
	return &Generator{node: node}, nil
}

// Next p. ej. Next("ORD") -> "ORD-1780000000000000000".
func (g *Generator) Next(prefix string) string {
	return prefix + "-" + g.node.Generate().String()
}
