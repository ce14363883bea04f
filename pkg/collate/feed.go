package collate

import (
	"fmt"

	"gorgonia.org/gorgonia"
)

// InputNode creates a graph input matching the batch inputs' dtype and
// shape.
func InputNode(g *gorgonia.ExprGraph, b *Batch, name string) *gorgonia.Node {
	return gorgonia.NewTensor(g, b.Inputs.Dtype(), b.Inputs.Dims(),
		gorgonia.WithShape(b.Inputs.Shape()...),
		gorgonia.WithName(name))
}

// LabelNode creates a (B, 1) graph input for the batch labels.
func LabelNode(g *gorgonia.ExprGraph, b *Batch, name string) *gorgonia.Node {
	return gorgonia.NewMatrix(g, b.Labels.Dtype(),
		gorgonia.WithShape(b.Labels.Shape()...),
		gorgonia.WithName(name))
}

// Feed binds the batch to graph inputs before a forward pass.
func Feed(b *Batch, inputs, labels *gorgonia.Node) error {
	if err := gorgonia.Let(inputs, b.Inputs); err != nil {
		return fmt.Errorf("failed to update inputs tensor: %w", err)
	}
	if labels != nil {
		if err := gorgonia.Let(labels, b.Labels); err != nil {
			return fmt.Errorf("failed to update labels tensor: %w", err)
		}
	}
	return nil
}
