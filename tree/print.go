package tree

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

/*
Print writes a nested rendering of the tree onto w. Splits show their
feature between parentheses followed by one branch per value, in the
declared order of the feature's values, and leaves show their
classification between double asterisks:

	 ( outlook )
	    | \
	    |  =sunny
	    |   **yes**
	     \
	       =rainy
	        **no**
*/
func (t *Tree) Print(ctx context.Context, w io.Writer) error {
	bw := bufio.NewWriter(w)
	n, err := t.node(ctx, t.RootID)
	if err != nil {
		return err
	}
	if err = t.print(ctx, bw, n, ""); err != nil {
		return err
	}
	return bw.Flush()
}

func (t *Tree) print(ctx context.Context, w io.Writer, n Node, prefix string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s, ok := n.(*Split)
	if !ok {
		fmt.Fprintf(w, "%s  **%s**\n", prefix, n.(*Leaf).Classification)
		return nil
	}
	fmt.Fprintf(w, "%s ( %s )\n", prefix, s.Feature.Name())
	fmt.Fprintf(w, "%s    | \\\n", prefix)
	values := s.Feature.Values()
	for i, v := range values {
		id, ok := s.Children[v]
		if !ok {
			return &ModelError{NodeID: s.ID, Feature: s.Feature.Name(), Value: v}
		}
		child, err := t.node(ctx, id)
		if err != nil {
			return err
		}
		if i < len(values)-1 {
			fmt.Fprintf(w, "%s    |  =%s\n", prefix, v)
			err = t.print(ctx, w, child, prefix+"    | ")
		} else {
			fmt.Fprintf(w, "%s     \\\n", prefix)
			fmt.Fprintf(w, "%s       =%s\n", prefix, v)
			err = t.print(ctx, w, child, prefix+"      ")
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (t *Tree) String() string {
	var sb strings.Builder
	if err := t.Print(context.TODO(), &sb); err != nil {
		return fmt.Sprintf("ERROR: %s\n", err.Error())
	}
	return sb.String()
}
