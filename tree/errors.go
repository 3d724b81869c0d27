package tree

import "fmt"

// Error represents an error on a tree
type Error string

/*
ErrModelMismatch is matched (with errors.Is) by the errors returned when
a tree cannot be walked for a sample: a split with no child for the
sample's value, or a node missing from the store. It means the tree is
corrupted or the sample's features are not the ones the tree was grown
with.
*/
const ErrModelMismatch = Error("sample does not match the tree model")

func (e Error) Error() string {
	return string(e)
}

/*
ModelError describes where a tree could not be walked: the node, and for
splits the feature and the sample's value that led nowhere.
*/
type ModelError struct {
	NodeID  string
	Feature string
	Value   string
}

func (me *ModelError) Error() string {
	if me.Feature == "" {
		return fmt.Sprintf("%v: node %s not found", ErrModelMismatch, me.NodeID)
	}
	return fmt.Sprintf("%v: node %s has no child for %s=%q", ErrModelMismatch, me.NodeID, me.Feature, me.Value)
}

// Is makes errors.Is(err, ErrModelMismatch) hold for any *ModelError.
func (me *ModelError) Is(target error) bool {
	return target == ErrModelMismatch
}
