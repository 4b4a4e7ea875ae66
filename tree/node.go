package tree

import (
	"fmt"
)

// State is the lifecycle state of a Node. A node starts
// unresolved and is resolved exactly once, either into an
// internal node with a split rule and two children or into
// a leaf with a prediction. Both transitions are final.
type State int

const (
	// Unresolved is the state of a node that has been created
	// but not yet split or sealed.
	Unresolved State = iota
	// Internal is the state of a node that holds a split rule
	// and two children.
	Internal
	// Leaf is the state of a terminal node that holds a
	// prediction.
	Leaf
)

// StateError represents the use of a tree or node outside its
// lifecycle, such as asking an unresolved node for a routing
// decision. These are programming errors and are not retried.
type StateError string

func (e StateError) Error() string {
	return string(e)
}

const (
	// ErrNotFitted is returned by Predict when the tree has no
	// root, that is, before any successful call to Fit.
	ErrNotFitted = StateError("decision tree is not fitted")
	// ErrNoSplitRule is returned by Decide on nodes that are not
	// internal and therefore hold no split rule.
	ErrNoSplitRule = StateError("node has no split rule to decide with")
	// ErrAlreadyResolved is returned when sealing or promoting a
	// node that has already been resolved.
	ErrAlreadyResolved = StateError("node has already been sealed or promoted")
	// ErrMissingChild is returned when promoting a node without
	// both children: the tree is strictly binary, an internal
	// node never has fewer than two children.
	ErrMissingChild = StateError("internal node requires both children")
)

/*
Node is a vertex of a decision tree.

It exclusively owns the indices of the training samples routed
to it. When a node is promoted to internal, its index set is
partitioned without overlap and without loss into the index
sets of its two children.
*/
type Node struct {
	// SampleIndices are the indices into the training set of the
	// samples routed to this node, in their original relative
	// order.
	SampleIndices []int
	// Depth of the node in the tree. The root has depth 1 and
	// every child is one deeper than its parent.
	Depth int
	// Rule is the split rule chosen for the node. It is only set
	// on internal nodes.
	Rule *Split
	// Left and Right are the children of the node. They are only
	// set on internal nodes, and always both at once.
	Left  *Node
	Right *Node
	// Prediction is the value returned for every query routed to
	// this node. It is only set on leaves.
	Prediction float64

	state State
}

/*
NewNode takes the indices of the training samples routed to the
node and the depth the node will occupy in the tree and returns
an unresolved node holding them.
*/
func NewNode(sampleIndices []int, depth int) *Node {
	return &Node{SampleIndices: sampleIndices, Depth: depth}
}

// Size returns the number of training samples routed to the
// node.
func (n *Node) Size() int {
	return len(n.SampleIndices)
}

// State returns the lifecycle state of the node.
func (n *Node) State() State {
	return n.state
}

// IsLeaf returns true iff the node has been sealed as a leaf.
func (n *Node) IsLeaf() bool {
	return n.state == Leaf
}

/*
Decide evaluates the node's split rule against the given feature
row and returns the routing decision: false routes to the left
child, true routes to the right child.

Decide is only defined on internal nodes; calling it on a leaf
or an unresolved node returns ErrNoSplitRule. An error is also
returned when the row has fewer features than the rule needs.
*/
func (n *Node) Decide(row []float64) (bool, error) {
	if n.state != Internal {
		return false, ErrNoSplitRule
	}
	if n.Rule.Feature >= len(row) {
		return false, fmt.Errorf("deciding on node at depth %d: row has %d features, rule needs feature %d", n.Depth, len(row), n.Rule.Feature)
	}
	return n.Rule.Decide(row), nil
}

/*
SealLeaf resolves the node into a leaf with the given
prediction. The transition is irreversible: sealing an already
resolved node returns ErrAlreadyResolved.
*/
func (n *Node) SealLeaf(prediction float64) error {
	if n.state != Unresolved {
		return ErrAlreadyResolved
	}
	n.Prediction = prediction
	n.state = Leaf
	return nil
}

/*
Promote resolves the node into an internal node with the given
split rule and children. The transition is irreversible and
requires both children to be non-nil: promoting an already
resolved node returns ErrAlreadyResolved, promoting with a
missing child returns ErrMissingChild.
*/
func (n *Node) Promote(rule *Split, left, right *Node) error {
	if n.state != Unresolved {
		return ErrAlreadyResolved
	}
	if left == nil || right == nil {
		return ErrMissingChild
	}
	n.Rule = rule
	n.Left = left
	n.Right = right
	n.state = Internal
	return nil
}

func (n *Node) String() string {
	switch n.state {
	case Internal:
		return fmt.Sprintf("(internal depth=%d size=%d rule=x[%d]>%v impurity=%v)", n.Depth, n.Size(), n.Rule.Feature, n.Rule.Threshold, n.Rule.Impurity)
	case Leaf:
		return fmt.Sprintf("(leaf depth=%d size=%d prediction=%v)", n.Depth, n.Size(), n.Prediction)
	}
	return fmt.Sprintf("(unresolved depth=%d size=%d)", n.Depth, n.Size())
}
