/*
Package tree implements binary decision trees built by greedy
recursive partitioning.

A tree is grown exactly once per call to Fit: starting from a
root node owning every training sample index, the builder
repeatedly asks a Splitter for the best split of the samples
routed to a node, partitions the node's index set into two
children and decides per child whether to keep splitting or to
seal it as a leaf. Prediction walks each query row from the root
to a single leaf.

A tree must not be shared across goroutines while it is being
fitted: Fit mutates the root and the node counters without
synchronization.
*/
package tree

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonas-mika/eduml/dataset"
)

/*
Config holds the stopping criteria of a tree. It is set once at
construction and never changes afterwards.

A zero value for MaxDepth, MaxNodes or MaxLeafNodes means the
corresponding limit is not enforced. MinSamplesPerLeaf defaults
to 1: a node is only considered for splitting while it holds
strictly more samples than this minimum, so a singleton node is
never split.
*/
type Config struct {
	MaxDepth          int
	MaxNodes          int
	MaxLeafNodes      int
	MinSamplesPerLeaf int
}

// reached reports whether a counter has reached a configured
// limit. A limit of zero is never reached.
func reached(count, limit int) bool {
	return limit > 0 && count >= limit
}

/*
Tree is a binary decision tree. It owns its whole node graph
through the root and keeps running counters of the nodes and
leaves created while growing.

The split selection, impurity scoring and leaf evaluation
policies are injected at construction, so the same engine grows
classification trees (gini impurity, majority-vote leaves) and
regression trees (variance impurity, mean leaves) alike.
*/
type Tree struct {
	config       Config
	splitter     Splitter
	criterion    Criterion
	evaluator    LeafEvaluator
	root         *Node
	numNodes     int
	numLeafNodes int
	x            [][]float64
	y            []float64
}

/*
New takes a configuration, a splitter, an impurity criterion and
a leaf evaluator and returns a tree that grows with them. Use
NewClassifier or NewRegressor for the usual combinations.
*/
func New(config Config, splitter Splitter, criterion Criterion, evaluator LeafEvaluator) *Tree {
	if config.MinSamplesPerLeaf <= 0 {
		config.MinSamplesPerLeaf = 1
	}
	return &Tree{
		config:    config,
		splitter:  splitter,
		criterion: criterion,
		evaluator: evaluator,
	}
}

// Root returns the root node of the fitted tree, or nil before
// any successful Fit.
func (t *Tree) Root() *Node {
	return t.root
}

// Len returns the total number of nodes in the tree, leaves
// included.
func (t *Tree) Len() int {
	return t.numNodes
}

// NumLeafNodes returns the number of leaves in the tree.
func (t *Tree) NumLeafNodes() int {
	return t.numLeafNodes
}

/*
Fit grows the tree from the given feature matrix and target
vector, discarding any previously grown structure. All tree
state is reset before anything else happens and discarded again
when growing aborts, so a Fit that fails validation or is
cancelled leaves the tree unfitted rather than half built.

The root is created with the full index set and depth 1. It is
sealed as a leaf immediately when its labels are already pure or
when it does not hold enough samples to split; otherwise it is
developed node by node on an explicit work stack, so the depth
of the grown tree is not limited by the goroutine stack.
*/
func (t *Tree) Fit(ctx context.Context, X [][]float64, y []float64) error {
	t.reset()
	if err := dataset.ValidateFeatureMatrix(X); err != nil {
		return fmt.Errorf("fitting decision tree: %v", err)
	}
	if err := dataset.ValidateTargetVector(y); err != nil {
		return fmt.Errorf("fitting decision tree: %v", err)
	}
	if err := dataset.CheckConsistentLength(X, y); err != nil {
		return fmt.Errorf("fitting decision tree: %v", err)
	}
	t.x = X
	t.y = y

	indices := make([]int, len(X))
	for i := range indices {
		indices[i] = i
	}
	root := NewNode(indices, 1)
	t.root = root
	t.numNodes++

	// The root bypasses the stopping criterion: it always gets a
	// chance to split unless it is pure or too small to produce
	// two non-empty children.
	if t.isPure(root) || root.Size() <= t.config.MinSamplesPerLeaf {
		return t.sealLeaf(root)
	}
	if err := t.develop(ctx, root); err != nil {
		t.reset()
		return err
	}
	return nil
}

// reset discards the grown structure, the counters and the
// training data, returning the tree to its unfitted state.
func (t *Tree) reset() {
	t.root = nil
	t.numNodes = 0
	t.numLeafNodes = 0
	t.x = nil
	t.y = nil
}

/*
develop grows the subtrees under every node on the work stack.
Children are pushed right before left so that left subtrees are
developed first, and whether a popped node is split or sealed
is decided only when it is popped: by then the whole left
sibling subtree has been developed, so the counters the
stopping criterion reads are exactly the ones a depth-first
recursion would see. The root is exempt from the criterion.
*/
func (t *Tree) develop(ctx context.Context, root *Node) error {
	pending := []*Node{root}
	for len(pending) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		n := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if n != root && (t.isPure(n) || !t.checkCriterion(n)) {
			if err := t.sealLeaf(n); err != nil {
				return err
			}
			continue
		}
		left, right, err := t.split(n)
		if err != nil {
			return err
		}
		if left != nil {
			pending = append(pending, right, left)
		}
	}
	return nil
}

/*
split develops a single node and returns its two children.

It asks the splitter for the best split of the samples routed to
the node. A nil result seals the node as a leaf and returns no
children: no viable split is the ordinary base case of growing,
not an error. Otherwise the node's index set is
stable-partitioned by the routing decision of the chosen rule
and the node is promoted with its two children, which the
caller develops further.
*/
func (t *Tree) split(n *Node) (*Node, *Node, error) {
	X, y := t.subset(n)
	best := t.splitter.BestSplit(X, y)
	if best == nil {
		return nil, nil, t.sealLeaf(n)
	}

	var leftIndices, rightIndices []int
	for _, i := range n.SampleIndices {
		if best.Decide(t.x[i]) {
			rightIndices = append(rightIndices, i)
		} else {
			leftIndices = append(leftIndices, i)
		}
	}

	left := NewNode(leftIndices, n.Depth+1)
	t.numNodes++
	right := NewNode(rightIndices, n.Depth+1)
	t.numNodes++
	if err := n.Promote(best, left, right); err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

/*
checkCriterion reports whether a node is still eligible for
splitting. Every clause must hold: the node's depth is below the
maximum depth, the node and leaf counters are below their
maximums, and the node holds more samples than the configured
minimum per leaf. Counters reflect created nodes, so the check
sees every node and leaf in existence at the time it runs.
*/
func (t *Tree) checkCriterion(n *Node) bool {
	depthNotReached := !reached(n.Depth, t.config.MaxDepth)
	maxNodesNotReached := !reached(t.numNodes, t.config.MaxNodes)
	maxLeafNodesNotReached := !reached(t.numLeafNodes, t.config.MaxLeafNodes)
	canSplit := n.Size() > t.config.MinSamplesPerLeaf
	return depthNotReached && maxNodesNotReached && maxLeafNodesNotReached && canSplit
}

// isPure reports whether the labels routed to the node score an
// impurity of exactly zero.
func (t *Tree) isPure(n *Node) bool {
	_, y := t.subset(n)
	return t.criterion.Impurity(y) == 0
}

// sealLeaf seals the node as a leaf with the prediction the
// evaluator computes from its label subset.
func (t *Tree) sealLeaf(n *Node) error {
	_, y := t.subset(n)
	if err := n.SealLeaf(t.evaluator.Evaluate(y)); err != nil {
		return err
	}
	t.numLeafNodes++
	return nil
}

// subset restricts the training data to the rows named by the
// node's sample indices.
func (t *Tree) subset(n *Node) ([][]float64, []float64) {
	X := make([][]float64, 0, n.Size())
	y := make([]float64, 0, n.Size())
	for _, i := range n.SampleIndices {
		X = append(X, t.x[i])
		y = append(y, t.y[i])
	}
	return X, y
}

/*
Predict takes a matrix of query rows and returns one prediction
per row, in input order. Each row is walked independently from
the root to a leaf using the routing decision stored on every
internal node it passes.

Predict returns ErrNotFitted when called before any successful
Fit.
*/
func (t *Tree) Predict(ctx context.Context, X [][]float64) ([]float64, error) {
	if t.root == nil {
		return nil, ErrNotFitted
	}
	if err := dataset.ValidateFeatureMatrix(X); err != nil {
		return nil, fmt.Errorf("predicting: %v", err)
	}
	preds := make([]float64, 0, len(X))
	for _, row := range X {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		curr := t.root
		for !curr.IsLeaf() {
			right, err := curr.Decide(row)
			if err != nil {
				return nil, err
			}
			if right {
				curr = curr.Right
			} else {
				curr = curr.Left
			}
		}
		preds = append(preds, curr.Prediction)
	}
	return preds, nil
}

/*
PredictProba is undefined for a single decision tree and returns
an empty result: probability estimates require an ensemble.
*/
func (t *Tree) PredictProba(ctx context.Context, X [][]float64) ([][]float64, error) {
	return [][]float64{}, nil
}

/*
Traverse goes through the tree depth first, parents before
children, running the given function on every node. If the
function returns an error the traversal is aborted and the error
returned. Traversing an unfitted tree returns ErrNotFitted.
*/
func (t *Tree) Traverse(f func(*Node) error) error {
	if t.root == nil {
		return ErrNotFitted
	}
	return t.traverse(t.root, f)
}

func (t *Tree) traverse(n *Node, f func(*Node) error) error {
	if err := f(n); err != nil {
		return err
	}
	if n.Left != nil {
		if err := t.traverse(n.Left, f); err != nil {
			return err
		}
	}
	if n.Right != nil {
		return t.traverse(n.Right, f)
	}
	return nil
}

// String renders the tree breadth first with a marker line per
// depth level. The exact format is presentation only.
func (t *Tree) String() string {
	if t.root == nil {
		return "decision tree is not fitted"
	}
	var b strings.Builder
	q := []*Node{t.root}
	depth := 0
	for len(q) > 0 {
		n := q[0]
		q = q[1:]
		if n.Depth > depth {
			depth = n.Depth
			fmt.Fprintf(&b, "depth %d %s\n", depth, strings.Repeat("=", 15))
		}
		fmt.Fprintf(&b, "%v\n", n)
		if n.Left != nil {
			q = append(q, n.Left)
		}
		if n.Right != nil {
			q = append(q, n.Right)
		}
	}
	return b.String()
}
