package huffman

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/chronos-tachyon/assert"
)

// NodeID addresses a node within a Tree.  IDs are stable for the lifetime of
// the Tree.
type NodeID int32

// NoNode is returned by some methods to indicate the absence of a node.
const NoNode = NodeID(-1)

// Side selects one of the two children of a node.
type Side byte

const (
	// Left is the child reached by a 0 bit.
	Left Side = iota

	// Right is the child reached by a 1 bit.
	Right
)

// String returns the string representation of this Side.
func (s Side) String() string {
	switch s {
	case Left:
		return "L"
	case Right:
		return "R"
	default:
		return fmt.Sprintf("Side(%d)", byte(s))
	}
}

var _ fmt.Stringer = Side(0)

// Tree is a binary tree of Nodes stored in an arena.
//
// Each node owns its left and right children; the parent link is only used to
// walk back up the tree.  The zero Tree is empty and ready to use.  The first
// node added becomes the root until SetRoot or Attach says otherwise.
//
type Tree struct {
	nodes []treeNode
	root  NodeID
}

type treeNode struct {
	value  Node
	left   NodeID
	right  NodeID
	parent NodeID
}

// NewTree returns an empty Tree with room for capacity nodes.
func NewTree(capacity int) *Tree {
	return &Tree{nodes: make([]treeNode, 0, capacity)}
}

// NewNode adds a detached node holding value and returns its ID.
func (t *Tree) NewNode(value Node) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, treeNode{value: value, left: NoNode, right: NoNode, parent: NoNode})
	return id
}

// Attach makes child (and the subtree below it) the given child of parent.
// If child was the root, the root moves up to parent's topmost ancestor.
func (t *Tree) Attach(parent NodeID, child NodeID, side Side) {
	t.check(parent)
	t.check(child)
	assert.Assertf(parent != child, "cannot attach node %d to itself", child)
	assert.Assertf(t.nodes[child].parent == NoNode, "node %d already has parent %d", child, t.nodes[child].parent)

	p := &t.nodes[parent]
	switch side {
	case Left:
		assert.Assertf(p.left == NoNode, "node %d already has a left child", parent)
		p.left = child
	case Right:
		assert.Assertf(p.right == NoNode, "node %d already has a right child", parent)
		p.right = child
	default:
		assert.Assertf(false, "invalid side %v", side)
	}
	t.nodes[child].parent = parent

	if t.root == child {
		t.root = t.top(parent)
	}
}

// SetRoot selects the root of the tree.  The node must not have a parent.
func (t *Tree) SetRoot(id NodeID) {
	t.check(id)
	assert.Assertf(t.nodes[id].parent == NoNode, "root %d has parent %d", id, t.nodes[id].parent)
	t.root = id
}

// Root returns the root of the tree, or NoNode if the tree is empty.
func (t *Tree) Root() NodeID {
	if len(t.nodes) == 0 {
		return NoNode
	}
	return t.root
}

// Value returns the Node stored at id.
func (t *Tree) Value(id NodeID) Node {
	t.check(id)
	return t.nodes[id].value
}

// Child returns the child of id on the given side, or NoNode.
func (t *Tree) Child(id NodeID, side Side) NodeID {
	if side == Right {
		return t.Right(id)
	}
	return t.Left(id)
}

// Left returns the left child of id, or NoNode.
func (t *Tree) Left(id NodeID) NodeID {
	t.check(id)
	return t.nodes[id].left
}

// Right returns the right child of id, or NoNode.
func (t *Tree) Right(id NodeID) NodeID {
	t.check(id)
	return t.nodes[id].right
}

// Parent returns the parent of id, or NoNode.
func (t *Tree) Parent(id NodeID) NodeID {
	t.check(id)
	return t.nodes[id].parent
}

// IsLeaf returns true if id has no children.
func (t *Tree) IsLeaf(id NodeID) bool {
	t.check(id)
	n := &t.nodes[id]
	return n.left == NoNode && n.right == NoNode
}

// Size returns the number of nodes reachable from the root.
func (t *Tree) Size() int {
	return len(t.PreOrder())
}

// Leaves returns the number of leaves reachable from the root.
func (t *Tree) Leaves() int {
	var count int
	for _, id := range t.PreOrder() {
		if t.IsLeaf(id) {
			count++
		}
	}
	return count
}

// InOrder returns the nodes reachable from the root in left-to-right order.
//
// The walk is iterative: it climbs back through parent links instead of
// keeping a stack.
//
func (t *Tree) InOrder() []NodeID {
	root := t.Root()
	if root == NoNode {
		return nil
	}

	out := make([]NodeID, 0, len(t.nodes))
	for id := t.leftmost(root); id != NoNode; id = t.nextInOrder(id, root) {
		out = append(out, id)
	}
	return out
}

// PreOrder returns the nodes reachable from the root, each node before its
// left subtree and its left subtree before its right subtree.
func (t *Tree) PreOrder() []NodeID {
	root := t.Root()
	if root == NoNode {
		return nil
	}

	out := make([]NodeID, 0, len(t.nodes))
	stack := make([]NodeID, 0, depthHint(len(t.nodes)))
	stack = append(stack, root)
	for len(stack) != 0 {
		last := len(stack) - 1
		id := stack[last]
		stack = stack[:last]
		out = append(out, id)

		n := &t.nodes[id]
		if n.right != NoNode {
			stack = append(stack, n.right)
		}
		if n.left != NoNode {
			stack = append(stack, n.left)
		}
	}
	return out
}

// Dump writes a programmer-readable picture of the tree to the given writer.
// Each line is one node, prefixed by the side it hangs from and one dash per
// level of depth.
func (t *Tree) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	if root := t.Root(); root != NoNode {
		t.dumpNode(&buf, root, "", 0)
	}
	return buf.WriteTo(w)
}

func (t *Tree) dumpNode(buf *bytes.Buffer, id NodeID, side string, depth int) {
	n := &t.nodes[id]
	fmt.Fprintf(buf, "%s%s%v\n", side, strings.Repeat("-", depth), n.value)
	if n.left != NoNode {
		t.dumpNode(buf, n.left, Left.String(), depth+1)
	}
	if n.right != NoNode {
		t.dumpNode(buf, n.right, Right.String(), depth+1)
	}
}

func (t *Tree) leftmost(id NodeID) NodeID {
	for t.nodes[id].left != NoNode {
		id = t.nodes[id].left
	}
	return id
}

func (t *Tree) nextInOrder(id NodeID, root NodeID) NodeID {
	if right := t.nodes[id].right; right != NoNode {
		return t.leftmost(right)
	}
	for id != root {
		parent := t.nodes[id].parent
		if t.nodes[parent].left == id {
			return parent
		}
		id = parent
	}
	return NoNode
}

func (t *Tree) top(id NodeID) NodeID {
	for t.nodes[id].parent != NoNode {
		id = t.nodes[id].parent
	}
	return id
}

func (t *Tree) check(id NodeID) {
	assert.Assertf(id >= 0 && int(id) < len(t.nodes), "node %d out of range [0, %d)", id, len(t.nodes))
}
