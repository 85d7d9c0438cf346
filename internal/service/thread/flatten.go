package thread

import (
	"sort"

	"holidaily/internal/domain"
)

// Indentation applied to rendered threads.
const (
	BaseDepth = 10
	DepthStep = 20
	MaxDepth  = 80
)

// SortSiblings orders comments by votes then id, both descending.
func SortSiblings(comments []domain.Comment) {
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].SortsBefore(comments[j])
	})
}

// GroupChildren indexes replies by parent id, each list in sibling order.
func GroupChildren(replies []domain.Comment) map[int64][]domain.Comment {
	children := make(map[int64][]domain.Comment)
	for _, c := range replies {
		if c.ParentID == nil {
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], c)
	}
	for parent := range children {
		SortSiblings(children[parent])
	}
	return children
}

// Flatten walks root's subtree in pre-order using an explicit stack so deep
// threads cannot exhaust the goroutine stack. Every child of the same parent
// gets the same depth: the parent's depth plus DepthStep, capped at MaxDepth.
func Flatten(root domain.Comment, children map[int64][]domain.Comment) []domain.ThreadNode {
	nodes := []domain.ThreadNode{{Comment: root, Depth: BaseDepth}}
	depthOf := map[int64]int{root.ID: BaseDepth}
	childDepth := make(map[int64]int)

	stack := pushReversed(nil, children[root.ID])
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, seen := depthOf[c.ID]; seen {
			continue
		}

		parent := *c.ParentID
		depth, ok := childDepth[parent]
		if !ok {
			depth = min(depthOf[parent]+DepthStep, MaxDepth)
			childDepth[parent] = depth
		}
		depthOf[c.ID] = depth

		nodes = append(nodes, domain.ThreadNode{Comment: c, Depth: depth})
		stack = pushReversed(stack, children[c.ID])
	}

	return nodes
}

func pushReversed(stack, comments []domain.Comment) []domain.Comment {
	for i := len(comments) - 1; i >= 0; i-- {
		stack = append(stack, comments[i])
	}
	return stack
}

// Tombstone reports whether a flattened group is a lone deleted comment.
func Tombstone(nodes []domain.ThreadNode) bool {
	return len(nodes) == 1 && nodes[0].Comment.Deleted
}
