package commission

// SubtreeSize counts the members of the tree rooted at node, 0 for an
// absent node.
func SubtreeSize(node *NetworkMember) int {
	if node == nil {
		return 0
	}
	return 1 + SubtreeSize(node.Left) + SubtreeSize(node.Right)
}

// PairCount counts balanced left/right pairs at every node of the tree.
// Each node contributes min(leftSize, rightSize) pairs; nested sub-pairs
// within each leg are counted on top of that.
func PairCount(node *NetworkMember) int {
	if node == nil {
		return 0
	}

	left := SubtreeSize(node.Left)
	right := SubtreeSize(node.Right)
	pairs := left
	if right < left {
		pairs = right
	}

	return pairs + PairCount(node.Left) + PairCount(node.Right)
}
