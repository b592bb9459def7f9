package commission

import "testing"

// leftChain builds a tree of n members linked only through left legs.
func leftChain(n int, startID int64) *NetworkMember {
	if n <= 0 {
		return nil
	}
	return &NetworkMember{
		UserID: startID,
		Left:   leftChain(n-1, startID+1),
	}
}

func TestSubtreeSize(t *testing.T) {
	if got := SubtreeSize(nil); got != 0 {
		t.Errorf("SubtreeSize(nil) = %d, want 0", got)
	}
	if got := SubtreeSize(&NetworkMember{UserID: 1}); got != 1 {
		t.Errorf("SubtreeSize(single) = %d, want 1", got)
	}

	root := &NetworkMember{
		UserID: 1,
		Left:   leftChain(4, 10),
		Right: &NetworkMember{
			UserID: 20,
			Left:   &NetworkMember{UserID: 21},
			Right:  &NetworkMember{UserID: 22},
		},
	}
	if got := SubtreeSize(root); got != 8 {
		t.Errorf("SubtreeSize = %d, want 8", got)
	}
}

func TestPairCountSingleLegIsZero(t *testing.T) {
	for _, n := range []int{1, 2, 5, 20} {
		if got := PairCount(leftChain(n, 1)); got != 0 {
			t.Errorf("PairCount(left chain of %d) = %d, want 0", n, got)
		}
	}
}

func TestPairCountCountsNestedPairs(t *testing.T) {
	// Three left-leg members shaped as a chain against a two-member right
	// chain: only the root pairs up.
	chains := &NetworkMember{
		UserID: 1,
		Left:   leftChain(3, 10),
		Right:  leftChain(2, 20),
	}
	if got := PairCount(chains); got != 2 {
		t.Errorf("PairCount(chain legs) = %d, want 2", got)
	}

	// Same leg sizes, but the left leg is balanced internally, adding one
	// nested pair on top of the root's two.
	balanced := &NetworkMember{
		UserID: 1,
		Left: &NetworkMember{
			UserID: 10,
			Left:   &NetworkMember{UserID: 11},
			Right:  &NetworkMember{UserID: 12},
		},
		Right: leftChain(2, 20),
	}
	if got := PairCount(balanced); got != 3 {
		t.Errorf("PairCount(balanced left leg) = %d, want 3", got)
	}
}

func TestCreditedPairs(t *testing.T) {
	if got := creditedPairs(nil); got != 0 {
		t.Errorf("creditedPairs(nil) = %d, want 0", got)
	}
	if got := creditedPairs(&NetworkMember{UserID: 1}); got != 0 {
		t.Errorf("creditedPairs(childless) = %d, want 0", got)
	}

	// Legs of 12 and 15 with no nested imbalance: credited count equals
	// the root-level min.
	root := &NetworkMember{
		UserID: 1,
		Left:   leftChain(12, 100),
		Right:  leftChain(15, 200),
	}
	if got := creditedPairs(root); got != 12 {
		t.Errorf("creditedPairs(12/15 legs) = %d, want 12", got)
	}

	// The credited count always equals the whole-tree pair count, nested
	// pairs included.
	nested := &NetworkMember{
		UserID: 1,
		Left: &NetworkMember{
			UserID: 10,
			Left:   &NetworkMember{UserID: 11},
			Right:  &NetworkMember{UserID: 12},
		},
		Right: &NetworkMember{UserID: 20},
	}
	if got, want := creditedPairs(nested), PairCount(nested); got != want {
		t.Errorf("creditedPairs = %d, want PairCount %d", got, want)
	}
}
