// Package ranking orders scored candidates on a treap.
//
// Ordering: overall score DESC, then candidate id ASC. "less" means ranks
// earlier, so an in-order traversal yields the match list from best to worst.
package ranking

import (
	"hash/fnv"
	"sync"

	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/types"
)

type node struct {
	id    string
	score int
	prio  uint64
	left  *node
	right *node
}

// less reports whether (aScore, aID) ranks before (bScore, bID).
func less(aScore int, aID string, bScore int, bID string) bool {
	if aScore != bScore {
		return aScore > bScore
	}
	return aID < bID
}

func rotateRight(y *node) *node {
	x := y.left
	y.left = x.right
	x.right = y
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	x.right = y.left
	y.left = x
	return y
}

// priority hashes the id so the tree shape only depends on the inserted set.
func priority(id string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	return h.Sum64()
}

func insert(n *node, id string, score int) *node {
	if n == nil {
		return &node{id: id, score: score, prio: priority(id)}
	}
	if less(score, id, n.score, n.id) {
		n.left = insert(n.left, id, score)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, id, score)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	return n
}

// collectTopN appends up to limit matches in rank order.
func collectTopN(n *node, limit int, byID map[string]types.Match, out *[]types.Match) {
	if n == nil || len(*out) >= limit {
		return
	}
	collectTopN(n.left, limit, byID, out)
	if len(*out) < limit {
		*out = append(*out, byID[n.id])
	}
	if len(*out) < limit {
		collectTopN(n.right, limit, byID, out)
	}
}

// Board collects scored candidates for one selection. Workers may insert
// concurrently; reads take the same lock.
type Board struct {
	mu   sync.Mutex
	root *node
	byID map[string]types.Match
}

// NewBoard creates an empty board sized for hint candidates.
func NewBoard(hint int) *Board {
	if hint < 0 {
		hint = 0
	}
	return &Board{byID: make(map[string]types.Match, hint)}
}

// Insert adds m. A second match for the same candidate is rejected with
// ErrDuplicate so a selection never returns a candidate twice.
func (b *Board) Insert(m types.Match) error {
	if m.MatchedUserID == "" {
		return ErrMissingID
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.byID[m.MatchedUserID]; ok {
		return ErrDuplicate
	}
	b.byID[m.MatchedUserID] = m
	b.root = insert(b.root, m.MatchedUserID, m.OverallScore)
	return nil
}

// TopN returns the best n matches with 1-based positional ranks.
func (b *Board) TopN(n int) ([]types.Match, error) {
	if n < 0 {
		return nil, ErrInvalidLimit
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if n > len(b.byID) {
		n = len(b.byID)
	}
	out := make([]types.Match, 0, n)
	collectTopN(b.root, n, b.byID, &out)
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}
