package ranking

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"testing"

	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/types"
)

func match(id string, score int) types.Match {
	return types.Match{MatchedUserID: id, OverallScore: score}
}

func TestBoard_Ordering(t *testing.T) {
	b := NewBoard(4)
	for _, m := range []types.Match{match("c", 70), match("a", 70), match("d", 90), match("b", 10)} {
		if err := b.Insert(m); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	out, err := b.TopN(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"d", "a", "c", "b"}
	if len(out) != len(want) {
		t.Fatalf("expected %d matches, got %d", len(want), len(out))
	}
	for i, id := range want {
		if out[i].MatchedUserID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, out[i].MatchedUserID)
		}
		if out[i].Rank != i+1 {
			t.Errorf("position %d: expected rank %d, got %d", i, i+1, out[i].Rank)
		}
	}
}

func TestBoard_TopNTruncates(t *testing.T) {
	b := NewBoard(0)
	for i := 0; i < 10; i++ {
		_ = b.Insert(match(fmt.Sprintf("u%02d", i), i*10))
	}

	out, err := b.TopN(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3, got %d", len(out))
	}
	if out[0].MatchedUserID != "u09" || out[2].MatchedUserID != "u07" {
		t.Errorf("unexpected order: %+v", out)
	}

	empty, err := b.TopN(0)
	if err != nil || len(empty) != 0 {
		t.Errorf("expected empty result for 0, got %v (%v)", empty, err)
	}

	if _, err := b.TopN(-1); !errors.Is(err, ErrInvalidLimit) {
		t.Errorf("expected ErrInvalidLimit, got %v", err)
	}
}

func TestBoard_RejectsDuplicates(t *testing.T) {
	b := NewBoard(2)
	if err := b.Insert(match("a", 50)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.Insert(match("a", 90)); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
	if err := b.Insert(match("", 90)); !errors.Is(err, ErrMissingID) {
		t.Errorf("expected ErrMissingID, got %v", err)
	}
	if len(b.byID) != 1 {
		t.Errorf("expected 1 entry, got %d", len(b.byID))
	}
}

func TestBoard_MatchesSortedReference(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	b := NewBoard(500)
	ref := make([]types.Match, 0, 500)

	for i := 0; i < 500; i++ {
		m := match(fmt.Sprintf("user-%03d", rng.Intn(100000)), rng.Intn(101))
		if err := b.Insert(m); err != nil {
			continue
		}
		ref = append(ref, m)
	}
	sort.Slice(ref, func(i, j int) bool {
		if ref[i].OverallScore != ref[j].OverallScore {
			return ref[i].OverallScore > ref[j].OverallScore
		}
		return ref[i].MatchedUserID < ref[j].MatchedUserID
	})

	out, err := b.TopN(len(ref))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range ref {
		if out[i].MatchedUserID != ref[i].MatchedUserID {
			t.Fatalf("position %d: expected %s, got %s", i, ref[i].MatchedUserID, out[i].MatchedUserID)
		}
	}
}

func TestBoard_ConcurrentInsert(t *testing.T) {
	b := NewBoard(1000)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 125; i++ {
				_ = b.Insert(match(fmt.Sprintf("w%d-%d", w, i), (w*i)%101))
			}
		}(w)
	}
	wg.Wait()

	if len(b.byID) != 1000 {
		t.Fatalf("expected 1000 entries, got %d", len(b.byID))
	}
	out, _ := b.TopN(1000)
	for i := 1; i < len(out); i++ {
		if less(out[i].OverallScore, out[i].MatchedUserID, out[i-1].OverallScore, out[i-1].MatchedUserID) {
			t.Fatalf("out of order at %d", i)
		}
	}
}

func BenchmarkBoard_Insert(b *testing.B) {
	ids := make([]string, b.N)
	for i := range ids {
		ids[i] = fmt.Sprintf("user-%d", i)
	}
	board := NewBoard(b.N)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = board.Insert(match(ids[i], i%101))
	}
}
