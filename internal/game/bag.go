package game

import (
	"math/rand"

	"github.com/vovakirdan/tetris-core/internal/tetris"
)

// Bag is the 7-bag randomiser: every run of seven draws contains each piece
// exactly once.
type Bag struct {
	rng  *rand.Rand
	bag  []tetris.PieceID
	next []tetris.PieceID // preview queue
	size int
}

// NewBag creates a bag with a preview queue of the given size.
func NewBag(seed int64, preview int) *Bag {
	b := &Bag{
		rng:  rand.New(rand.NewSource(seed)),
		size: max(preview, 0),
	}
	b.fill()
	return b
}

// Next draws the next piece.
func (b *Bag) Next() tetris.PieceID {
	id := b.next[0]
	b.next = b.next[1:]
	b.fill()
	return id
}

// Preview returns the upcoming pieces, nearest first.
func (b *Bag) Preview() []tetris.PieceID {
	out := make([]tetris.PieceID, b.size)
	copy(out, b.next)
	return out
}

// fill keeps at least size+1 pieces drawn ahead.
func (b *Bag) fill() {
	for len(b.next) <= b.size {
		if len(b.bag) == 0 {
			b.bag = append(b.bag[:0], tetris.AllPieces[:]...)
			b.rng.Shuffle(len(b.bag), func(i, j int) {
				b.bag[i], b.bag[j] = b.bag[j], b.bag[i]
			})
		}
		b.next = append(b.next, b.bag[0])
		b.bag = b.bag[1:]
	}
}
