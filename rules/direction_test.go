package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectionTrackerRejectsReversal(t *testing.T) {
	tr := NewDirectionTracker()
	require.Equal(t, Right, tr.Commit())

	ok := tr.Set(Left)
	assert.False(t, ok, "reversal of the committed direction must be discarded")
	assert.Equal(t, Right, tr.Commit())
}

func TestDirectionTrackerDoublePressWithinOneTick(t *testing.T) {
	tr := NewDirectionTracker()
	tr.Commit() // committed: right

	// Up then left arrive before the next commit. Left is not the opposite
	// of the committed direction (right is still committed), but the
	// tracker checks against committed, not pending, so left is rejected.
	require.True(t, tr.Set(Up))
	require.False(t, tr.Set(Left))
	assert.Equal(t, Up, tr.Commit())
}

func TestDirectionTrackerNeverCommitsOpposite(t *testing.T) {
	tr := NewDirectionTracker()
	inputs := []Direction{Up, Left, Left, Down, Right, Up, Down, Down, Left, Up, Right, Right}

	prev := tr.Commit()
	for _, d := range inputs {
		tr.Set(d)
		got := tr.Commit()
		assert.NotEqual(t, prev.Opposite(), got, "committed %v after %v", got, prev)
		prev = got
	}
}

func TestDirectionTrackerReset(t *testing.T) {
	tr := NewDirectionTracker()
	tr.Set(Up)
	tr.Commit()
	tr.Reset()
	assert.Equal(t, Right, tr.Commit())
}

func TestDirectionOpposites(t *testing.T) {
	assert.Equal(t, Down, Up.Opposite())
	assert.Equal(t, Up, Down.Opposite())
	assert.Equal(t, Right, Left.Opposite())
	assert.Equal(t, Left, Right.Opposite())
}
