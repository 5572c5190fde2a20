package pool

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

// Test_Property_LIFO pushes random sequences and pops them back in reverse.
func Test_Property_LIFO(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7)) // Fixed seed for reproducibility
	p := New[int]()

	for round := range 50 {
		n := rng.IntN(40)
		vals := make([]int, n)
		h := p.NewStack()
		for i := range vals {
			vals[i] = rng.Int()
			var err error
			h, err = p.Push(vals[i], h)
			require.NoError(t, err)
		}

		for i := n - 1; i >= 0; i-- {
			var v int
			var err error
			h, v, err = p.Pop(h)
			require.NoError(t, err, "round %d", round)
			require.Equal(t, vals[i], v, "round %d, index %d", round, i)
		}
		require.Equal(t, Sentinel, h)
	}
}

// Test_Property_RandomOps applies random operations to several stacks and
// checks every stack against a slice model after each step.
func Test_Property_RandomOps(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	p := New[int]()

	const numStacks = 5
	heads := make([]Handle, numStacks)
	model := make([][]int, numStacks)

	for step := range 2000 {
		s := rng.IntN(numStacks)
		switch op := rng.IntN(10); {
		case op < 6:
			v := rng.IntN(1000)
			h, err := p.Push(v, heads[s])
			require.NoError(t, err)
			heads[s] = h
			model[s] = append(model[s], v)

		case op < 9:
			if len(model[s]) == 0 {
				_, _, err := p.Pop(heads[s])
				require.ErrorIs(t, err, ErrInvalidHandle, "step %d", step)
				continue
			}
			h, v, err := p.Pop(heads[s])
			require.NoError(t, err)
			heads[s] = h
			require.Equal(t, model[s][len(model[s])-1], v, "step %d", step)
			model[s] = model[s][:len(model[s])-1]

		default:
			h, err := p.FreeStack(heads[s])
			require.NoError(t, err)
			require.Equal(t, Sentinel, h)
			heads[s] = h
			model[s] = nil
		}

		live := 0
		for i := range heads {
			got, err := p.Collect(heads[i])
			require.NoError(t, err)
			want := make([]int, 0, len(model[i]))
			for j := len(model[i]) - 1; j >= 0; j-- {
				want = append(want, model[i][j])
			}
			if len(want) == 0 {
				want = nil
			}
			require.Equal(t, want, got, "step %d stack %d", step, i)
			live += len(model[i])
		}
		require.Equal(t, p.Len(), live+p.FreeLen(), "step %d: every slot is live or free", step)
	}
}

// Test_Property_NoGrowthWhileFreeSlotsExist checks that Len only increases
// when the free list is empty.
func Test_Property_NoGrowthWhileFreeSlotsExist(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))
	p := New[int]()
	h := p.NewStack()

	for range 1000 {
		if rng.IntN(2) == 0 || h == Sentinel {
			free := p.FreeLen()
			before := p.Len()
			var err error
			h, err = p.Push(1, h)
			require.NoError(t, err)
			if free > 0 {
				require.Equal(t, before, p.Len())
			} else {
				require.Equal(t, before+1, p.Len())
			}
			continue
		}
		var err error
		h, _, err = p.Pop(h)
		require.NoError(t, err)
	}
}
