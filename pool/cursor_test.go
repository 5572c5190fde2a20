package pool

import (
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCursor_WalkUntilEnd(t *testing.T) {
	p := New[int]()
	h := pushAll(t, p, Sentinel, 1, 2, 3)

	c, err := p.Begin(h)
	require.NoError(t, err)
	end := p.End()

	var got []int
	for !c.Equal(end) {
		v, err := c.Value()
		require.NoError(t, err)
		got = append(got, v)
		require.NoError(t, c.Advance())
	}
	require.Equal(t, []int{3, 2, 1}, got)
	require.True(t, c.Done())
	require.Equal(t, Sentinel, c.Handle())
}

func TestCursor_EndPositionFails(t *testing.T) {
	p := New[int]()
	c := p.End()

	_, err := c.Value()
	require.ErrorIs(t, err, ErrInvalidHandle)
	require.ErrorIs(t, c.Advance(), ErrInvalidHandle)

	_, err = c.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestCursor_Next(t *testing.T) {
	p := New[string]()
	h := pushAll(t, p, Sentinel, "x", "y")

	c, err := p.Begin(h)
	require.NoError(t, err)

	v, err := c.Next()
	require.NoError(t, err)
	require.Equal(t, "y", v)
	v, err = c.Next()
	require.NoError(t, err)
	require.Equal(t, "x", v)
	_, err = c.Next()
	require.True(t, errors.Is(err, io.EOF))
}

func TestCursor_BeginInvalid(t *testing.T) {
	p := New[int]()
	_, err := p.Begin(4)
	require.ErrorIs(t, err, ErrInvalidHandle)

	c, err := p.Begin(Sentinel)
	require.NoError(t, err)
	require.True(t, c.Done())
}

func TestCursor_EqualAcrossPools(t *testing.T) {
	p1, p2 := New[int](), New[int]()
	require.True(t, p1.End().Equal(p1.End()))
	require.False(t, p1.End().Equal(p2.End()))
}

func TestCursor_RestartFromSameHead(t *testing.T) {
	p := New[int]()
	h := pushAll(t, p, Sentinel, 5, 6)

	for range 2 {
		got, err := p.Collect(h)
		require.NoError(t, err)
		require.Equal(t, []int{6, 5}, got)
	}
}

func TestCursor_StaleAfterMutation(t *testing.T) {
	p := New[int]()
	a := pushAll(t, p, Sentinel, 1, 2)
	b := pushAll(t, p, Sentinel, 3)

	c, err := p.Begin(a)
	require.NoError(t, err)

	_, err = p.Push(4, b)
	require.NoError(t, err)

	_, err = c.Value()
	require.ErrorIs(t, err, ErrStaleCursor)
	require.ErrorIs(t, c.Advance(), ErrStaleCursor)
	_, err = c.Next()
	require.ErrorIs(t, err, ErrStaleCursor)
}

func TestCursor_SetValueKeepsCursorValid(t *testing.T) {
	p := New[int]()
	h := pushAll(t, p, Sentinel, 1)

	c, err := p.Begin(h)
	require.NoError(t, err)
	require.NoError(t, p.SetValue(h, 2))

	v, err := c.Value()
	require.NoError(t, err)
	require.Equal(t, 2, v)
}

func TestValues(t *testing.T) {
	p := New[int]()
	h := pushAll(t, p, Sentinel, 1, 2, 3, 4)

	var got []int
	for v := range p.Values(h) {
		got = append(got, v)
		if v == 2 {
			break
		}
	}
	require.Equal(t, []int{4, 3, 2}, got)

	for range p.Values(99) {
		t.Fatal("invalid head must yield nothing")
	}
}

func TestAll_PanicsOnMutation(t *testing.T) {
	p := New[int]()
	h := pushAll(t, p, Sentinel, 1, 2)

	require.PanicsWithError(t, ErrStaleCursor.Error(), func() {
		for _, v := range p.All(h) {
			_, _ = p.Push(v, Sentinel)
		}
	})
}

func TestCursor_ConcurrentReaders(t *testing.T) {
	p := New[int]()
	a := pushAll(t, p, Sentinel, 1, 2, 3)
	b := pushAll(t, p, Sentinel, 4, 5)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := range 8 {
		head := a
		if i%2 == 1 {
			head = b
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := p.Collect(head); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}
