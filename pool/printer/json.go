package printer

import (
	"encoding/json"
	"fmt"

	"github.com/joshuapare/stackpool/pool"
)

// jsonStack represents one stack in JSON format.
type jsonStack struct {
	Name      string        `json:"name,omitempty"`
	Head      pool.Handle   `json:"head"`
	Values    []any         `json:"values"`
	Handles   []pool.Handle `json:"handles,omitempty"`
	Truncated int           `json:"truncated,omitempty"`
}

// jsonSlot represents one backing-array slot in JSON format.
type jsonSlot struct {
	Handle pool.Handle `json:"handle"`
	Value  any         `json:"value"`
	Next   pool.Handle `json:"next"`
}

// jsonPool represents the whole pool in JSON format.
type jsonPool struct {
	Len       int           `json:"len"`
	Capacity  int           `json:"capacity"`
	FreeHead  pool.Handle   `json:"free_head"`
	Free      []pool.Handle `json:"free"`
	Slots     []jsonSlot    `json:"slots"`
	Truncated int           `json:"truncated,omitempty"`

	FreeTruncated int `json:"free_truncated,omitempty"`
}

// jsonStats represents the pool counters in JSON format.
type jsonStats struct {
	Len        int `json:"len"`
	Capacity   int `json:"capacity"`
	FreeLen    int `json:"free_len"`
	Pushes     int `json:"pushes"`
	Pops       int `json:"pops"`
	Appends    int `json:"appends"`
	Reuses     int `json:"reuses"`
	FreeStacks int `json:"free_stacks"`
	Grows      int `json:"grows"`
}

func (p *Printer[T]) stackJSON(name string, head pool.Handle, entries []entry[T], skipped int) jsonStack {
	js := jsonStack{
		Name:      name,
		Head:      head,
		Values:    make([]any, 0, len(entries)),
		Truncated: skipped,
	}
	for _, e := range entries {
		js.Values = append(js.Values, e.v)
		if p.opts.ShowHandles {
			js.Handles = append(js.Handles, e.h)
		}
	}
	return js
}

func (p *Printer[T]) printPoolJSON(free []entry[T], freeSkipped int) error {
	n := p.src.Len()
	limit := n
	if p.opts.MaxItems > 0 && p.opts.MaxItems < n {
		limit = p.opts.MaxItems
	}

	jp := jsonPool{
		Len:       n,
		Capacity:  p.src.Capacity(),
		FreeHead:  p.src.FreeHead(),
		Free:      make([]pool.Handle, 0, len(free)),
		Slots:     make([]jsonSlot, 0, limit),
		Truncated: n - limit,

		FreeTruncated: freeSkipped,
	}
	for _, e := range free {
		jp.Free = append(jp.Free, e.h)
	}
	for i := 1; i <= limit; i++ {
		h := pool.Handle(i)
		v, err := p.src.Value(h)
		if err != nil {
			return err
		}
		next, err := p.src.Next(h)
		if err != nil {
			return err
		}
		jp.Slots = append(jp.Slots, jsonSlot{Handle: h, Value: v, Next: next})
	}
	return p.writeJSON(jp)
}

func (p *Printer[T]) printStatsJSON() error {
	free, skipped, err := p.chain(p.src.FreeHead())
	if err != nil {
		return fmt.Errorf("print stats: free list: %w", err)
	}
	s := p.src.Stats()
	return p.writeJSON(jsonStats{
		Len:        p.src.Len(),
		Capacity:   p.src.Capacity(),
		FreeLen:    len(free) + skipped,
		Pushes:     s.Pushes,
		Pops:       s.Pops,
		Appends:    s.Appends,
		Reuses:     s.Reuses,
		FreeStacks: s.FreeStacks,
		Grows:      s.Grows,
	})
}

func (p *Printer[T]) writeJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.writer, "%s\n", data)
	return err
}
