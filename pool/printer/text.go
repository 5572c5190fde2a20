package printer

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/message"

	"github.com/joshuapare/stackpool/pool"
)

func (p *Printer[T]) item(h pool.Handle, v T) string {
	if p.opts.ShowHandles {
		return fmt.Sprintf("%d:%v", h, v)
	}
	return fmt.Sprint(v)
}

func (p *Printer[T]) printStackText(prefix string, entries []entry[T], skipped int) error {
	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteString("[ ")
	for _, e := range entries {
		sb.WriteString(p.item(e.h, e.v))
		sb.WriteByte(' ')
	}
	if skipped > 0 {
		fmt.Fprintf(&sb, "... (+%d) ", skipped)
	}
	sb.WriteString("]\n")
	_, err := io.WriteString(p.writer, sb.String())
	return err
}

func (p *Printer[T]) printPoolText(free []entry[T], freeSkipped int) error {
	var sb strings.Builder
	sb.WriteString("pool = [ ")
	n := p.src.Len()
	limit := n
	if p.opts.MaxItems > 0 && p.opts.MaxItems < n {
		limit = p.opts.MaxItems
	}
	for i := 1; i <= limit; i++ {
		h := pool.Handle(i)
		v, err := p.src.Value(h)
		if err != nil {
			return err
		}
		sb.WriteString(p.item(h, v))
		sb.WriteByte(' ')
	}
	if limit < n {
		fmt.Fprintf(&sb, "... (+%d) ", n-limit)
	}
	sb.WriteString("]\n")

	if p.opts.ShowHandles {
		sb.WriteString("free = [ ")
		for _, e := range free {
			fmt.Fprintf(&sb, "%d ", e.h)
		}
		if freeSkipped > 0 {
			fmt.Fprintf(&sb, "... (+%d) ", freeSkipped)
		}
		sb.WriteString("]\n")
	}
	_, err := io.WriteString(p.writer, sb.String())
	return err
}

func (p *Printer[T]) printStatsText() error {
	mp := message.NewPrinter(p.opts.Language)
	s := p.src.Stats()
	free, skipped, err := p.chain(p.src.FreeHead())
	if err != nil {
		return fmt.Errorf("print stats: free list: %w", err)
	}

	rows := []struct {
		label string
		value int
	}{
		{"Slots", p.src.Len()},
		{"Capacity", p.src.Capacity()},
		{"Free slots", len(free) + skipped},
		{"Pushes", s.Pushes},
		{"Pops", s.Pops},
		{"Appends", s.Appends},
		{"Reuses", s.Reuses},
		{"Stacks freed", s.FreeStacks},
		{"Grows", s.Grows},
	}
	var sb strings.Builder
	for _, r := range rows {
		sb.WriteString(mp.Sprintf("%-14s %d\n", r.label+":", r.value))
	}
	_, err = io.WriteString(p.writer, sb.String())
	return err
}
