// Package printer renders the contents of a node pool for diagnostics.
package printer

import (
	"fmt"
	"io"
	"sort"

	"golang.org/x/text/language"

	"github.com/joshuapare/stackpool/pool"
)

const (
	DefaultMaxItems = 0
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs human-readable text format.
	FormatText Format = "text"

	// FormatJSON outputs JSON format.
	FormatJSON Format = "json"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// ShowHandles prefixes every value with the handle of its slot and lists
	// the free list when printing the whole pool.
	// Default: false
	ShowHandles bool

	// MaxItems limits how many values of one chain are printed (0 = unlimited).
	// Default: 0
	MaxItems int

	// Language selects digit grouping for counters in PrintStats.
	// Default: language.English
	Language language.Tag
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:      FormatText,
		ShowHandles: false,
		MaxItems:    DefaultMaxItems,
		Language:    language.English,
	}
}

// Source is the read-only view of a pool the printer needs.
// *pool.Pool[T] satisfies it.
type Source[T any] interface {
	Len() int
	Capacity() int
	FreeHead() pool.Handle
	Value(h pool.Handle) (T, error)
	Next(h pool.Handle) (pool.Handle, error)
	Stats() pool.Stats
}

// Printer handles formatted output of pool contents.
type Printer[T any] struct {
	opts   Options
	writer io.Writer
	src    Source[T]
}

// New creates a new Printer.
//
// Example:
//
//	p := printer.New[int](pl, os.Stdout, printer.DefaultOptions())
//	p.PrintStack(head)
func New[T any](src Source[T], w io.Writer, opts Options) *Printer[T] {
	if opts.Format == "" {
		opts.Format = FormatText
	}
	if opts.Language == language.Und {
		opts.Language = language.English
	}
	return &Printer[T]{
		opts:   opts,
		writer: w,
		src:    src,
	}
}

// entry is one node of a walked chain.
type entry[T any] struct {
	h pool.Handle
	v T
}

// chain collects up to MaxItems nodes from head. It reports how many nodes
// were left out.
func (p *Printer[T]) chain(head pool.Handle) ([]entry[T], int, error) {
	if head != pool.Sentinel && int(head) > p.src.Len() {
		return nil, 0, fmt.Errorf("%w: head %d beyond %d slots", pool.ErrInvalidHandle, head, p.src.Len())
	}
	var out []entry[T]
	skipped := 0
	steps := 0
	for h := head; h != pool.Sentinel; {
		steps++
		if steps > p.src.Len() {
			return nil, 0, fmt.Errorf("%w: chain from %d does not terminate", pool.ErrInvalidHandle, head)
		}
		if p.opts.MaxItems > 0 && len(out) >= p.opts.MaxItems {
			skipped++
		} else {
			v, err := p.src.Value(h)
			if err != nil {
				return nil, 0, err
			}
			out = append(out, entry[T]{h: h, v: v})
		}
		next, err := p.src.Next(h)
		if err != nil {
			return nil, 0, err
		}
		h = next
	}
	return out, skipped, nil
}

// PrintStack prints the values of one stack, front first.
//
// Example text output:
//
//	[ 20 10 ]
func (p *Printer[T]) PrintStack(head pool.Handle) error {
	entries, skipped, err := p.chain(head)
	if err != nil {
		return fmt.Errorf("print stack %d: %w", head, err)
	}
	if p.opts.Format == FormatJSON {
		return p.writeJSON(p.stackJSON("", head, entries, skipped))
	}
	return p.printStackText("", entries, skipped)
}

// PrintStacks prints several named stacks in name order.
func (p *Printer[T]) PrintStacks(stacks map[string]pool.Handle) error {
	names := make([]string, 0, len(stacks))
	for name := range stacks {
		names = append(names, name)
	}
	sort.Strings(names)

	if p.opts.Format == FormatJSON {
		out := make([]jsonStack, 0, len(names))
		for _, name := range names {
			entries, skipped, err := p.chain(stacks[name])
			if err != nil {
				return fmt.Errorf("print stack %q: %w", name, err)
			}
			out = append(out, p.stackJSON(name, stacks[name], entries, skipped))
		}
		return p.writeJSON(out)
	}

	for _, name := range names {
		entries, skipped, err := p.chain(stacks[name])
		if err != nil {
			return fmt.Errorf("print stack %q: %w", name, err)
		}
		if err := p.printStackText(name+": ", entries, skipped); err != nil {
			return err
		}
	}
	return nil
}

// PrintPool prints every slot value in slot order, live or free.
//
// Example text output:
//
//	pool = [ 10 20 30 ]
func (p *Printer[T]) PrintPool() error {
	free, skipped, err := p.chain(p.src.FreeHead())
	if err != nil {
		return fmt.Errorf("print pool: free list: %w", err)
	}
	if p.opts.Format == FormatJSON {
		return p.printPoolJSON(free, skipped)
	}
	return p.printPoolText(free, skipped)
}

// PrintStats prints the pool counters.
func (p *Printer[T]) PrintStats() error {
	if p.opts.Format == FormatJSON {
		return p.printStatsJSON()
	}
	return p.printStatsText()
}
