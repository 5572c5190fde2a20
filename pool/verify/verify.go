package verify

import (
	"fmt"

	"github.com/joshuapare/stackpool/pool"
)

// Inspector is the read-only view of a pool the checks need.
// *pool.Pool[T] satisfies it for every T.
type Inspector interface {
	Len() int
	FreeHead() pool.Handle
	Next(h pool.Handle) (pool.Handle, error)
}

// ValidationError describes a violated invariant.
type ValidationError struct {
	Type    string
	Message string
	Handle  pool.Handle // Offending handle (Sentinel if N/A)
	Details map[string]any
}

func (e *ValidationError) Error() string {
	if e.Handle != pool.Sentinel {
		return fmt.Sprintf("%s at handle %d: %s", e.Type, e.Handle, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

const freeOwner = "free list"

// ownership maps slot index to the label of the chain that reached it.
type ownership []string

// walk follows the chain from head, claiming every slot for owner.
func (o ownership) walk(p Inspector, typ, owner string, head pool.Handle) (int, error) {
	n := 0
	for h := head; h != pool.Sentinel; {
		if int(h) > len(o) {
			return n, &ValidationError{
				Type:    typ,
				Message: fmt.Sprintf("%s: handle out of range (len %d)", owner, len(o)),
				Handle:  h,
			}
		}
		if prev := o[h-1]; prev != "" {
			var msg string
			switch prev {
			case owner:
				msg = fmt.Sprintf("%s does not terminate", owner)
			case freeOwner:
				msg = fmt.Sprintf("%s reaches the free list", owner)
			default:
				msg = fmt.Sprintf("%s shares a node with %s", owner, prev)
			}
			return n, &ValidationError{
				Type:    typ,
				Message: msg,
				Handle:  h,
				Details: map[string]any{"owner": prev, "claimant": owner},
			}
		}
		o[h-1] = owner
		n++

		next, err := p.Next(h)
		if err != nil {
			return n, &ValidationError{
				Type:    typ,
				Message: fmt.Sprintf("%s: %v", owner, err),
				Handle:  h,
			}
		}
		h = next
	}
	return n, nil
}

// AllInvariants runs FreeList, Stacks and Accounting over the given heads.
// Returns the first error encountered, or nil if all checks pass.
func AllInvariants(p Inspector, heads ...pool.Handle) error {
	return Accounting(p, heads...)
}

// FreeList validates that the free list terminates inside the pool.
func FreeList(p Inspector) error {
	own := make(ownership, p.Len())
	_, err := own.walk(p, "FreeList", freeOwner, p.FreeHead())
	return err
}

// Stacks validates that every chain terminates, that no two chains share a
// node, and that no chain reaches a free slot.
func Stacks(p Inspector, heads ...pool.Handle) error {
	own := make(ownership, p.Len())
	if _, err := own.walk(p, "FreeList", freeOwner, p.FreeHead()); err != nil {
		return err
	}
	_, err := walkStacks(p, own, heads)
	return err
}

// Accounting validates that the given stacks plus the free list cover every
// slot. The FreeList and Stacks walks run first.
func Accounting(p Inspector, heads ...pool.Handle) error {
	own := make(ownership, p.Len())
	free, err := own.walk(p, "FreeList", freeOwner, p.FreeHead())
	if err != nil {
		return err
	}
	live, err := walkStacks(p, own, heads)
	if err != nil {
		return err
	}
	return accounting(p.Len(), live, free)
}

func walkStacks(p Inspector, own ownership, heads []pool.Handle) (int, error) {
	live := 0
	for i, head := range heads {
		n, err := own.walk(p, "Stacks", fmt.Sprintf("stack %d", i), head)
		if err != nil {
			return live, err
		}
		live += n
	}
	return live, nil
}

func accounting(total, live, free int) error {
	if live+free != total {
		return &ValidationError{
			Type:    "Accounting",
			Message: fmt.Sprintf("%d live + %d free != %d slots", live, free, total),
			Details: map[string]any{
				"live":   live,
				"free":   free,
				"total":  total,
				"leaked": total - live - free,
			},
		}
	}
	return nil
}
