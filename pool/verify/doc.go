// Package verify checks the structural invariants of a node pool.
//
// # Overview
//
// The pool core only range checks handles; it cannot tell whether a chain has
// been corrupted by stale handles or by raw SetNext calls. The checks here
// walk every chain and are meant for tests, snapshot loading and diagnostic
// tooling, not for hot paths.
//
// Validation categories:
//   - FreeList: the free list terminates and stays in range
//   - Stacks: every stack terminates, no two chains share a node, and no stack
//     runs into the free list
//   - Accounting: every slot is either live or free (no leaked slots)
//
// # Quick Start
//
//	if err := verify.AllInvariants(p, headA, headB); err != nil {
//	    return fmt.Errorf("pool corrupted: %w", err)
//	}
//
// Accounting is only meaningful when every live head is supplied. Callers that
// track a subset of the stacks should call FreeList and Stacks directly.
//
// # ValidationError
//
// All checks return *ValidationError on failure:
//
//	var verr *verify.ValidationError
//	if errors.As(err, &verr) {
//	    fmt.Println(verr.Type, verr.Handle, verr.Details["owner"])
//	}
//
// # Cost
//
// Every check is O(Len) time and allocates an O(Len) ownership table.
package verify
