// Package pure tables the results of pure functions by their arguments.
//
// Tableize is not just a utility to add memoization.
// Tableize is a tool that *forces the developer to ask*:
//
//	→ "Is this function really pure?"
//	→ "Can this computation be treated as a lazy table?"
//
// The centerpiece is Memo, an explicit table object: a wrapped function plus an
// injectable Store. Each call builds a Key from its positional arguments followed
// by its keyword arguments in insertion order; a repeated key returns the stored
// result without running the function again.
//
// Features:
//   - Memo and Args: positional and keyword arguments, errors never tabled.
//   - TableizeI1O1 to TableizeI4O2: typed memoizers for common arities.
//   - Stores: Trie (default, unbounded), SyncTrie (concurrent, last-write-wins),
//     BoundedTrie (dual-generation rotation). More live in the store package.
//
// An argument must be comparable at runtime or implement fmt.Stringer; anything
// else fails with ErrUnhashableKey.
//
// WARNING: Do not use Tableize on impure functions (e.g., those depending on time, I/O, etc).
package pure
