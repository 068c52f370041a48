// Package ledger models the host platform that retains arcadia's persistent
// records: addressable accounts holding a native-unit balance and an opaque
// byte buffer, a rent oracle mapping buffer sizes to the minimum balance an
// account must hold to stay retained, and the transfer/resize primitives.
//
// The centerpiece is Grow, which tops up a record's balance to the minimum
// required for a new size and reallocates its buffer in a single instruction.
// Grow itself is stateless; atomicity comes from running it inside a Tx
// obtained from a Transactional ledger, which stages every mutation and
// applies all of them on Commit or none on Rollback.
//
// Two implementations exist: MemoryLedger in this package, and the
// SQLite-backed ledger in internal/infrastructure/sqlite.
package ledger
