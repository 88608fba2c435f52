// Package filter compiles declarative Must/Should/MustNot clauses into an
// evaluator and runs the two-phase search strategy:
//
//	Unevaluated -> Vector-Prefiltered -> Scalar-Verified -> Resolved
//
// The vector phase evaluates cheaply vectorizable clause groups (vouchers,
// tags, bosses) across all lanes of a batch, producing a surviving-lane
// mask. It is a conservative prefilter: it never drops a lane the scalar
// phase would accept. The scalar phase replays each surviving seed with a
// fresh run state and produces the final Match/Reject verdict plus the
// should-clause score.
//
// All configuration errors are detected at construction time, before any
// batch executes.
package filter
