// Package sched partitions the candidate space into batches and distributes
// them across a fixed pool of workers.
//
// Workers claim batch indices through a single atomic counter, so every
// batch in range is executed by exactly one worker exactly once. Pause is
// cooperative: a worker observes the status before claiming its next batch
// and parks at the pause rendezvous until resumed, so pausing takes effect
// at batch granularity. An error (or recovered panic) in any worker cancels
// the whole run; silent partial failure would be indistinguishable from
// success.
//
// The only shared mutable state is the batch index, the completed counter,
// the status word, and the executed-batch bitmap; per-worker scratch (hash
// caches, character matrices) is owned exclusively by its worker.
package sched
