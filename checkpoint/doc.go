// Package checkpoint persists and restores the durable cursor of a search
// run: the next unclaimed batch, the set of executed batches, and enough
// identity (run ID, filter fingerprint, provider shape) to refuse resuming
// into a different search.
//
// Checkpoints are self-describing: the envelope records the codec and
// compression by name, so a checkpoint written with one configuration loads
// under another.
package checkpoint
