/*
Package replay is the entity timeline replay engine: it projects a
continuous position and a discrete status for every entity of a loaded run,
under two access patterns.

# The two resolvers

The Advancer (driven through Engine.Tick) is the stepped, event-aware
resolver. Each tick it advances every active entity's cursor by applying the
event under it: APPEAR places the entity, MOVE interpolates along path
segments at the entity's speed, WAIT holds position, the passenger-coupled
events (LOAD, DROP-OFF, ENQUEUE, RESET) apply instantaneously and project
status, FINISH terminates.

Seek is the stateless resolver: it computes a position for an arbitrary
absolute time directly from path geometry at constant speed. It ignores WAIT
and queued-delay events, so it can diverge from the Advancer for timelines
containing them. The divergence is deliberate and pinned by a regression
test; this package does not reconcile the two models.

# Clock

All resolvers read the one shared Clock. The engine is its single writer;
each tick the new reading is pulled and handed to every entity's advancer -
nothing is pushed.

# Notifications

Every applied discrete event, every skipped unknown event kind and every
per-entity failure is delivered synchronously to OnEvent listeners through
one channel, tagged by severity. A single consumer can therefore both log
activity and detect faults.

# Failure isolation

Per-tick failures are per-entity: an out-of-range path index halts only the
affected entity's advancement. Unknown event kinds are skipped with a
warning. Only load-time validation (package timeline) rejects whole batches.

# Thread safety

One scheduler goroutine calls Tick; query methods (GetPosition, GetStatus,
Snapshot, SeekPosition) may run concurrently with it. Listeners run inside
Tick's critical section and must not call back into the engine.
*/
package replay
