// Package pipeline turns an input tree into a batch of conversion jobs and
// runs them.
//
// Flow:
//
//	Discover -> BuildItems -> Scheduler.RunAll -> Runner.Run (per item)
//	                                 |
//	                                 +-> reducer: FailureHandler / stats.Recorder
//
// Discovery is recursive and sorted. Each [WorkItem] derives every output
// path from a collision-free short name, so concurrent jobs never touch the
// same file. The [Scheduler] runs a fixed number of workers and funnels every
// [Outcome] into one reducer goroutine; [Pipeline.Run] wires it all together
// and finalizes statistics from a defer so they are written even on
// interruption.
package pipeline
