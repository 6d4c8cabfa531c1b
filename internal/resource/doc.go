// Package resource implements the Controller for worker and rebuild limits.
//
// The Controller governs two resources:
//
//   - Workers: Bound the goroutines used by the pairwise similarity pass (semaphore)
//   - Rebuilds: Space out full rebuilds so a burst of triggers cannot monopolise the CPU (token bucket)
//
// # Worker Limits
//
//	rc := resource.NewController(resource.Config{MaxWorkers: 4})
//
//	if err := rc.AcquireWorker(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseWorker()
//
// # Rebuild Throttling
//
//	rc := resource.NewController(resource.Config{MinRebuildInterval: time.Second})
//
//	// Blocks until the previous rebuild is at least one second old.
//	if err := rc.WaitRebuild(ctx); err != nil {
//	    return err
//	}
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully - they become no-ops.
package resource
