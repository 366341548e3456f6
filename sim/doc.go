// Package sim implements the Keep Away worker-queue simulation.
//
// # Reading Guide
//
//   - operation.go, routing.go: the pure per-item transforms
//   - worker.go: a worker's FIFO and its drain loop
//   - workerset.go: the index-addressed collection workers deliver into
//   - suppressor.go: worry suppression policies (floor division, modulo normalization)
//   - simulator.go: the round loop and scoring
//   - experiment.go: independent runs over clones of one initial configuration
//
// # Execution Model
//
// Everything is single-threaded and synchronous. A round drains workers in
// ascending index order and every delivery is visible immediately, so a worker
// also inspects items thrown to it earlier in the same round. Running two
// experiments over the same configuration requires separate clones of the
// WorkerSet; Experiment does this for each RunSpec.
//
// Input parsing lives in sim/notes.
package sim
