// Package batch runs the sequential job loop for one invocation.
//
// The Orchestrator owns the batch lifecycle: it drains pending jobs from the
// queue one at a time, derives the output path, skips work whose output
// already exists, probes the source audio, builds the filter chain, and
// hands the job to the transcode worker. Job state transitions are
// persisted after every step and all user-facing output flows through the
// event bus.
//
// The Consumer is the other half: it polls the bus on a fixed interval and
// renders the three channels to the terminal until the tagged completion
// event arrives.
package batch
