// Package controller implements the Kubernetes controller for WebhookSink
// resources.
//
// The WebhookSinkReconciler drives one sink pod per WebhookSink:
//
//   - On every pass it looks up the previously applied pod, evaluates the
//     first container's terminated state, deletes pods that terminated longer
//     than the grace window ago, applies the desired pod as a server-side
//     apply patch, and merge-patches the observed state into the sink status.
//
//   - While a terminated pod is still inside the grace window it is left in
//     place for inspection; the status reports phase Error with a
//     PodTerminated condition instead.
//
//   - A finalizer on the WebhookSink guarantees the owned pod is deleted
//     before the resource itself is allowed to go away.
//
// # Reconcile pipeline
//
//	fetch pod -> evaluate health -> (delete) -> apply pod -> project status -> patch status
//
// Each step talks to the cluster through idempotent patches only; there is no
// in-process cache of pod state, so concurrent controllers converge on the
// same result.
//
// # Timing
//
// Successful passes requeue after Config.RequeueInterval (default 10s) so
// terminations are detected promptly. Any failure is logged and retried
// after Config.ErrorBackoff (default 30s) regardless of error kind. A pod
// is recycled once it has been terminated for Config.TerminationGrace
// (default 60s).
//
// # Leader Election
//
// When running multiple replicas for high availability, enable leader election
// via --leader-elect flag to ensure only one controller actively reconciles
// resources at a time.
package controller
