// Package workload derives the desired sink pod from a WebhookSink spec and
// evaluates the health of an already running pod. All functions here are pure
// so the reconcile pipeline can be exercised without a cluster.
package workload
