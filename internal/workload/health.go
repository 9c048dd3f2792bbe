package workload

import (
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Health classifies the state of an existing sink pod.
type Health int

const (
	// Healthy means the pod's container has no terminated state; nothing to do.
	Healthy Health = iota
	// RecentlyTerminated means the container terminated less than the grace
	// window ago. The pod is left in place so operators can inspect it, and
	// the status reports an error condition.
	RecentlyTerminated
	// StaleTerminated means the container terminated at least the grace
	// window ago. The pod should be deleted and recreated in the same pass.
	StaleTerminated
)

// String returns the health as a label-friendly string.
func (h Health) String() string {
	switch h {
	case RecentlyTerminated:
		return "recently_terminated"
	case StaleTerminated:
		return "stale_terminated"
	default:
		return "healthy"
	}
}

// Evaluation is the outcome of inspecting an existing sink pod.
type Evaluation struct {
	Health Health

	// FinishedAt is the container's termination time. Only meaningful when
	// Health is not Healthy.
	FinishedAt metav1.Time
}

// Evaluate inspects the first container's terminated state and decides
// whether the pod should be kept, reported as errored, or recycled.
// A nil pod or a pod without a terminated container is Healthy.
func Evaluate(pod *corev1.Pod, now time.Time, grace time.Duration) Evaluation {
	if pod == nil {
		return Evaluation{Health: Healthy}
	}

	if len(pod.Status.ContainerStatuses) == 0 {
		return Evaluation{Health: Healthy}
	}

	terminated := pod.Status.ContainerStatuses[0].State.Terminated
	if terminated == nil {
		return Evaluation{Health: Healthy}
	}

	// The kubelet can report a terminated state before it records the
	// completion time. Take no action until the time is known, otherwise
	// the zero time would look staler than any grace window.
	if terminated.FinishedAt.IsZero() {
		return Evaluation{Health: Healthy}
	}

	if now.Sub(terminated.FinishedAt.Time) >= grace {
		return Evaluation{Health: StaleTerminated, FinishedAt: terminated.FinishedAt}
	}

	return Evaluation{Health: RecentlyTerminated, FinishedAt: terminated.FinishedAt}
}
