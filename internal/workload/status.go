package workload

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/dataloom/webhook-sink-operator/api/v1alpha1"
)

// ProjectStatus builds the new WebhookSink status from the previous status,
// the health evaluation of the pre-existing pod, and the pod applied this
// pass. It is pure: the caller is responsible for writing the result back.
//
// restartCount only grows: it is the previous value plus one when a
// stale-terminated pod was deleted this pass.
func ProjectStatus(
	prev v1alpha1.WebhookSinkStatus,
	eval Evaluation,
	applied *corev1.Pod,
	generation int64,
) v1alpha1.WebhookSinkStatus {
	// The platform reports no creation timestamp for pods that are still
	// being admitted; fall back to the zero time so the condition is stable.
	created := applied.CreationTimestamp

	conditions := []metav1.Condition{
		{
			Type:               v1alpha1.ConditionPodScheduled,
			Status:             metav1.ConditionTrue,
			Reason:             v1alpha1.ReasonPodScheduled,
			Message:            "Pod has been scheduled",
			LastTransitionTime: created,
			ObservedGeneration: generation,
		},
	}

	phase := v1alpha1.PhaseRunning
	if eval.Health == RecentlyTerminated {
		phase = v1alpha1.PhaseError
		conditions = append(conditions, metav1.Condition{
			Type:               v1alpha1.ConditionPodTerminated,
			Status:             metav1.ConditionFalse,
			Reason:             v1alpha1.ReasonPodTerminate,
			Message:            "Pod has been terminated",
			LastTransitionTime: eval.FinishedAt,
			ObservedGeneration: generation,
		})
	}

	restartCount := prev.RestartCount
	if eval.Health == StaleTerminated {
		restartCount++
	}

	return v1alpha1.WebhookSinkStatus{
		InstanceName: applied.Name,
		PodCreated:   &created,
		Phase:        phase,
		Conditions:   conditions,
		RestartCount: restartCount,
	}
}
