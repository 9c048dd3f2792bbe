package v1alpha1

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// WebhookSinkCRDName is the registered name of the WebhookSink custom
// resource definition, used in startup preflight error messages.
const WebhookSinkCRDName = "webhooksinks.dataloom.io"

// Phase values reported in WebhookSinkStatus.
const (
	// PhaseRunning means the sink pod is scheduled and not known to be terminated.
	PhaseRunning = "Running"
	// PhaseError means the sink pod terminated recently and has not been recycled yet.
	PhaseError = "Error"
)

// Condition types and reasons produced by the controller.
const (
	// ConditionPodScheduled is set to True on every successful reconcile pass.
	ConditionPodScheduled = "PodScheduled"
	// ConditionPodTerminated is set to False while a terminated container is
	// still within its grace window.
	ConditionPodTerminated = "PodTerminated"

	ReasonPodScheduled = "PodScheduled"
	ReasonPodTerminate = "PodTerminate"
)

// ImageConfig configures the container image of the sink pod.
type ImageConfig struct {
	// Name is the image reference. If empty, the controller-wide default
	// sink image is used.
	// +optional
	Name string `json:"name,omitempty"`

	// PullSecrets are references to secrets used to pull the image.
	// +optional
	PullSecrets []corev1.LocalObjectReference `json:"pullSecrets,omitempty"`

	// PullPolicy is the image pull policy for the sink container.
	// +optional
	// +kubebuilder:validation:Enum=Always;IfNotPresent;Never;""
	PullPolicy corev1.PullPolicy `json:"pullPolicy,omitempty"`
}

// StreamDataRef references a ConfigMap key containing a stream script.
type StreamDataRef struct {
	// ConfigMap is the name of the ConfigMap holding the script.
	// +kubebuilder:validation:Required
	// +kubebuilder:validation:MinLength=1
	ConfigMap string `json:"configMap"`

	// Key in the ConfigMap. Defaults depend on context:
	// - For stream.filter: "filter.js"
	// - For stream.transform: "transform.js"
	// +optional
	Key string `json:"key,omitempty"`
}

// GetKey returns the ConfigMap key, falling back to the given default.
func (r *StreamDataRef) GetKey(def string) string {
	if r.Key == "" {
		return def
	}
	return r.Key
}

// StreamConfig references optional filter and transform scripts applied to
// the stream before delivery.
type StreamConfig struct {
	// Filter references a script that filters stream data.
	// +optional
	Filter *StreamDataRef `json:"filter,omitempty"`

	// Transform references a script that transforms stream data.
	// +optional
	Transform *StreamDataRef `json:"transform,omitempty"`
}

// CommonSpec holds configuration shared by all sink kinds.
type CommonSpec struct {
	// Image configures the sink container image.
	// +optional
	Image *ImageConfig `json:"image,omitempty"`

	// Stream references optional filter/transform scripts.
	// +optional
	Stream StreamConfig `json:"stream,omitempty"`

	// Env is a map of additional environment variables injected into the
	// sink container.
	// +optional
	Env map[string]string `json:"env,omitempty"`
}

// ImageName returns the configured image name, falling back to the given
// controller-wide default.
func (c *CommonSpec) ImageName(def string) string {
	if c.Image == nil || c.Image.Name == "" {
		return def
	}
	return c.Image.Name
}

// ImagePullSecrets returns the configured pull secrets, if any.
func (c *CommonSpec) ImagePullSecrets() []corev1.LocalObjectReference {
	if c.Image == nil {
		return nil
	}
	return c.Image.PullSecrets
}

// ImagePullPolicy returns the configured pull policy, if any.
func (c *CommonSpec) ImagePullPolicy() corev1.PullPolicy {
	if c.Image == nil {
		return ""
	}
	return c.Image.PullPolicy
}

// WebhookSinkSpec defines the desired state of WebhookSink.
type WebhookSinkSpec struct {
	// TargetURL is the URL invoked for every delivered batch.
	// +kubebuilder:validation:Required
	// +kubebuilder:validation:Pattern=`^https?://`
	TargetURL string `json:"targetUrl"`

	// Raw controls whether the payload is posted as-is, without the
	// envelope added by the sink.
	// +optional
	Raw bool `json:"raw,omitempty"`

	// Common holds configuration shared by all sink kinds.
	// +optional
	Common CommonSpec `json:"common,omitempty"`
}

// WebhookSinkStatus defines the observed state of WebhookSink.
// It is owned exclusively by the controller.
type WebhookSinkStatus struct {
	// InstanceName is the name of the pod last applied for this sink.
	// +optional
	InstanceName string `json:"instanceName,omitempty"`

	// PodCreated is the creation timestamp of the applied pod.
	// +optional
	PodCreated *metav1.Time `json:"podCreated,omitempty"`

	// Phase is Running or Error.
	// +optional
	// +kubebuilder:validation:Enum=Running;Error
	Phase string `json:"phase,omitempty"`

	// Conditions describe the current state of the sink pod.
	// +optional
	// +listType=map
	// +listMapKey=type
	Conditions []metav1.Condition `json:"conditions,omitempty"`

	// RestartCount is the number of times the controller recycled the sink
	// pod. It never decreases.
	// +optional
	RestartCount int32 `json:"restartCount,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:shortName=whsink
// +kubebuilder:printcolumn:name="Target",type=string,JSONPath=`.spec.targetUrl`
// +kubebuilder:printcolumn:name="Phase",type=string,JSONPath=`.status.phase`
// +kubebuilder:printcolumn:name="Restarts",type=integer,JSONPath=`.status.restartCount`
// +kubebuilder:printcolumn:name="Age",type=date,JSONPath=`.metadata.creationTimestamp`

// WebhookSink is the Schema for the webhooksinks API.
// It declares a webhook delivery target backed by a single sink pod whose
// lifecycle is managed by the controller.
type WebhookSink struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   WebhookSinkSpec   `json:"spec,omitempty"`
	Status WebhookSinkStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// WebhookSinkList contains a list of WebhookSink.
type WebhookSinkList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []WebhookSink `json:"items"`
}

func init() {
	SchemeBuilder.Register(&WebhookSink{}, &WebhookSinkList{})
}
