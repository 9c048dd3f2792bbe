package workload

import (
	"sort"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/utils/ptr"

	"github.com/dataloom/webhook-sink-operator/api/v1alpha1"
)

// Sink container contract. The sink binary serves its status endpoint on a
// fixed port; probes and the container port must agree with it.
const (
	ContainerName  = "sink"
	StatusPortName = "status"
	StatusPort     = 8118
	StatusPath     = "/status"

	statusServerArg = "--status-server-address=0.0.0.0:8118"
)

// Environment variables consumed by the sink binary.
const (
	EnvTargetURL = "TARGET_URL"
	EnvRaw       = "RAW"
	EnvFilter    = "FILTER"
	EnvTransform = "TRANSFORM"
)

const (
	filterVolumeName    = "filter"
	transformVolumeName = "transform"
	filterMountPath     = "/data/filter"
	transformMountPath  = "/data/transform"
	defaultFilterKey    = "filter.js"
	defaultTransformKey = "transform.js"

	managedByLabel = "app.kubernetes.io/managed-by"
	managedByValue = "webhook-sink-operator"
)

// BuildPod derives the desired sink pod for the given WebhookSink. The result
// is deterministic: applying it twice as a server-side apply patch is a no-op.
// defaultImage is used when the spec does not name an image.
func BuildPod(sink *v1alpha1.WebhookSink, defaultImage string) *corev1.Pod {
	env := []corev1.EnvVar{
		{Name: EnvTargetURL, Value: sink.Spec.TargetURL},
	}

	if sink.Spec.Raw {
		env = append(env, corev1.EnvVar{Name: EnvRaw, Value: "true"})
	}

	env = append(env, commonEnv(sink.Spec.Common.Env)...)

	var volumes []corev1.Volume

	var mounts []corev1.VolumeMount

	if ref := sink.Spec.Common.Stream.Filter; ref != nil {
		volume, mount, envVar := streamData(ref, filterVolumeName, filterMountPath, EnvFilter, defaultFilterKey)
		volumes = append(volumes, volume)
		mounts = append(mounts, mount)
		env = append(env, envVar)
	}

	if ref := sink.Spec.Common.Stream.Transform; ref != nil {
		volume, mount, envVar := streamData(ref, transformVolumeName, transformMountPath, EnvTransform, defaultTransformKey)
		volumes = append(volumes, volume)
		mounts = append(mounts, mount)
		env = append(env, envVar)
	}

	probe := &corev1.Probe{
		ProbeHandler: corev1.ProbeHandler{
			HTTPGet: &corev1.HTTPGetAction{
				Path:   StatusPath,
				Port:   intstr.FromInt32(StatusPort),
				Scheme: corev1.URISchemeHTTP,
			},
		},
	}

	container := corev1.Container{
		Name:  ContainerName,
		Image: sink.Spec.Common.ImageName(defaultImage),
		Args:  []string{statusServerArg},
		Env:   env,
		Ports: []corev1.ContainerPort{
			{Name: StatusPortName, ContainerPort: StatusPort},
		},
		ImagePullPolicy: sink.Spec.Common.ImagePullPolicy(),
		LivenessProbe:   probe,
		ReadinessProbe:  probe.DeepCopy(),
		VolumeMounts:    mounts,
	}

	return &corev1.Pod{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Pod",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      sink.Name,
			Namespace: sink.Namespace,
			Labels: map[string]string{
				managedByLabel: managedByValue,
			},
		},
		Spec: corev1.PodSpec{
			Containers:       []corev1.Container{container},
			Volumes:          volumes,
			ImagePullSecrets: sink.Spec.Common.ImagePullSecrets(),
			RestartPolicy:    corev1.RestartPolicyNever,
			// The sink never talks to the API server.
			AutomountServiceAccountToken: ptr.To(false),
		},
	}
}

// commonEnv converts the spec's env map into EnvVars in sorted key order so
// the manifest stays stable across reconciles.
func commonEnv(env map[string]string) []corev1.EnvVar {
	if len(env) == 0 {
		return nil
	}

	keys := make([]string, 0, len(env))
	for key := range env {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	vars := make([]corev1.EnvVar, 0, len(keys))
	for _, key := range keys {
		vars = append(vars, corev1.EnvVar{Name: key, Value: env[key]})
	}

	return vars
}

// streamData turns a stream script reference into the volume, mount and env
// var triple the sink container needs to load it.
func streamData(
	ref *v1alpha1.StreamDataRef,
	volumeName, mountPath, envName, defaultKey string,
) (corev1.Volume, corev1.VolumeMount, corev1.EnvVar) {
	volume := corev1.Volume{
		Name: volumeName,
		VolumeSource: corev1.VolumeSource{
			ConfigMap: &corev1.ConfigMapVolumeSource{
				LocalObjectReference: corev1.LocalObjectReference{Name: ref.ConfigMap},
			},
		},
	}

	mount := corev1.VolumeMount{
		Name:      volumeName,
		MountPath: mountPath,
		ReadOnly:  true,
	}

	envVar := corev1.EnvVar{
		Name:  envName,
		Value: mountPath + "/" + ref.GetKey(defaultKey),
	}

	return volume, mount, envVar
}
