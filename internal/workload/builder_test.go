package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/dataloom/webhook-sink-operator/api/v1alpha1"
)

const testDefaultImage = "ghcr.io/dataloom/webhook-sink:1.2.3"

func newSink(spec v1alpha1.WebhookSinkSpec) *v1alpha1.WebhookSink {
	return &v1alpha1.WebhookSink{
		ObjectMeta: metav1.ObjectMeta{
			Name:      "my-sink",
			Namespace: "default",
		},
		Spec: spec,
	}
}

func envNames(env []corev1.EnvVar) []string {
	names := make([]string, 0, len(env))
	for _, e := range env {
		names = append(names, e.Name)
	}

	return names
}

func envValue(t *testing.T, env []corev1.EnvVar, name string) string {
	t.Helper()

	for _, e := range env {
		if e.Name == name {
			return e.Value
		}
	}

	t.Fatalf("env var %s not found", name)

	return ""
}

func TestBuildPod_Basic(t *testing.T) {
	t.Parallel()

	sink := newSink(v1alpha1.WebhookSinkSpec{
		TargetURL: "http://example/hook",
	})

	pod := BuildPod(sink, testDefaultImage)

	assert.Equal(t, "my-sink", pod.Name)
	assert.Equal(t, "default", pod.Namespace)
	assert.Equal(t, corev1.RestartPolicyNever, pod.Spec.RestartPolicy)

	require.NotNil(t, pod.Spec.AutomountServiceAccountToken)
	assert.False(t, *pod.Spec.AutomountServiceAccountToken)

	require.Len(t, pod.Spec.Containers, 1)

	container := pod.Spec.Containers[0]
	assert.Equal(t, ContainerName, container.Name)
	assert.Equal(t, testDefaultImage, container.Image)
	assert.Equal(t, []string{"--status-server-address=0.0.0.0:8118"}, container.Args)

	require.Len(t, container.Ports, 1)
	assert.Equal(t, StatusPortName, container.Ports[0].Name)
	assert.Equal(t, int32(StatusPort), container.Ports[0].ContainerPort)
}

func TestBuildPod_EnvAssembly(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		spec     v1alpha1.WebhookSinkSpec
		expected []string
	}{
		{
			name: "target url only",
			spec: v1alpha1.WebhookSinkSpec{
				TargetURL: "http://example/hook",
			},
			expected: []string{EnvTargetURL},
		},
		{
			name: "raw adds RAW",
			spec: v1alpha1.WebhookSinkSpec{
				TargetURL: "http://example/hook",
				Raw:       true,
			},
			expected: []string{EnvTargetURL, EnvRaw},
		},
		{
			name: "common env sorted by key",
			spec: v1alpha1.WebhookSinkSpec{
				TargetURL: "http://example/hook",
				Common: v1alpha1.CommonSpec{
					Env: map[string]string{
						"ZULU":  "z",
						"ALPHA": "a",
						"MIKE":  "m",
					},
				},
			},
			expected: []string{EnvTargetURL, "ALPHA", "MIKE", "ZULU"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pod := BuildPod(newSink(tt.spec), testDefaultImage)

			require.Len(t, pod.Spec.Containers, 1)
			assert.Equal(t, tt.expected, envNames(pod.Spec.Containers[0].Env))
		})
	}
}

func TestBuildPod_EnvValues(t *testing.T) {
	t.Parallel()

	sink := newSink(v1alpha1.WebhookSinkSpec{
		TargetURL: "http://example/hook",
		Raw:       true,
	})

	pod := BuildPod(sink, testDefaultImage)
	env := pod.Spec.Containers[0].Env

	assert.Equal(t, "http://example/hook", envValue(t, env, EnvTargetURL))
	assert.Equal(t, "true", envValue(t, env, EnvRaw))
}

func TestBuildPod_NoRawWhenFalse(t *testing.T) {
	t.Parallel()

	sink := newSink(v1alpha1.WebhookSinkSpec{
		TargetURL: "http://example/hook",
		Raw:       false,
	})

	pod := BuildPod(sink, testDefaultImage)

	assert.NotContains(t, envNames(pod.Spec.Containers[0].Env), EnvRaw)
}

func TestBuildPod_ImageOverride(t *testing.T) {
	t.Parallel()

	sink := newSink(v1alpha1.WebhookSinkSpec{
		TargetURL: "http://example/hook",
		Common: v1alpha1.CommonSpec{
			Image: &v1alpha1.ImageConfig{
				Name:       "custom/sink:2.0.0",
				PullPolicy: corev1.PullAlways,
				PullSecrets: []corev1.LocalObjectReference{
					{Name: "registry-creds"},
				},
			},
		},
	})

	pod := BuildPod(sink, testDefaultImage)

	assert.Equal(t, "custom/sink:2.0.0", pod.Spec.Containers[0].Image)
	assert.Equal(t, corev1.PullAlways, pod.Spec.Containers[0].ImagePullPolicy)
	require.Len(t, pod.Spec.ImagePullSecrets, 1)
	assert.Equal(t, "registry-creds", pod.Spec.ImagePullSecrets[0].Name)
}

func TestBuildPod_Probes(t *testing.T) {
	t.Parallel()

	pod := BuildPod(newSink(v1alpha1.WebhookSinkSpec{TargetURL: "http://example/hook"}), testDefaultImage)
	container := pod.Spec.Containers[0]

	require.NotNil(t, container.LivenessProbe)
	require.NotNil(t, container.ReadinessProbe)
	assert.Equal(t, container.LivenessProbe, container.ReadinessProbe)

	httpGet := container.LivenessProbe.HTTPGet
	require.NotNil(t, httpGet)
	assert.Equal(t, StatusPath, httpGet.Path)
	assert.Equal(t, int32(StatusPort), httpGet.Port.IntVal)
	assert.Equal(t, corev1.URISchemeHTTP, httpGet.Scheme)
}

func TestBuildPod_StreamData(t *testing.T) {
	t.Parallel()

	sink := newSink(v1alpha1.WebhookSinkSpec{
		TargetURL: "http://example/hook",
		Common: v1alpha1.CommonSpec{
			Stream: v1alpha1.StreamConfig{
				Filter: &v1alpha1.StreamDataRef{
					ConfigMap: "my-filter",
				},
				Transform: &v1alpha1.StreamDataRef{
					ConfigMap: "my-transform",
					Key:       "main.js",
				},
			},
		},
	})

	pod := BuildPod(sink, testDefaultImage)
	container := pod.Spec.Containers[0]

	require.Len(t, pod.Spec.Volumes, 2)
	assert.Equal(t, "my-filter", pod.Spec.Volumes[0].ConfigMap.Name)
	assert.Equal(t, "my-transform", pod.Spec.Volumes[1].ConfigMap.Name)

	require.Len(t, container.VolumeMounts, 2)
	assert.Equal(t, "/data/filter", container.VolumeMounts[0].MountPath)
	assert.Equal(t, "/data/transform", container.VolumeMounts[1].MountPath)

	assert.Equal(t, "/data/filter/filter.js", envValue(t, container.Env, EnvFilter))
	assert.Equal(t, "/data/transform/main.js", envValue(t, container.Env, EnvTransform))
}

func TestBuildPod_Deterministic(t *testing.T) {
	t.Parallel()

	sink := newSink(v1alpha1.WebhookSinkSpec{
		TargetURL: "http://example/hook",
		Raw:       true,
		Common: v1alpha1.CommonSpec{
			Env: map[string]string{
				"B": "2",
				"A": "1",
				"C": "3",
			},
			Stream: v1alpha1.StreamConfig{
				Filter: &v1alpha1.StreamDataRef{ConfigMap: "filter-cm"},
			},
		},
	})

	first := BuildPod(sink, testDefaultImage)
	second := BuildPod(sink, testDefaultImage)

	assert.Equal(t, first, second)
}
