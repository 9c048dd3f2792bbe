package metrics

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

func TestClassifyAPIError(t *testing.T) {
	t.Parallel()

	podResource := schema.GroupResource{Resource: "pods"}

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "not found",
			err:      apierrors.NewNotFound(podResource, "my-sink"),
			expected: ErrorTypeNotFound,
		},
		{
			name:     "conflict",
			err:      apierrors.NewConflict(podResource, "my-sink", errors.New("modified")),
			expected: ErrorTypeConflict,
		},
		{
			name:     "already exists",
			err:      apierrors.NewAlreadyExists(podResource, "my-sink"),
			expected: ErrorTypeConflict,
		},
		{
			name:     "unauthorized",
			err:      apierrors.NewUnauthorized("no token"),
			expected: ErrorTypeAuth,
		},
		{
			name:     "forbidden",
			err:      apierrors.NewForbidden(podResource, "my-sink", errors.New("rbac")),
			expected: ErrorTypeAuth,
		},
		{
			name:     "bad request",
			err:      apierrors.NewBadRequest("malformed"),
			expected: ErrorTypeInvalid,
		},
		{
			name:     "too many requests",
			err:      apierrors.NewTooManyRequests("slow down", 5),
			expected: ErrorTypeRateLimit,
		},
		{
			name:     "timeout",
			err:      apierrors.NewTimeoutError("timed out", 5),
			expected: ErrorTypeTimeout,
		},
		{
			name:     "server timeout",
			err:      apierrors.NewServerTimeout(podResource, "get", 5),
			expected: ErrorTypeTimeout,
		},
		{
			name:     "internal error",
			err:      apierrors.NewInternalError(errors.New("boom")),
			expected: ErrorTypeServerError,
		},
		{
			name:     "service unavailable",
			err:      apierrors.NewServiceUnavailable("down"),
			expected: ErrorTypeServerError,
		},
		{
			name:     "wrapped not found",
			err:      errors.Wrap(apierrors.NewNotFound(podResource, "my-sink"), "failed to get pod"),
			expected: ErrorTypeNotFound,
		},
		{
			name:     "plain deadline error",
			err:      errors.New("context deadline exceeded"),
			expected: ErrorTypeTimeout,
		},
		{
			name:     "connection refused",
			err:      errors.New("dial tcp 10.0.0.1:443: connection refused"),
			expected: ErrorTypeNetwork,
		},
		{
			name:     "unknown",
			err:      errors.New("something else"),
			expected: ErrorTypeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, ClassifyAPIError(tt.err))
		})
	}
}

func TestClassifyAPIError_InvalidObject(t *testing.T) {
	t.Parallel()

	gk := schema.GroupKind{Group: "dataloom.io", Kind: "WebhookSink"}
	err := apierrors.NewInvalid(gk, "my-sink", nil)

	assert.Equal(t, ErrorTypeInvalid, ClassifyAPIError(err))
}

func TestClassifyAPIError_StatusError(t *testing.T) {
	t.Parallel()

	err := &apierrors.StatusError{
		ErrStatus: metav1.Status{
			Reason: metav1.StatusReasonNotFound,
			Code:   404,
		},
	}

	assert.Equal(t, ErrorTypeNotFound, ClassifyAPIError(err))
}
