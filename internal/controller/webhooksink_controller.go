package controller

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/dataloom/webhook-sink-operator/api/v1alpha1"
	"github.com/dataloom/webhook-sink-operator/internal/metrics"
	"github.com/dataloom/webhook-sink-operator/internal/workload"
)

const (
	sinkFinalizer = "webhooksink.dataloom.io"
	fieldOwner    = "webhooksink-controller"

	defaultRequeueInterval  = 10 * time.Second
	defaultErrorBackoff     = 30 * time.Second
	defaultTerminationGrace = 60 * time.Second
)

// WebhookSinkReconciler reconciles a WebhookSink with its single sink pod.
type WebhookSinkReconciler struct {
	client.Client

	Scheme *runtime.Scheme

	// DefaultImage is the sink image used when the spec does not name one.
	DefaultImage string

	// RequeueInterval is the steady-state requeue delay. Zero means 10s.
	RequeueInterval time.Duration

	// ErrorBackoff is the retry delay after a failed pass. Zero means 30s.
	ErrorBackoff time.Duration

	// TerminationGrace is how long a terminated pod is left in place before
	// it is recycled. Zero means 60s.
	TerminationGrace time.Duration

	Metrics metrics.Collector

	// Now is the clock used for health evaluation. Zero means time.Now.
	Now func() time.Time
}

// +kubebuilder:rbac:groups=dataloom.io,resources=webhooksinks,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=dataloom.io,resources=webhooksinks/status,verbs=get;update;patch
// +kubebuilder:rbac:groups=dataloom.io,resources=webhooksinks/finalizers,verbs=update
// +kubebuilder:rbac:groups="",resources=pods,verbs=get;list;watch;create;update;patch;delete

//nolint:noinlineerr // controller reconcile logic
func (r *WebhookSinkReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	logger := log.FromContext(ctx)
	start := r.now()

	var sink v1alpha1.WebhookSink

	if err := r.Get(ctx, req.NamespacedName, &sink); err != nil {
		if apierrors.IsNotFound(err) {
			return ctrl.Result{}, nil
		}

		r.collector().RecordAPIError(ctx, "get_sink", metrics.ClassifyAPIError(err))

		return r.errorResult(ctx, start, errors.Wrap(err, "failed to get webhook sink"))
	}

	if !sink.DeletionTimestamp.IsZero() {
		return r.handleDeletion(ctx, start, &sink)
	}

	if !controllerutil.ContainsFinalizer(&sink, sinkFinalizer) {
		controllerutil.AddFinalizer(&sink, sinkFinalizer)

		if err := r.Update(ctx, &sink); err != nil {
			r.collector().RecordAPIError(ctx, "update_finalizer", metrics.ClassifyAPIError(err))

			return r.errorResult(ctx, start, errors.Wrap(err, "failed to add finalizer"))
		}
	}

	logger.Info("reconciling webhook sink", "name", sink.Name, "namespace", sink.Namespace)

	if err := r.reconcileSink(ctx, &sink); err != nil {
		return r.errorResult(ctx, start, err)
	}

	r.collector().RecordReconcile(ctx, "success", r.now().Sub(start))

	return ctrl.Result{RequeueAfter: r.requeueInterval()}, nil
}

// reconcileSink runs the apply path: fetch the existing pod, evaluate its
// health, delete it when stale, apply the desired pod, and patch the status.
// A failure aborts the remaining steps; anything already written stays.
//
//nolint:funcorder // apply path
func (r *WebhookSinkReconciler) reconcileSink(ctx context.Context, sink *v1alpha1.WebhookSink) error {
	logger := log.FromContext(ctx)

	existing, err := r.fetchExistingPod(ctx, sink)
	if err != nil {
		return err
	}

	eval := workload.Evaluate(existing, r.now(), r.terminationGrace())
	r.collector().RecordPodHealth(ctx, eval.Health.String())

	if eval.Health == workload.StaleTerminated {
		logger.Info("deleting terminated pod", "pod", existing.Name)

		// Precondition on the observed version so a concurrent pass cannot
		// delete a pod that was already replaced.
		deleteErr := r.Delete(ctx, existing, client.Preconditions{
			UID:             &existing.UID,
			ResourceVersion: &existing.ResourceVersion,
		})
		if deleteErr != nil && !apierrors.IsNotFound(deleteErr) {
			r.collector().RecordAPIError(ctx, "delete_pod", metrics.ClassifyAPIError(deleteErr))

			return errors.Wrap(deleteErr, "failed to delete terminated pod")
		}

		r.collector().RecordPodRecycle(ctx)
	}

	desired := workload.BuildPod(sink, r.DefaultImage)

	ownerErr := ctrl.SetControllerReference(sink, desired, r.Scheme)
	if ownerErr != nil {
		return errors.Wrap(ownerErr, "failed to set owner reference on pod")
	}

	applyErr := r.Patch(ctx, desired, client.Apply, client.FieldOwner(fieldOwner), client.ForceOwnership)
	if applyErr != nil {
		r.collector().RecordAPIError(ctx, "apply_pod", metrics.ClassifyAPIError(applyErr))

		return errors.Wrap(applyErr, "failed to apply sink pod")
	}

	status := workload.ProjectStatus(sink.Status, eval, desired, sink.Generation)

	base := sink.DeepCopy()
	sink.Status = status

	statusErr := r.Status().Patch(ctx, sink, client.MergeFrom(base))
	if statusErr != nil {
		r.collector().RecordAPIError(ctx, "patch_status", metrics.ClassifyAPIError(statusErr))

		return errors.Wrap(statusErr, "failed to patch sink status")
	}

	return nil
}

// fetchExistingPod resolves the pod last applied for this sink, using the
// instance name recorded in the status. Absence is not an error.
//
//nolint:funcorder // apply path helper
func (r *WebhookSinkReconciler) fetchExistingPod(
	ctx context.Context,
	sink *v1alpha1.WebhookSink,
) (*corev1.Pod, error) {
	if sink.Status.InstanceName == "" {
		return nil, nil
	}

	var pod corev1.Pod

	err := r.Get(ctx, types.NamespacedName{
		Name:      sink.Status.InstanceName,
		Namespace: sink.Namespace,
	}, &pod)
	if apierrors.IsNotFound(err) {
		return nil, nil
	}

	if err != nil {
		r.collector().RecordAPIError(ctx, "get_pod", metrics.ClassifyAPIError(err))

		return nil, errors.Wrap(err, "failed to get existing pod")
	}

	return &pod, nil
}

// handleDeletion runs the cleanup path: delete the owned pod, then release
// the finalizer so the resource can go away. The finalizer stays in place
// until cleanup succeeds.
//
//nolint:funcorder // deletion handler
func (r *WebhookSinkReconciler) handleDeletion(
	ctx context.Context,
	start time.Time,
	sink *v1alpha1.WebhookSink,
) (ctrl.Result, error) {
	logger := log.FromContext(ctx)

	if !controllerutil.ContainsFinalizer(sink, sinkFinalizer) {
		return ctrl.Result{}, nil
	}

	logger.Info("cleaning up webhook sink", "name", sink.Name, "namespace", sink.Namespace)

	cleanupErr := r.cleanup(ctx, sink)
	if cleanupErr != nil {
		r.collector().RecordCleanup(ctx, "error")

		return r.errorResult(ctx, start, cleanupErr)
	}

	controllerutil.RemoveFinalizer(sink, sinkFinalizer)

	updateErr := r.Update(ctx, sink)
	if updateErr != nil {
		r.collector().RecordCleanup(ctx, "error")
		r.collector().RecordAPIError(ctx, "update_finalizer", metrics.ClassifyAPIError(updateErr))

		return r.errorResult(ctx, start, errors.Wrap(updateErr, "failed to remove finalizer"))
	}

	r.collector().RecordCleanup(ctx, "success")

	// The requeue is a no-op once the resource is gone, but it re-drives
	// cleanup if deletion stalls on another finalizer.
	return ctrl.Result{RequeueAfter: r.requeueInterval()}, nil
}

// cleanup deletes the pod owned by the sink, looked up by the sink's own
// name. A pod that is already gone is not an error.
//
//nolint:funcorder // deletion handler helper
func (r *WebhookSinkReconciler) cleanup(ctx context.Context, sink *v1alpha1.WebhookSink) error {
	var pod corev1.Pod

	err := r.Get(ctx, types.NamespacedName{Name: sink.Name, Namespace: sink.Namespace}, &pod)
	if apierrors.IsNotFound(err) {
		return nil
	}

	if err != nil {
		r.collector().RecordAPIError(ctx, "get_pod", metrics.ClassifyAPIError(err))

		return errors.Wrap(err, "failed to get owned pod")
	}

	deleteErr := r.Delete(ctx, &pod)
	if deleteErr != nil && !apierrors.IsNotFound(deleteErr) {
		r.collector().RecordAPIError(ctx, "delete_pod", metrics.ClassifyAPIError(deleteErr))

		return errors.Wrap(deleteErr, "failed to delete owned pod")
	}

	return nil
}

// errorResult logs the failure and schedules a retry after the error
// backoff. Every failure kind gets the same fixed backoff.
//
//nolint:funcorder // error policy
func (r *WebhookSinkReconciler) errorResult(
	ctx context.Context,
	start time.Time,
	err error,
) (ctrl.Result, error) {
	log.FromContext(ctx).Error(err, "webhook sink reconcile failed")
	r.collector().RecordReconcile(ctx, "error", r.now().Sub(start))

	return ctrl.Result{RequeueAfter: r.errorBackoff()}, nil
}

//nolint:funcorder // defaulting accessors
func (r *WebhookSinkReconciler) requeueInterval() time.Duration {
	if r.RequeueInterval == 0 {
		return defaultRequeueInterval
	}

	return r.RequeueInterval
}

//nolint:funcorder // defaulting accessors
func (r *WebhookSinkReconciler) errorBackoff() time.Duration {
	if r.ErrorBackoff == 0 {
		return defaultErrorBackoff
	}

	return r.ErrorBackoff
}

//nolint:funcorder // defaulting accessors
func (r *WebhookSinkReconciler) terminationGrace() time.Duration {
	if r.TerminationGrace == 0 {
		return defaultTerminationGrace
	}

	return r.TerminationGrace
}

//nolint:funcorder // defaulting accessors
func (r *WebhookSinkReconciler) collector() metrics.Collector {
	if r.Metrics == nil {
		return metrics.NewNoopCollector()
	}

	return r.Metrics
}

//nolint:funcorder // defaulting accessors
func (r *WebhookSinkReconciler) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}

	return r.Now()
}

func (r *WebhookSinkReconciler) SetupWithManager(mgr ctrl.Manager) error {
	//nolint:wrapcheck // controller-runtime builder pattern
	return ctrl.NewControllerManagedBy(mgr).
		For(&v1alpha1.WebhookSink{}).
		Owns(&corev1.Pod{}).
		Named("webhooksink").
		Complete(r)
}
