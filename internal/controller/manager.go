package controller

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/healthz"
	"sigs.k8s.io/controller-runtime/pkg/log"
	ctrlmetrics "sigs.k8s.io/controller-runtime/pkg/metrics"
	"sigs.k8s.io/controller-runtime/pkg/metrics/server"

	"github.com/dataloom/webhook-sink-operator/api/v1alpha1"
	"github.com/dataloom/webhook-sink-operator/internal/metrics"
)

// Config holds all configuration options for the controller manager.
// Values are typically populated from CLI flags or environment variables.
type Config struct {
	// DefaultImage is the sink image used when a WebhookSink spec does not
	// name one (required).
	DefaultImage string

	// MetricsAddr is the address for the Prometheus metrics endpoint.
	MetricsAddr string

	// HealthAddr is the address for health and readiness probe endpoints.
	HealthAddr string

	// LeaderElect enables leader election for high availability.
	// Required when running multiple replicas.
	LeaderElect bool

	// LeaderElectNS is the namespace for the leader election lease.
	LeaderElectNS string

	// LeaderElectName is the name of the leader election lease.
	LeaderElectName string

	// RequeueInterval is the steady-state requeue delay between passes.
	RequeueInterval time.Duration

	// ErrorBackoff is the retry delay after a failed pass.
	ErrorBackoff time.Duration

	// TerminationGrace is how long a terminated sink pod is left in place
	// before it is recycled.
	TerminationGrace time.Duration
}

// Run initializes and starts the controller manager with the provided
// configuration. It verifies the WebhookSink type is installed, sets up the
// WebhookSinkReconciler, and blocks until the context is cancelled or an
// error occurs.
//
//nolint:funlen,noinlineerr // controller setup requires multiple steps
func Run(ctx context.Context, cfg *Config) error {
	logger := log.FromContext(ctx).WithName("manager")
	logger.Info("initializing controller manager")

	mgrOptions := ctrl.Options{
		Metrics: server.Options{
			BindAddress: cfg.MetricsAddr,
		},
		HealthProbeBindAddress: cfg.HealthAddr,
	}

	if cfg.LeaderElect {
		mgrOptions.LeaderElection = true
		mgrOptions.LeaderElectionID = cfg.LeaderElectName
		mgrOptions.LeaderElectionNamespace = cfg.LeaderElectNS

		logger.Info("leader election enabled",
			"id", cfg.LeaderElectName,
			"namespace", cfg.LeaderElectNS,
		)
	}

	mgr, err := ctrl.NewManager(ctrl.GetConfigOrDie(), mgrOptions)
	if err != nil {
		return errors.Wrap(err, "failed to create manager")
	}

	if err := v1alpha1.AddToScheme(mgr.GetScheme()); err != nil {
		return errors.Wrap(err, "failed to add webhooksink scheme")
	}

	// The manager's cached client is not started yet, so the preflight
	// check uses a direct client.
	directClient, err := client.New(mgr.GetConfig(), client.Options{Scheme: mgr.GetScheme()})
	if err != nil {
		return errors.Wrap(err, "failed to create preflight client")
	}

	if err := verifyTypeInstalled(ctx, directClient); err != nil {
		logger.Error(err, "webhook sink type preflight failed")

		return err
	}

	collector := metrics.NewCollector(ctrlmetrics.Registry)

	reconciler := &WebhookSinkReconciler{
		Client:           mgr.GetClient(),
		Scheme:           mgr.GetScheme(),
		DefaultImage:     cfg.DefaultImage,
		RequeueInterval:  cfg.RequeueInterval,
		ErrorBackoff:     cfg.ErrorBackoff,
		TerminationGrace: cfg.TerminationGrace,
		Metrics:          collector,
	}

	if err := reconciler.SetupWithManager(mgr); err != nil {
		return errors.Wrap(err, "failed to setup webhooksink controller")
	}

	if err := mgr.AddHealthzCheck("healthz", healthz.Ping); err != nil {
		return errors.Wrap(err, "failed to set up health check")
	}

	if err := mgr.AddReadyzCheck("readyz", healthz.Ping); err != nil {
		return errors.Wrap(err, "failed to set up ready check")
	}

	logger.Info("starting manager")

	if err := mgr.Start(ctx); err != nil {
		return errors.Wrap(err, "failed to start manager")
	}

	return nil
}

// verifyTypeInstalled fails fast when the WebhookSink custom resource
// definition is not registered with the cluster.
//
//nolint:noinlineerr // preflight check
func verifyTypeInstalled(ctx context.Context, c client.Client) error {
	var sinks v1alpha1.WebhookSinkList

	if err := c.List(ctx, &sinks, client.Limit(1)); err != nil {
		return errors.Wrapf(err, "%s custom resource definition not installed", v1alpha1.WebhookSinkCRDName)
	}

	return nil
}
