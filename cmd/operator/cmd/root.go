package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/dataloom/webhook-sink-operator/internal/controller"
	"github.com/dataloom/webhook-sink-operator/internal/workload"
)

//nolint:gochecknoglobals // set by SetVersion from main
var (
	version = "development"
	gitsha  = "development"
)

func SetVersion(ver, sha string) {
	version = ver
	gitsha = sha
}

//nolint:gochecknoglobals // cobra command pattern
var rootCmd = &cobra.Command{
	Use:   "webhook-sink-operator",
	Short: "Kubernetes operator for WebhookSink resources",
	Long: `A Kubernetes operator that manages webhook sink workloads.
It watches WebhookSink resources and runs one sink pod per resource,
recycling pods whose container has terminated and projecting observed
health back into the resource status.`,
	RunE:          runOperator,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "json", "Log format (json, text)")

	rootCmd.Flags().String("sink-image", "", "Default sink container image (or use SINK_SINK_IMAGE env var)")
	rootCmd.Flags().String("metrics-addr", ":8080", "Address for metrics endpoint")
	rootCmd.Flags().String("health-addr", ":8081", "Address for health probe endpoint")

	// Leader election flags
	rootCmd.Flags().Bool("leader-elect", false, "Enable leader election for high availability")
	rootCmd.Flags().String("leader-election-namespace", "", "Namespace for leader election lease (defaults to operator namespace)")
	rootCmd.Flags().String("leader-election-name", "webhook-sink-operator-leader", "Name of the leader election lease")

	// Timing flags
	rootCmd.Flags().Duration("requeue-interval", 10*time.Second, "Steady-state requeue delay between reconcile passes")
	rootCmd.Flags().Duration("error-backoff", 30*time.Second, "Retry delay after a failed reconcile pass")
	rootCmd.Flags().Duration("termination-grace", 60*time.Second, "How long a terminated sink pod is kept before recycling")

	_ = viper.BindPFlags(rootCmd.Flags())
	_ = viper.BindPFlags(rootCmd.PersistentFlags())
}

func initConfig() {
	viper.SetEnvPrefix("SINK")
	viper.AutomaticEnv()

	viper.SetDefault("metrics-addr", ":8080")
	viper.SetDefault("health-addr", ":8081")
	viper.SetDefault("log-level", "info")
	viper.SetDefault("log-format", "json")
	viper.SetDefault("leader-elect", false)
	viper.SetDefault("leader-election-name", "webhook-sink-operator-leader")
	viper.SetDefault("requeue-interval", 10*time.Second)
	viper.SetDefault("error-backoff", 30*time.Second)
	viper.SetDefault("termination-grace", 60*time.Second)
}

func Execute() error {
	return errors.Wrap(rootCmd.Execute(), "command execution failed")
}

func setupLogger() *slog.Logger {
	level := slog.LevelInfo

	switch viper.GetString("log-level") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if viper.GetString("log-format") == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

//nolint:noinlineerr // inline error handling is fine here
func runOperator(_ *cobra.Command, _ []string) error {
	logger := setupLogger()
	slog.SetDefault(logger)

	ctrl.SetLogger(logr.FromSlogHandler(logger.Handler()))

	logger.Info("starting webhook-sink-operator",
		"version", version,
		"gitsha", gitsha,
	)

	sinkImage := viper.GetString("sink-image")
	if sinkImage == "" {
		return errors.New("sink-image is required (use --sink-image or SINK_SINK_IMAGE env var)")
	}

	if err := workload.ValidatePinnedImage(sinkImage); err != nil {
		logger.Warn("default sink image is not pinned", "image", sinkImage, "reason", err.Error())
	}

	cfg := controller.Config{
		DefaultImage: sinkImage,
		MetricsAddr:  viper.GetString("metrics-addr"),
		HealthAddr:   viper.GetString("health-addr"),

		LeaderElect:     viper.GetBool("leader-elect"),
		LeaderElectNS:   viper.GetString("leader-election-namespace"),
		LeaderElectName: viper.GetString("leader-election-name"),

		RequeueInterval:  viper.GetDuration("requeue-interval"),
		ErrorBackoff:     viper.GetDuration("error-backoff"),
		TerminationGrace: viper.GetDuration("termination-grace"),
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := controller.Run(ctx, &cfg); err != nil {
		return errors.Wrap(err, "failed to run operator")
	}

	return nil
}
