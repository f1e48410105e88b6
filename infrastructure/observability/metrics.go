package observability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tokenlotto/application"
	"tokenlotto/config"
	"tokenlotto/domain/entities"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

// MetricsProvider manages OpenTelemetry metrics and records one sample per
// handled ledger, lottery or memo call
type MetricsProvider struct {
	config        *config.Config
	meterProvider *sdkmetric.MeterProvider
	meter         metric.Meter
	initialized   bool
	enabled       bool
	mu            sync.RWMutex

	// Metric instruments, keyed by component
	operationCounters map[string]metric.Int64Counter
	directivesCounter metric.Int64Counter
}

var _ application.OperationRecorder = (*MetricsProvider)(nil)

// NewMetricsProvider creates a new metrics provider
func NewMetricsProvider(cfg *config.Config) *MetricsProvider {
	return &MetricsProvider{
		config: cfg,
	}
}

// Initialize sets up the OpenTelemetry metrics provider
func (mp *MetricsProvider) Initialize(ctx context.Context) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.initialized {
		log.Debug("Metrics provider already initialized")
		return nil
	}

	if !mp.config.OTelEnabled {
		log.Info("OpenTelemetry metrics disabled")
		mp.initialized = true
		return nil
	}

	exporter, err := mp.newExporter(ctx)
	if err != nil {
		return err
	}
	if exporter == nil {
		log.Info("Metrics export disabled (exporter_type='none')")
		mp.initialized = true
		return nil
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			semconv.ServiceName(mp.config.OTelServiceName),
			attribute.String("environment", mp.config.Environment),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	reader := sdkmetric.NewPeriodicReader(
		exporter,
		sdkmetric.WithInterval(time.Duration(mp.config.OTelExportIntervalMillis)*time.Millisecond),
	)
	if err := mp.setup(sdkmetric.NewMeterProvider(sdkmetric.WithResource(res), sdkmetric.WithReader(reader))); err != nil {
		return err
	}

	otel.SetMeterProvider(mp.meterProvider)
	log.WithField("exporter", mp.config.OTelExporterType).Info("Metrics provider initialized successfully")
	return nil
}

func (mp *MetricsProvider) newExporter(ctx context.Context) (sdkmetric.Exporter, error) {
	switch mp.config.OTelExporterType {
	case "console":
		exporter, err := stdoutmetric.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create console exporter: %w", err)
		}
		return exporter, nil

	case "otlp":
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		exporter, err := otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(mp.config.OTelOTLPEndpoint),
			otlpmetricgrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		log.WithField("endpoint", mp.config.OTelOTLPEndpoint).Info("Using OTLP metric exporter")
		return exporter, nil

	case "none":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown exporter type: %s", mp.config.OTelExporterType)
	}
}

// setup binds the instruments to provider. Caller holds mp.mu.
func (mp *MetricsProvider) setup(provider *sdkmetric.MeterProvider) error {
	mp.meterProvider = provider
	mp.meter = provider.Meter("tokenlotto")

	if err := mp.createInstruments(); err != nil {
		return fmt.Errorf("failed to create instruments: %w", err)
	}

	mp.initialized = true
	mp.enabled = true
	return nil
}

// createInstruments creates all metric instruments
func (mp *MetricsProvider) createInstruments() error {
	names := map[string]string{
		application.ComponentLedger:  LedgerOperationsTotal,
		application.ComponentLottery: LotteryOperationsTotal,
		application.ComponentMemo:    MemoOperationsTotal,
	}

	mp.operationCounters = make(map[string]metric.Int64Counter, len(names))
	for component, name := range names {
		counter, err := mp.meter.Int64Counter(
			name,
			metric.WithDescription(fmt.Sprintf("Total number of %s operations by result", component)),
			metric.WithUnit("1"),
		)
		if err != nil {
			return fmt.Errorf("failed to create %s operations counter: %w", component, err)
		}
		mp.operationCounters[component] = counter
	}

	var err error
	mp.directivesCounter, err = mp.meter.Int64Counter(
		PaymentDirectivesTotal,
		metric.WithDescription("Total number of payment directives released after commit"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create payment directives counter: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the metrics provider
func (mp *MetricsProvider) Shutdown(ctx context.Context) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.meterProvider != nil {
		return mp.meterProvider.Shutdown(ctx)
	}
	return nil
}

// RecordOperation counts one handled call
func (mp *MetricsProvider) RecordOperation(ctx context.Context, component, operation, result string) {
	if !mp.isEnabled() {
		return
	}

	counter, ok := mp.operationCounters[component]
	if !ok {
		return
	}
	counter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String(LabelOperation, operation),
			attribute.String(LabelResult, result),
		),
	)
}

// RecordPaymentDirective counts one released payment directive
func (mp *MetricsProvider) RecordPaymentDirective(ctx context.Context, reason entities.PaymentReason) {
	if !mp.isEnabled() {
		return
	}

	mp.directivesCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String(LabelReason, string(reason)),
		),
	)
}

// isEnabled checks if metrics are enabled and initialized
func (mp *MetricsProvider) isEnabled() bool {
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	return mp.initialized && mp.enabled
}

// Global metrics provider instance
var (
	globalMetrics *MetricsProvider
	metricsOnce   sync.Once
)

// InitializeGlobalMetrics initializes the global metrics provider
func InitializeGlobalMetrics(ctx context.Context, cfg *config.Config) error {
	var err error
	metricsOnce.Do(func() {
		globalMetrics = NewMetricsProvider(cfg)
		err = globalMetrics.Initialize(ctx)
	})
	return err
}

// GetMetrics returns the global metrics provider
func GetMetrics() *MetricsProvider {
	return globalMetrics
}

// ShutdownGlobalMetrics shuts down the global metrics provider
func ShutdownGlobalMetrics(ctx context.Context) error {
	if globalMetrics != nil {
		return globalMetrics.Shutdown(ctx)
	}
	return nil
}
