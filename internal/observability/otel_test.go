package observability

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	tracepb "go.opentelemetry.io/proto/otlp/trace/v1"

	"github.com/simdex/go-lookup-gateway/internal/config"
)

// fakeOTLPClient satisfies otlptrace.Client without a network.
type fakeOTLPClient struct {
	started bool
	stopped bool
}

func (f *fakeOTLPClient) Start(ctx context.Context) error { f.started = true; return nil }
func (f *fakeOTLPClient) Stop(ctx context.Context) error  { f.stopped = true; return nil }
func (f *fakeOTLPClient) UploadTraces(ctx context.Context, _ []*tracepb.ResourceSpans) error {
	return nil
}

func TestSetupOTel_DisabledIsNoOp(t *testing.T) {
	shutdown, err := SetupOTel(context.Background(), config.OTELConfig{Enabled: false}, "test")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if shutdown == nil {
		t.Fatal("nil shutdown")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestSetupOTel_EnabledWiresProvider(t *testing.T) {
	fake := &fakeOTLPClient{}
	prev := newOTLPExporterFn
	newOTLPExporterFn = func(ctx context.Context, _ otlptrace.Client) (*otlptrace.Exporter, error) {
		return otlptrace.New(ctx, fake)
	}
	t.Cleanup(func() { newOTLPExporterFn = prev })

	cfg := config.OTELConfig{
		Enabled:     true,
		Endpoint:    "localhost:4317",
		Insecure:    true,
		ServiceName: "test-svc",
		SampleRatio: 1.0,
	}
	shutdown, err := SetupOTel(context.Background(), cfg, "test")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if !fake.started {
		t.Fatal("exporter client never started")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if !fake.stopped {
		t.Fatal("exporter client never stopped")
	}
}
