package tracing

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.False(t, cfg.Enabled, "tracing is opt-in")
	require.Equal(t, "file", cfg.Exporter)
	require.Empty(t, cfg.FilePath, "file path is resolved from the data dir at startup")
	require.Equal(t, "localhost:4317", cfg.OTLPEndpoint)
	require.Equal(t, 1.0, cfg.SampleRate)
	require.Equal(t, "arcadia-registry", cfg.ServiceName)
}

func TestNewProvider_DisabledIsNoop(t *testing.T) {
	provider, err := NewProvider(Config{Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, provider, "disabled tracing still yields a usable provider")
	require.False(t, provider.Enabled())

	// The no-op tracer must accept spans without recording anything.
	ctx, span := provider.Tracer().Start(context.Background(), "command.process.submit_score")
	require.NotNil(t, ctx)
	require.NotNil(t, span)
	span.End()

	require.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewProvider_FileExporter(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")

	provider, err := NewProvider(Config{
		Enabled:     true,
		Exporter:    "file",
		FilePath:    tracePath,
		SampleRate:  1.0,
		ServiceName: "registry-test",
	})
	require.NoError(t, err)
	require.True(t, provider.Enabled())

	_, span := provider.Tracer().Start(context.Background(), "ledger.grow")
	sc := span.SpanContext()
	require.True(t, sc.IsValid(), "recorded span should carry a valid context")
	require.True(t, sc.TraceID().IsValid())
	require.True(t, sc.SpanID().IsValid())
	span.End()

	require.NoError(t, provider.Shutdown(context.Background()))

	_, err = os.Stat(tracePath)
	require.NoError(t, err, "shutdown should have flushed the span to disk")
}

func TestNewProvider_NoneExporterStillRecords(t *testing.T) {
	provider, err := NewProvider(Config{
		Enabled:    true,
		Exporter:   "none",
		SampleRate: 1.0,
	})
	require.NoError(t, err)
	require.True(t, provider.Enabled())

	// Spans exist for in-process correlation even with nowhere to export.
	_, span := provider.Tracer().Start(context.Background(), "command.process.create_game")
	require.True(t, span.SpanContext().IsValid())
	span.End()

	require.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewProvider_ConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "file exporter without path",
			cfg:     Config{Enabled: true, Exporter: "file"},
			wantErr: "file_path required",
		},
		{
			name:    "unknown exporter",
			cfg:     Config{Enabled: true, Exporter: "syslog"},
			wantErr: "unsupported exporter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewProvider(tt.cfg)
			require.Error(t, err)
			require.Nil(t, provider)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewProvider_ZeroSampleRateDefaultsToFull(t *testing.T) {
	provider, err := NewProvider(Config{
		Enabled:    true,
		Exporter:   "file",
		FilePath:   filepath.Join(t.TempDir(), "traces.jsonl"),
		SampleRate: 0,
	})
	require.NoError(t, err, "zero sample rate should fall back to sampling everything")
	require.NotNil(t, provider)
	require.NoError(t, provider.Shutdown(context.Background()))
}

func TestProvider_ChildSpansShareTrace(t *testing.T) {
	provider, err := NewProvider(Config{
		Enabled:  true,
		Exporter: "file",
		FilePath: filepath.Join(t.TempDir(), "traces.jsonl"),
	})
	require.NoError(t, err)
	defer provider.Shutdown(context.Background())

	tracer := provider.Tracer()

	ctx, parent := tracer.Start(context.Background(), "command.process.submit_score")
	_, child := tracer.Start(ctx, "ledger.grow")

	require.Equal(t, parent.SpanContext().TraceID(), child.SpanContext().TraceID(),
		"a grow started under a command span should share its trace")

	child.End()
	parent.End()
}
