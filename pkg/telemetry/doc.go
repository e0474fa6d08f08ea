// Package telemetry exposes decoder observability: a Prometheus collector
// over a StreamDecoder's counters and an OpenTelemetry tracing wrapper
// around its Feed/Decode cycle.
//
// The core eventstream package stays dependency-free on purpose; everything
// that talks to a metrics registry or a tracer provider lives here.
package telemetry
