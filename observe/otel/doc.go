// Package otel reserves the integration point for an OpenTelemetry
// observer.
package otel
