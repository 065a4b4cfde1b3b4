// Package instrumentation provides OpenTelemetry metrics and tracing for the
// meetinvite service.
//
// # Metrics
//
// HTTP:
//   - http_requests_total: requests by method, path, and status
//   - http_request_duration_seconds
//
// Google APIs:
//   - google_api_operations_total: calls by service, operation, and status
//   - google_api_operation_duration_seconds
//
// Invitations:
//   - oauth_auth_total: authorization code exchanges by result
//   - mail_sends_total, mail_send_duration_seconds: emails by transport and status
//   - calendar_events_created_total: event creation requests by result
//
// # Tracing
//
// Google API calls run inside client spans named google.<service>.<operation>.
//
// # Configuration
//
// Environment variables:
//   - INSTRUMENTATION_ENABLED (default: true)
//   - METRICS_EXPORTER: prometheus, otlp, stdout (default: prometheus)
//   - TRACING_EXPORTER: otlp, stdout, none (default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT
//   - OTEL_TRACES_SAMPLER_ARG (default: 0.1)
//   - OTEL_SERVICE_NAME (default: meetinvite)
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	provider.Metrics().RecordGoogleAPIOperation(ctx, "calendar", "insert", "success", time.Since(start))
package instrumentation
