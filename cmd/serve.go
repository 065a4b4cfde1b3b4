package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/teemow/meetinvite/internal/calendar"
	"github.com/teemow/meetinvite/internal/config"
	"github.com/teemow/meetinvite/internal/google"
	"github.com/teemow/meetinvite/internal/instrumentation"
	"github.com/teemow/meetinvite/internal/invite"
	"github.com/teemow/meetinvite/internal/logging"
	"github.com/teemow/meetinvite/internal/mail"
	"github.com/teemow/meetinvite/internal/resources"
	"github.com/teemow/meetinvite/internal/server"
	"github.com/teemow/meetinvite/internal/tools/invite_tools"
)

// MetricsConfig holds configuration for the metrics server
type MetricsConfig struct {
	// Enabled determines whether to start the metrics server
	Enabled bool

	// Addr is the address for the metrics server (e.g., ":9090")
	Addr string
}

type serveOptions struct {
	envFile   string
	httpAddr  string
	debug     bool
	logFormat string
	mcp       bool
	metrics   MetricsConfig
}

func newServeCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP service",
		Long: `Start the meetinvite HTTP service.

Routes:
  GET  /google           redirect to the Google consent screen
  GET  /google/redirect  OAuth callback, stores the user's token
  POST /create           create an event with a Meet link and email the attendees
  GET  /healthz, /readyz liveness and readiness probes
  /mcp                   MCP streamable-HTTP endpoint (with --mcp)

Configuration is read from the environment, optionally seeded from a .env file:
  CLIENT_ID, CLIENT_SECRET, REDIRECT_URL  Google OAuth client
  API_KEY                                 attached to Calendar API calls
  EMAIL, EMAIL_PASSWORD                   SMTP sender mailbox
  MAIL_TRANSPORT                          smtp (default) or gmail
  SMTP_HOST, SMTP_PORT                    SMTP relay (default smtp.gmail.com:587)
  TIMEZONE                                event time zone (default Asia/Kolkata)
  CALENDAR_ID                             target calendar (default primary)
  HTTP_ADDR                               listen address (default :4000)
  MAIL_CONCURRENCY                        max invitations sent at once (default unlimited)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("metrics-enabled") && os.Getenv("METRICS_ENABLED") == "true" {
				opts.metrics.Enabled = true
			}
			if !cmd.Flags().Changed("metrics-addr") {
				if addr := os.Getenv("METRICS_ADDR"); addr != "" {
					opts.metrics.Addr = addr
				}
			}
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.envFile, "env-file", ".env", "Path of the .env file to load (a missing file is ignored)")
	cmd.Flags().StringVar(&opts.httpAddr, "http-addr", "", "HTTP listen address (overrides HTTP_ADDR)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&opts.logFormat, "log-format", logging.FormatText, "Log format: text or json")
	cmd.Flags().BoolVar(&opts.mcp, "mcp", false, "Serve MCP tools at /mcp")
	cmd.Flags().BoolVar(&opts.metrics.Enabled, "metrics-enabled", false, "Start the Prometheus metrics server (env: METRICS_ENABLED)")
	cmd.Flags().StringVar(&opts.metrics.Addr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address (env: METRICS_ADDR)")

	return cmd
}

func runServe(cmd *cobra.Command, opts serveOptions) error {
	if err := loadEnvFile(opts.envFile); err != nil {
		return err
	}

	logger := logging.New(cmd.ErrOrStderr(), opts.logFormat, opts.debug)
	slog.SetDefault(logger)

	cfg := config.DefaultConfig()
	if opts.httpAddr != "" {
		cfg.HTTPAddr = opts.httpAddr
	}
	cfg.WarnMissing(logger)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version
	instrConfig.MailTransport = cfg.MailTransport
	instrConfig.TimeZone = cfg.TimeZone

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			logger.Error("instrumentation shutdown failed", logging.Err(err))
		}
	}()

	var metricsServer *server.MetricsServer
	if opts.metrics.Enabled && provider.Enabled() {
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    opts.metrics.Addr,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}
		go func() {
			if err := metricsServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server stopped", logging.Err(err))
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(ctx); err != nil {
				logger.Error("metrics server shutdown failed", logging.Err(err))
			}
		}()
	}

	svc, tokens, err := buildService(cfg, provider.Metrics(), logger)
	if err != nil {
		return err
	}

	serverContext := server.NewServerContext(tokens)
	defer func() {
		_ = serverContext.Shutdown()
	}()
	health := server.NewHealthChecker(serverContext, version)

	var mcpHandler http.Handler
	if opts.mcp {
		mcpSrv, err := newMCPServer(svc, logger)
		if err != nil {
			return err
		}
		if err := resources.RegisterStatusResource(mcpSrv, serverContext, resources.Settings{
			Version:       version,
			CalendarID:    cfg.CalendarID,
			TimeZone:      cfg.TimeZone,
			MailTransport: cfg.MailTransport,
		}); err != nil {
			return fmt.Errorf("failed to register resources: %w", err)
		}
		mcpHandler = mcpserver.NewStreamableHTTPServer(mcpSrv, mcpserver.WithEndpointPath("/mcp"))
	}

	httpServer, err := server.NewHTTPServer(server.Config{
		Addr:       cfg.HTTPAddr,
		Service:    svc,
		Health:     health,
		Metrics:    provider.Metrics(),
		Logger:     logger,
		MCPHandler: mcpHandler,
	})
	if err != nil {
		return fmt.Errorf("failed to create HTTP server: %w", err)
	}

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := httpServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverDone <- err
		}
	}()

	select {
	case <-shutdownCtx.Done():
		logger.Info("shutdown signal received")
		health.SetReady(false)
		_ = serverContext.Shutdown()
		ctx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("error shutting down HTTP server: %w", err)
		}
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("HTTP server stopped with error: %w", err)
		}
	}

	logger.Info("HTTP server gracefully stopped")
	return nil
}

// loadEnvFile seeds the environment from path. Variables already set win.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// buildService wires the Google login flow, calendar client and mail
// transport selected by cfg into an invite.Service.
func buildService(cfg config.Config, metrics *instrumentation.Metrics, logger *slog.Logger) (*invite.Service, *google.MemoryTokenStore, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}

	tokens := google.NewMemoryTokenStore()
	oauthConfig := google.NewOAuthConfig(cfg.ClientID, cfg.ClientSecret, cfg.RedirectURL,
		google.Scopes(cfg.MailTransport == config.TransportGmail))
	auth := google.NewAuthFlow(oauthConfig, tokens,
		google.WithMetrics(metrics),
		google.WithLogger(logger),
	)

	var senders mail.SenderFactory
	from := cfg.Email
	switch cfg.MailTransport {
	case config.TransportGmail:
		senders = mail.GmailFactory(metrics)
	default:
		smtpSender := mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.Email, cfg.EmailPassword)
		senders = mail.Static(smtpSender)
		from = smtpSender.From()
	}

	dispatcher := mail.NewDispatcher(
		mail.WithFrom(from),
		mail.WithTransport(cfg.MailTransport),
		mail.WithLocation(loc),
		mail.WithConcurrencyLimit(cfg.MailConcurrency),
		mail.WithMetrics(metrics),
		mail.WithLogger(logger),
	)

	svc, err := invite.NewService(invite.Config{
		Auth:   auth,
		Tokens: tokens,
		Calendars: invite.CalendarClients(calendar.ClientConfig{
			APIKey:  cfg.APIKey,
			Metrics: metrics,
		}),
		Senders:    senders,
		Dispatcher: dispatcher,
		CalendarID: cfg.CalendarID,
		Location:   loc,
		Metrics:    metrics,
		Logger:     logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create invite service: %w", err)
	}
	return svc, tokens, nil
}

// newMCPServer builds the MCP server carrying the invite tools.
func newMCPServer(svc server.Invitations, logger *slog.Logger) (*mcpserver.MCPServer, error) {
	mcpSrv := mcpserver.NewMCPServer("meetinvite", version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false), // Subscribe and listChanged
	)
	if err := invite_tools.RegisterInviteTools(mcpSrv, svc, logger); err != nil {
		return nil, fmt.Errorf("failed to register invite tools: %w", err)
	}
	return mcpSrv, nil
}
