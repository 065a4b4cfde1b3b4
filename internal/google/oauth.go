package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/teemow/meetinvite/internal/instrumentation"
	"github.com/teemow/meetinvite/internal/logging"
)

// ErrMissingCode is returned when the provider redirect carries no authorization code.
var ErrMissingCode = errors.New("authorization code is missing")

// Authorization is the outcome of a completed login.
type Authorization struct {
	UserID string
	Name   string
	Email  string
	Token  *oauth2.Token
}

// NewOAuthConfig returns the OAuth2 configuration for the Google endpoint.
// Nil scopes select DefaultOAuthScopes.
func NewOAuthConfig(clientID, clientSecret, redirectURL string, scopes []string) *oauth2.Config {
	if scopes == nil {
		scopes = DefaultOAuthScopes
	}
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  redirectURL,
		Scopes:       scopes,
	}
}

// AuthFlow runs the authorization code flow and records the resulting tokens.
type AuthFlow struct {
	config         *oauth2.Config
	store          TokenStore
	profileOptions []option.ClientOption
	metrics        *instrumentation.Metrics
	logger         *slog.Logger
}

// AuthFlowOption configures an AuthFlow.
type AuthFlowOption func(*AuthFlow)

// WithProfileOptions adds client options for the userinfo API, e.g. an endpoint override.
func WithProfileOptions(opts ...option.ClientOption) AuthFlowOption {
	return func(f *AuthFlow) {
		f.profileOptions = append(f.profileOptions, opts...)
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m *instrumentation.Metrics) AuthFlowOption {
	return func(f *AuthFlow) {
		f.metrics = m
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) AuthFlowOption {
	return func(f *AuthFlow) {
		f.logger = logger
	}
}

// NewAuthFlow creates an AuthFlow storing tokens in store.
func NewAuthFlow(config *oauth2.Config, store TokenStore, opts ...AuthFlowOption) *AuthFlow {
	f := &AuthFlow{
		config: config,
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Store returns the token store the flow writes to.
func (f *AuthFlow) Store() TokenStore {
	return f.store
}

// BeginAuthorization returns the consent URL. Offline access is requested so
// the provider issues a refresh token.
func (f *AuthFlow) BeginAuthorization(state string) string {
	return f.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// CompleteAuthorization exchanges code for a token, resolves the user's
// profile and stores the token under the profile id.
func (f *AuthFlow) CompleteAuthorization(ctx context.Context, code string) (*Authorization, error) {
	if code == "" {
		f.metrics.RecordOAuthAuth(ctx, instrumentation.OAuthResultFailure)
		return nil, ErrMissingCode
	}

	token, err := f.exchange(ctx, code)
	if err != nil {
		f.metrics.RecordOAuthAuth(ctx, instrumentation.OAuthResultFailure)
		return nil, err
	}

	profile, err := f.fetchProfile(ctx, token)
	if err != nil {
		f.metrics.RecordOAuthAuth(ctx, instrumentation.OAuthResultFailure)
		return nil, err
	}

	if err := f.store.Put(ctx, profile.Id, token); err != nil {
		f.metrics.RecordOAuthAuth(ctx, instrumentation.OAuthResultFailure)
		return nil, fmt.Errorf("failed to store token: %w", err)
	}

	f.metrics.RecordOAuthAuth(ctx, instrumentation.OAuthResultSuccess)
	f.logger.Info("user authorized",
		logging.UserHash(profile.Id),
		logging.Domain(profile.Email),
		slog.String("token", logging.SanitizeToken(token.AccessToken)))

	return &Authorization{
		UserID: profile.Id,
		Name:   profile.Name,
		Email:  profile.Email,
		Token:  token,
	}, nil
}

func (f *AuthFlow) exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	ctx, span := instrumentation.StartGoogleAPISpan(ctx, instrumentation.ServiceOAuth2, instrumentation.OperationExchange)
	defer span.End()
	start := time.Now()

	token, err := f.config.Exchange(ctx, code)
	if err != nil {
		instrumentation.SetSpanError(span, err)
		f.metrics.RecordGoogleAPIOperation(ctx, instrumentation.ServiceOAuth2, instrumentation.OperationExchange, instrumentation.StatusError, time.Since(start))
		return nil, fmt.Errorf("failed to exchange auth code: %w", err)
	}

	instrumentation.SetSpanSuccess(span)
	f.metrics.RecordGoogleAPIOperation(ctx, instrumentation.ServiceOAuth2, instrumentation.OperationExchange, instrumentation.StatusSuccess, time.Since(start))
	return token, nil
}

func (f *AuthFlow) fetchProfile(ctx context.Context, token *oauth2.Token) (*oauth2api.Userinfo, error) {
	ctx, span := instrumentation.StartGoogleAPISpan(ctx, instrumentation.ServiceOAuth2, instrumentation.OperationGet)
	defer span.End()
	start := time.Now()

	opts := append([]option.ClientOption{option.WithHTTPClient(HTTPClient(ctx, token))}, f.profileOptions...)
	svc, err := oauth2api.NewService(ctx, opts...)
	if err != nil {
		instrumentation.SetSpanError(span, err)
		return nil, fmt.Errorf("failed to create userinfo service: %w", err)
	}

	profile, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		instrumentation.SetSpanError(span, err)
		f.metrics.RecordGoogleAPIOperation(ctx, instrumentation.ServiceOAuth2, instrumentation.OperationGet, instrumentation.StatusError, time.Since(start))
		return nil, fmt.Errorf("failed to fetch user profile: %w", err)
	}
	if profile.Id == "" {
		err := errors.New("user profile has no id")
		instrumentation.SetSpanError(span, err)
		return nil, err
	}

	instrumentation.SetSpanSuccess(span)
	f.metrics.RecordGoogleAPIOperation(ctx, instrumentation.ServiceOAuth2, instrumentation.OperationGet, instrumentation.StatusSuccess, time.Since(start))
	return profile, nil
}

// baseTransport is shared by every per-token client so connections are
// pooled across requests. HTTP/2 stays off to avoid protocol errors seen
// with the Google endpoints.
var baseTransport = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
	DialContext: (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	ForceAttemptHTTP2:     false,
	MaxIdleConns:          100,
	MaxIdleConnsPerHost:   10,
	IdleConnTimeout:       90 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
}

// HTTPClient returns a client that authenticates every request with token.
// The token is used as is; expired tokens are rejected by the provider.
// Cancellation comes from the request context of each call.
func HTTPClient(_ context.Context, token *oauth2.Token) *http.Client {
	return &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(token),
			Base:   baseTransport,
		},
	}
}
