package mail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
)

func TestGmailSender_Send(t *testing.T) {
	var path, authz, raw string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		authz = r.Header.Get("Authorization")
		var body struct {
			Raw string `json:"raw"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		raw = body.Raw
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg-1"}`))
	}))
	defer srv.Close()

	factory := GmailFactory(nil, option.WithEndpoint(srv.URL+"/"))
	sender, err := factory(context.Background(), &oauth2.Token{AccessToken: "user-token", TokenType: "Bearer"})
	require.NoError(t, err)

	err = sender.Send(context.Background(), &Message{To: "a@x.com", Subject: "Invitation: x", HTMLBody: "<p>x</p>"})
	require.NoError(t, err)

	assert.Equal(t, "/gmail/v1/users/me/messages/send", path)
	assert.Equal(t, "Bearer user-token", authz)

	decoded, err := base64.URLEncoding.DecodeString(raw)
	require.NoError(t, err)
	assert.Contains(t, string(decoded), "To: a@x.com")
}

func TestGmailSender_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	sender, err := NewGmailSender(context.Background(), &oauth2.Token{AccessToken: "t"}, nil, option.WithEndpoint(srv.URL+"/"))
	require.NoError(t, err)

	err = sender.Send(context.Background(), &Message{To: "a@x.com", Subject: "s"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send email")
}

func TestNewGmailSender_NilToken(t *testing.T) {
	_, err := NewGmailSender(context.Background(), nil, nil)
	assert.Error(t, err)
}
