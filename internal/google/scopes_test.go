package google

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopes(t *testing.T) {
	base := Scopes(false)
	assert.Equal(t, DefaultOAuthScopes, base)
	assert.NotContains(t, base, "https://www.googleapis.com/auth/gmail.send")

	withGmail := Scopes(true)
	assert.Len(t, withGmail, len(DefaultOAuthScopes)+1)
	assert.Contains(t, withGmail, "https://www.googleapis.com/auth/gmail.send")

	// The defaults are never modified.
	assert.Len(t, DefaultOAuthScopes, 4)
}
