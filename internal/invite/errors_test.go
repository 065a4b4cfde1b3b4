package invite

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	base := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindInternal},
		{"plain", base, KindInternal},
		{"direct", E(KindMail, "op", base), KindMail},
		{"wrapped", fmt.Errorf("outer: %w", E(KindUnauthenticated, "op", base)), KindUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestError(t *testing.T) {
	base := errors.New("boom")
	err := E(KindProvider, "invite.CreateEvent", base)

	assert.Equal(t, "invite.CreateEvent: provider: boom", err.Error())
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "op: auth", (&Error{Kind: KindAuth, Op: "op"}).Error())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "invalid_request", KindInvalidRequest.String())
	assert.Equal(t, "internal", Kind(99).String())
}
