package invite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	tests := []struct {
		value   string
		want    time.Time
		wantErr bool
	}{
		{value: "2026-03-01T10:00:00Z", want: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
		{value: "2026-03-01T10:00:00.000Z", want: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
		{value: "2026-03-01T10:00:00+05:30", want: time.Date(2026, 3, 1, 4, 30, 0, 0, time.UTC)},
		{value: "2026-03-01T10:00:00", want: time.Date(2026, 3, 1, 10, 0, 0, 0, loc)},
		{value: "2026-03-01T10:00", want: time.Date(2026, 3, 1, 10, 0, 0, 0, loc)},
		{value: "2026-03-01 10:00:00", want: time.Date(2026, 3, 1, 10, 0, 0, 0, loc)},
		{value: "2026-03-01", want: time.Date(2026, 3, 1, 0, 0, 0, 0, loc)},
		{value: "", wantErr: true},
		{value: "next tuesday", wantErr: true},
		{value: "2026-13-01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseTime(tt.value, loc)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v want %v", got, tt.want)
		})
	}
}
