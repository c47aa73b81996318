package app

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRedactor_URL(t *testing.T) {
	tests := []struct {
		name   string
		rawURL string
		params []string
		want   string
	}{
		{
			name:   "password in the middle",
			rawURL: "http://example.com/upload?sender_id=ID&password=hunter2&windspeed=9.7",
			params: []string{"password"},
			want:   "http://example.com/upload?sender_id=ID&password=XXX&windspeed=9.7",
		},
		{
			name:   "password at the end",
			rawURL: "http://example.com/upload?sender_id=ID&password=hunter2",
			params: []string{"password"},
			want:   "http://example.com/upload?sender_id=ID&password=XXX",
		},
		{
			name:   "param absent",
			rawURL: "http://example.com/upload?sender_id=ID",
			params: []string{"password"},
			want:   "http://example.com/upload?sender_id=ID",
		},
		{
			name:   "multiple params",
			rawURL: "http://example.com/u?password=a&token=b",
			params: []string{"password", "token"},
			want:   "http://example.com/u?password=XXX&token=XXX",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRedactor(tt.params, nil)
			require.Equal(t, tt.want, r.URL(tt.rawURL))
		})
	}
}

func TestRedactor_Text(t *testing.T) {
	r := NewRedactor(nil, []string{"hunter2"})
	got := r.Text("server said: bad password hunter2 for station")
	require.Equal(t, "server said: bad password XXX for station", got)

	// Empty secrets must not blow up or corrupt the text.
	r = NewRedactor(nil, []string{""})
	require.Equal(t, "unchanged", r.Text("unchanged"))
}

func TestRedactor_CompilesOnce(t *testing.T) {
	r := NewRedactor([]string{"password"}, nil)
	require.Len(t, r.patterns, 1)

	// Repeated calls reuse the compiled pattern and stay consistent.
	for i := 0; i < 3; i++ {
		require.Equal(t, "u?password=XXX", r.URL("u?password=s3cret"))
	}
}
