package proof

import (
	"context"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	records []string
	err     error
}

func (s *stubResolver) LookupTXT(_ context.Context, _ string) ([]string, error) {
	return s.records, s.err
}

type stubFetcher struct {
	status int
	body   string
	err    error

	lastURL string
}

func (s *stubFetcher) Fetch(_ context.Context, url string) (int, string, error) {
	s.lastURL = url

	return s.status, s.body, s.err
}

func TestCheckProfileNonce(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		fetchErr  error
		wantFound bool
		wantErr   bool
	}{
		{
			name:      "nonce embedded in page markup",
			status:    http.StatusOK,
			body:      `<div class="bio">my codes: a1b2c3d4</div>`,
			wantFound: true,
		},
		{
			name:   "nonce absent",
			status: http.StatusOK,
			body:   `<div class="bio">nothing here</div>`,
		},
		{
			name:   "profile page not found",
			status: http.StatusNotFound,
			body:   "not found",
		},
		{
			name:     "fetch failure is transient",
			fetchErr: errors.New("connection refused"),
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewChallengeVerifier(&stubResolver{}, &stubFetcher{
				status: tt.status,
				body:   tt.body,
				err:    tt.fetchErr,
			})

			check, err := v.CheckProfileNonce(context.Background(), "https://www.athletic.net/athlete/123", "a1b2c3d4")
			if tt.wantErr {
				require.Error(t, err)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, check.Found)
			if !tt.wantFound {
				assert.NotEmpty(t, check.Detail)
			}
		})
	}
}

func TestCheckDNSTXT(t *testing.T) {
	tests := []struct {
		name      string
		records   []string
		lookupErr error
		wantFound bool
		wantErr   bool
	}{
		{
			name:      "exact record among unrelated ones",
			records:   []string{"v=spf1 include:_spf.google.com ~all", "certified-sliders-verify=a1b2c3d4"},
			wantFound: true,
		},
		{
			name:    "prefixed record with stale nonce",
			records: []string{"certified-sliders-verify=oldnonce"},
		},
		{
			name:    "substring is not a match",
			records: []string{"prefix certified-sliders-verify=a1b2c3d4 suffix"},
		},
		{
			name:    "no records",
			records: nil,
		},
		{
			name:      "lookup failure is transient",
			lookupErr: errors.New("SERVFAIL"),
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewChallengeVerifier(&stubResolver{records: tt.records, err: tt.lookupErr}, &stubFetcher{})

			check, err := v.CheckDNSTXT(context.Background(), "example.edu", "a1b2c3d4")
			if tt.wantErr {
				require.Error(t, err)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, check.Found)
		})
	}
}

func TestCheckWellKnown(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantFound bool
	}{
		{
			name:      "exact nonce body",
			status:    http.StatusOK,
			body:      "a1b2c3d4",
			wantFound: true,
		},
		{
			name:      "surrounding whitespace is trimmed",
			status:    http.StatusOK,
			body:      "  a1b2c3d4\n",
			wantFound: true,
		},
		{
			name:   "extra content fails",
			status: http.StatusOK,
			body:   "a1b2c3d4 and some html",
		},
		{
			name:   "missing file",
			status: http.StatusNotFound,
			body:   "not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &stubFetcher{status: tt.status, body: tt.body}
			v := NewChallengeVerifier(&stubResolver{}, fetcher)

			check, err := v.CheckWellKnown(context.Background(), "example.edu", "a1b2c3d4")
			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, check.Found)
			assert.Equal(t, "https://example.edu/.well-known/certified-sliders-verify.txt", fetcher.lastURL)
		})
	}
}
