package config

import "testing"

func TestCanonicalizeEnvKey(t *testing.T) {
	existing := map[string]any{
		"env": map[string]any{
			"serviceName": "sliders",
			"log": map[string]any{
				"pretty": true,
			},
		},
		"postgres": map[string]any{
			"sslMode": "disable",
		},
		"verification": map[string]any{
			"claimTokenTtl": "15m",
			"fetchTimeout":  "5s",
		},
		"timeAdjust": map[string]any{
			"endpoint": "",
		},
	}

	cases := []struct {
		name   string
		rawKey string
		want   string
	}{
		{
			name:   "aligns single-level key",
			rawKey: "POSTGRES_SSLMODE",
			want:   "postgres.sslMode",
		},
		{
			name:   "aligns nested camelCase keys",
			rawKey: "ENV_SERVICENAME",
			want:   "env.serviceName",
		},
		{
			name:   "aligns deep nesting",
			rawKey: "ENV_LOG_PRETTY",
			want:   "env.log.pretty",
		},
		{
			name:   "aligns multi-word camelCase leaf",
			rawKey: "VERIFICATION_CLAIMTOKENTTL",
			want:   "verification.claimTokenTtl",
		},
		{
			name:   "aligns camelCase top-level section",
			rawKey: "TIMEADJUST_ENDPOINT",
			want:   "timeAdjust.endpoint",
		},
		{
			name:   "unknown key falls back to lowercase path",
			rawKey: "SECRETKEY_CLAIM",
			want:   "secretkey.claim",
		},
		{
			name:   "unknown leaf under known section keeps section casing",
			rawKey: "VERIFICATION_MAXATTEMPTS",
			want:   "verification.maxattempts",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := canonicalizeEnvKey(tc.rawKey, existing)
			if got != tc.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tc.rawKey, got, tc.want)
			}
		})
	}
}
