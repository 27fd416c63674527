package security

import (
	"testing"
	"time"

	"userhub/internal/model"

	"github.com/stretchr/testify/require"
)

func TestParseEnvironment(t *testing.T) {
	require.Equal(t, Development, ParseEnvironment("development"))
	require.Equal(t, Production, ParseEnvironment("production"))
	// Anything unknown is treated as production: fail safe.
	require.Equal(t, Production, ParseEnvironment(""))
	require.Equal(t, Production, ParseEnvironment("staging"))
}

func TestTierForRole(t *testing.T) {
	require.Equal(t, TierAdmin, TierForRole(model.RoleAdmin))
	require.Equal(t, TierUser, TierForRole(model.RoleUser))
	require.Equal(t, TierGuest, TierForRole(model.Role("")))
}

func TestTierPolicyTable(t *testing.T) {
	cases := []struct {
		tier    Tier
		env     Environment
		max     int
		mode    Mode
	}{
		{TierAdmin, Development, 100, ModeDryRun},
		{TierUser, Development, 50, ModeDryRun},
		{TierGuest, Development, 25, ModeDryRun},
		{TierAdmin, Production, 20, ModeLive},
		{TierUser, Production, 10, ModeLive},
		{TierGuest, Production, 5, ModeLive},
	}
	for _, tc := range cases {
		p := tc.tier.Policy(tc.env)
		require.Equal(t, tc.max, p.Max, "%s/%s", tc.tier, tc.env)
		require.Equal(t, tc.mode, p.Mode, "%s/%s", tc.tier, tc.env)
		require.Equal(t, time.Minute, p.Interval)
		require.Equal(t, tc.tier.String()+"-rate-limit", p.Name)
	}
}

func TestLimitMessage(t *testing.T) {
	p := TierGuest.Policy(Production)
	require.Equal(t, "Guest request limit exceeded (5 per minute). Slow down.", TierGuest.LimitMessage(p))

	p = TierAdmin.Policy(Development)
	require.Equal(t, "Admin request limit exceeded (100 per minute). Slow down.", TierAdmin.LimitMessage(p))
}
