package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePlatform(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		expected Platform
	}{
		{name: "lowercase key", key: "meta", expected: PlatformMeta},
		{name: "mixed case key", key: "TikTok", expected: PlatformTikTok},
		{name: "already canonical", key: "GOOGLE", expected: PlatformGoogle},
		{name: "surrounding whitespace", key: "  linkedin ", expected: PlatformLinkedIn},
		{name: "unknown platform passes through uppercased", key: "snapchat", expected: Platform("SNAPCHAT")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizePlatform(tt.key))
		})
	}
}

func TestCampaign_EnabledPlatforms(t *testing.T) {
	campaign := &Campaign{
		ID: "CMP001",
		Platforms: map[string]PlatformConfig{
			"meta":   {Enabled: true},
			"Google": {Enabled: true},
		},
	}

	platforms := campaign.EnabledPlatforms()

	assert.Len(t, platforms, 2)
	assert.Contains(t, platforms, PlatformMeta)
	assert.Contains(t, platforms, PlatformGoogle)
}

func TestCampaign_EnabledPlatforms_SkipsDisabled(t *testing.T) {
	campaign := &Campaign{
		ID: "CMP001",
		Platforms: map[string]PlatformConfig{
			"meta":   {Enabled: false},
			"google": {Enabled: true},
		},
	}

	platforms := campaign.EnabledPlatforms()

	assert.Equal(t, []Platform{PlatformGoogle}, platforms)
}

func TestCampaign_EnabledPlatforms_Empty(t *testing.T) {
	campaign := &Campaign{ID: "CMP002"}

	assert.Empty(t, campaign.EnabledPlatforms())
}
