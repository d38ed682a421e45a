package performance

import (
	"time"

	"github.com/adpulse/campaign-metrics-api/internal/domain"
)

// hourMultipliers maps hour-of-day to a traffic multiplier: business hours
// peak, night hours trough, rising through the morning and falling through
// the evening.
var hourMultipliers = [24]float64{
	0.3, 0.2, 0.1, 0.1, 0.1, 0.2, // 00-05
	0.4, 0.6, 0.8, 1.0, 1.1, 1.2, // 06-11
	1.0, 0.9, 1.1, 1.2, 1.1, 1.0, // 12-17
	0.9, 0.8, 0.7, 0.6, 0.5, 0.4, // 18-23
}

// dayMultipliers maps weekday (Sunday = 0) to a traffic multiplier; midweek
// is strongest, Sunday weakest.
var dayMultipliers = [7]float64{0.6, 1.0, 1.1, 1.2, 1.1, 1.0, 0.8}

var platformMultipliers = map[domain.Platform]float64{
	domain.PlatformMeta:     1.0,
	domain.PlatformGoogle:   1.2,
	domain.PlatformTikTok:   0.8,
	domain.PlatformLinkedIn: 0.6,
	domain.PlatformYouTube:  0.9,
}

// HourMultiplier returns the traffic multiplier for an hour of day (0-23).
func HourMultiplier(hour int) float64 {
	if hour < 0 || hour > 23 {
		return 1.0
	}
	return hourMultipliers[hour]
}

// DayMultiplier returns the traffic multiplier for a weekday.
func DayMultiplier(weekday time.Weekday) float64 {
	return dayMultipliers[int(weekday)%7]
}

// PlatformMultiplier returns the relative performance multiplier for a
// platform. Platforms outside the known set are credited 1.0.
func PlatformMultiplier(platform domain.Platform) float64 {
	if m, ok := platformMultipliers[platform]; ok {
		return m
	}
	return 1.0
}
