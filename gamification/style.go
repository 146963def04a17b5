package gamification

import (
	"image/color"

	"apex-client/api"
)

// TierStyle holds the colours a tier is drawn with
type TierStyle struct {
	Background color.NRGBA
	Border     color.NRGBA
	Text       color.NRGBA
}

var tierStyles = map[api.Tier]TierStyle{
	api.TierBronze: {
		Background: color.NRGBA{R: 0x7c, G: 0x2d, B: 0x12, A: 0x33},
		Border:     color.NRGBA{R: 0xf9, G: 0x73, B: 0x16, A: 0x4d},
		Text:       color.NRGBA{R: 0xfb, G: 0x92, B: 0x3c, A: 0xff},
	},
	api.TierSilver: {
		Background: color.NRGBA{R: 0x37, G: 0x41, B: 0x51, A: 0x33},
		Border:     color.NRGBA{R: 0x9c, G: 0xa3, B: 0xaf, A: 0x4d},
		Text:       color.NRGBA{R: 0xd1, G: 0xd5, B: 0xdb, A: 0xff},
	},
	api.TierGold: {
		Background: color.NRGBA{R: 0x71, G: 0x3f, B: 0x12, A: 0x33},
		Border:     color.NRGBA{R: 0xea, G: 0xb3, B: 0x08, A: 0x4d},
		Text:       color.NRGBA{R: 0xfa, G: 0xcc, B: 0x15, A: 0xff},
	},
	api.TierPlatinum: {
		Background: color.NRGBA{R: 0x58, G: 0x1c, B: 0x87, A: 0x33},
		Border:     color.NRGBA{R: 0xa8, G: 0x55, B: 0xf7, A: 0x4d},
		Text:       color.NRGBA{R: 0xc0, G: 0x84, B: 0xfc, A: 0xff},
	},
}

// StyleFor returns the style of a tier; unknown tiers use bronze
func StyleFor(t api.Tier) TierStyle {
	if s, ok := tierStyles[t]; ok {
		return s
	}
	return tierStyles[api.TierBronze]
}

// DefaultIcon is used for unknown icon names
const DefaultIcon = "award"

var knownIcons = map[string]bool{
	"search":   true,
	"award":    true,
	"trending": true,
	"message":  true,
	"users":    true,
	"flame":    true,
	"trophy":   true,
	"star":     true,
	"target":   true,
	"zap":      true,
}

// IconName normalises an achievement icon tag
func IconName(icon string) string {
	if knownIcons[icon] {
		return icon
	}
	return DefaultIcon
}

// BadgeSize selects a badge variant
type BadgeSize string

const (
	BadgeSmall  BadgeSize = "sm"
	BadgeMedium BadgeSize = "md"
	BadgeLarge  BadgeSize = "lg"
)

// BadgeMetrics are the pixel dimensions of a badge variant
type BadgeMetrics struct {
	Container float32
	Icon      float32
	TextSize  float32
}

var badgeMetrics = map[BadgeSize]BadgeMetrics{
	BadgeSmall:  {Container: 80, Icon: 20, TextSize: 11},
	BadgeMedium: {Container: 128, Icon: 32, TextSize: 13},
	BadgeLarge:  {Container: 192, Icon: 48, TextSize: 15},
}

// MetricsFor returns the dimensions of a size; unknown sizes use medium
func MetricsFor(size BadgeSize) BadgeMetrics {
	if m, ok := badgeMetrics[size]; ok {
		return m
	}
	return badgeMetrics[BadgeMedium]
}
