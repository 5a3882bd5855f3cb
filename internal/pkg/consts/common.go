package consts

import "time"

const (
	MimePrefixImage = "image"
)

const (
	DefaultAvatarURL = "default_avatar.png"
)

const (
	DefaultPageSize  = 20
	MaxPageSize      = 100
	TrendingWindow   = 7 * 24 * time.Hour
	MaxImageEdge     = 800
	MaxAvatarEdge    = 300
	SuggestUserLimit = 5
)
