package consts

import "time"

const (
	UserFeedKey          = "feed:user:"
	TrendingPostsKey     = "trending:posts:"
	NotifyUnreadCountKey = "notify:unread:"
	SuggestedUsersKey    = "suggest:users:"
	JWTDenyKey           = "jwt:deny:"
	IMUserChannelKey     = "im:user:"
)

// 缓存过期时间固定，不做随机抖动
const (
	UserFeedTTL          = 5 * time.Minute
	NotifyUnreadCountTTL = time.Minute
	TrendingPostsTTL     = 30 * time.Minute
	SuggestedUsersTTL    = time.Hour
)
