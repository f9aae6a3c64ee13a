package constants

import "time"

const (
	UserTableName        = "users"
	VideoTableName       = "videos"
	CommentTableName     = "comments"
	VideoLikeTableName   = "video_likes"
	CommentLikeTableName = "comment_likes"
	FollowTableName      = "follows"
)

const (
	FeedLimit        = 10
	ExploreLimit     = 30
	SearchLimit      = 10
	DefaultPageSize  = 20
	MaxPageSize      = 100
	ExploreCacheTTL  = 30 * time.Second
	ToggleLockExpiry = 5 * time.Second
)

const (
	VideoBucket        = "videos"
	MaxUploadSize      = 100 * 1024 * 1024
	MaxAvatarSize      = 5 * 1024 * 1024
	MaxTitleLength     = 100
	MaxDescriptionLen  = 500
	MaxCommentLength   = 500
	MaxDisplayNameLen  = 50
	MaxBioLength       = 300
	MinPasswordLength  = 6
	CoverObjectPrefix  = "covers/"
	AvatarObjectPrefix = "avatars/"
	VideoObjectSuffix  = ".mp4"
)

const (
	IdentityKey = "identity"
	JWTCookie   = "jwt"
)

const (
	RelationExchange = "relation_events"
	SearchExchange   = "search_events"
	SearchQueue      = "search_index_queue"
)

const (
	ViewCountKey        = "video:views:%d"
	ViewDirtySetKey     = "video:views:dirty"
	ExploreCacheKey     = "videos:explore:%d"
	ExploreCachePattern = "videos:explore:*"
	ToggleLockKey       = "toggle:%s:%d:%d"
	VideoIndexSuffix    = "_videos"
	UserIndexSuffix     = "_users"
	HealthCheckTimeout  = 2 * time.Second
)
