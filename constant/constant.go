package constant

type Environment string

const (
	EnvironmentProduction Environment = "production"
	EnvironmentStaging    Environment = "staging"
	EnvironmentDevelop    Environment = "develop"
)

func (e Environment) String() string {
	return string(e)
}

type ResourceType string

const (
	ResourceTypeImage ResourceType = "image"
	ResourceTypeVideo ResourceType = "video"
	ResourceTypeFile  ResourceType = "file"
)

// Prefix is the object storage folder for the resource type.
func (r ResourceType) Prefix() string {
	switch r {
	case ResourceTypeImage:
		return "images"
	case ResourceTypeVideo:
		return "videos"
	default:
		return "files"
	}
}

const (
	AssetCleanupExchange   = "asset_cleanup_exchange"
	AssetCleanupQueue      = "asset_cleanup_queue"
	AssetCleanupRoutingKey = "asset.cleanup.request"
	AssetCleanupDLQ        = "asset_cleanup_queue_dlq"
	AssetCleanupDLQKey     = "dlq.asset.cleanup.request"
)

type CleanupReason string

const (
	CleanupReasonChapterDeleted CleanupReason = "chapter_deleted"
	CleanupReasonCourseDeleted  CleanupReason = "course_deleted"
	CleanupReasonVideoReplaced  CleanupReason = "video_replaced"
	CleanupReasonCompensation   CleanupReason = "compensation"
)

const UnnamedAttachment = "unnamed"

// ContextKeyUserId is the gin context key holding the authenticated user id.
const ContextKeyUserId = "userId"
