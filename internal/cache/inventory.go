package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	CategoryListKeyName = "categories:active"
	CategoryKeyPrefix   = "category:%d"
	TopicKeyPrefix      = "topic:%d"
	TopicPostsPrefix    = "topic:%d:posts:p1"
	UserStatsKeyPrefix  = "userstats:%d"
)

const (
	CategoryListTTL = 10 * time.Minute
	CategoryTTL     = 10 * time.Minute
	TopicTTL        = 5 * time.Minute
	TopicPostsTTL   = 2 * time.Minute
	UserStatsTTL    = 5 * time.Minute
)

// CategoryListKey is the cache key for the public active-category listing.
func CategoryListKey() string {
	return CategoryListKeyName
}

func CategoryKey(categoryID uint) string {
	return fmt.Sprintf(CategoryKeyPrefix, categoryID)
}

func TopicKey(topicID uint) string {
	return fmt.Sprintf(TopicKeyPrefix, topicID)
}

// TopicPostsKey caches only the first public page of a topic's posts; deeper
// pages go to the store directly.
func TopicPostsKey(topicID uint) string {
	return fmt.Sprintf(TopicPostsPrefix, topicID)
}

func UserStatsKey(userID uint) string {
	return fmt.Sprintf(UserStatsKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateCategoryList(ctx context.Context) {
	Invalidate(ctx, CategoryListKey())
}

func InvalidateCategory(ctx context.Context, categoryID uint) {
	Invalidate(ctx, CategoryKey(categoryID))
	InvalidateCategoryList(ctx)
}

func InvalidateTopic(ctx context.Context, topicID uint) {
	Invalidate(ctx, TopicKey(topicID))
	Invalidate(ctx, TopicPostsKey(topicID))
}

func InvalidateUserStats(ctx context.Context, userID uint) {
	Invalidate(ctx, UserStatsKey(userID))
}
