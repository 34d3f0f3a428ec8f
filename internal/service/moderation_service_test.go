package service

import (
	"context"
	"testing"

	"quorum/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModerationService_RequiresModeratorRole(t *testing.T) {
	t.Parallel()

	svc := NewModerationService(noopModRepo(), noopUserRepo())
	ctx := context.Background()

	_, err := svc.RemoveContent(ctx, RemoveContentInput{ModeratorID: 1, Kind: models.ContentKindPost, ContentID: 1})
	assertUnauthorizedError(t, err)

	_, err = svc.BanUser(ctx, BanUserInput{ModeratorID: 1, TargetUserID: 2, Details: "spam"})
	assertUnauthorizedError(t, err)

	_, err = svc.WarnUser(ctx, WarnUserInput{ModeratorID: 1, TargetUserID: 2, Details: "be nice"})
	assertUnauthorizedError(t, err)

	_, err = svc.ListLog(ctx, 1, ListModerationLogInput{})
	assertUnauthorizedError(t, err)
}

func TestModerationService_RemoveContent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("post removal logs delete_comment with post target kind", func(t *testing.T) {
		t.Parallel()
		svc := NewModerationService(noopModRepo(), moderatorUserRepo())
		entry, err := svc.RemoveContent(ctx, RemoveContentInput{
			ModeratorID: 2, Kind: models.ContentKindPost, ContentID: 7, AuthorID: 3, Details: "off topic",
		})
		require.NoError(t, err)
		assert.Equal(t, models.ActionDeleteComment, entry.ActionType)
		require.NotNil(t, entry.TargetKind)
		assert.Equal(t, models.ContentKindPost, *entry.TargetKind)
		require.NotNil(t, entry.TargetID)
		assert.Equal(t, uint(7), *entry.TargetID)
		require.NotNil(t, entry.TargetUserID)
		assert.Equal(t, uint(3), *entry.TargetUserID)
	})

	t.Run("reply removal logs delete_comment with reply target kind", func(t *testing.T) {
		t.Parallel()
		svc := NewModerationService(noopModRepo(), moderatorUserRepo())
		entry, err := svc.RemoveContent(ctx, RemoveContentInput{
			ModeratorID: 2, Kind: models.ContentKindReply, ContentID: 8,
		})
		require.NoError(t, err)
		assert.Equal(t, models.ActionDeleteComment, entry.ActionType)
		require.NotNil(t, entry.TargetKind)
		assert.Equal(t, models.ContentKindReply, *entry.TargetKind)
	})

	t.Run("unknown kind rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewModerationService(noopModRepo(), moderatorUserRepo())
		_, err := svc.RemoveContent(ctx, RemoveContentInput{ModeratorID: 2, Kind: "thread", ContentID: 1})
		assertValidationError(t, err)
	})

	t.Run("already deleted maps to not found", func(t *testing.T) {
		t.Parallel()
		modRepo := noopModRepo()
		modRepo.recordRemovalFn = func(_ context.Context, _ *models.ModerationLogEntry, _ models.ContentKind, _ uint) error {
			return gormNotFound()
		}
		svc := NewModerationService(modRepo, moderatorUserRepo())
		_, err := svc.RemoveContent(ctx, RemoveContentInput{ModeratorID: 2, Kind: models.ContentKindPost, ContentID: 1})
		assertNotFoundError(t, err)
	})
}

func TestModerationService_BanUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("self ban rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewModerationService(noopModRepo(), moderatorUserRepo())
		_, err := svc.BanUser(ctx, BanUserInput{ModeratorID: 2, TargetUserID: 2, Details: "oops"})
		assertConflictError(t, err)
	})

	t.Run("reason required", func(t *testing.T) {
		t.Parallel()
		svc := NewModerationService(noopModRepo(), moderatorUserRepo())
		_, err := svc.BanUser(ctx, BanUserInput{ModeratorID: 2, TargetUserID: 3})
		assertValidationError(t, err)
	})

	t.Run("double ban rejected", func(t *testing.T) {
		t.Parallel()
		userRepo := moderatorUserRepo()
		userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			if id == 3 {
				return &models.User{ID: id, IsBanned: true}, nil
			}
			return &models.User{ID: id, Role: models.RoleModerator}, nil
		}
		svc := NewModerationService(noopModRepo(), userRepo)
		_, err := svc.BanUser(ctx, BanUserInput{ModeratorID: 2, TargetUserID: 3, Details: "again"})
		assertConflictError(t, err)
	})

	t.Run("success records entry", func(t *testing.T) {
		t.Parallel()
		modRepo := noopModRepo()
		var banned bool
		modRepo.recordBanFn = func(_ context.Context, entry *models.ModerationLogEntry, _ uint, b bool) error {
			entry.ID = 1
			banned = b
			return nil
		}
		svc := NewModerationService(modRepo, moderatorUserRepo())
		entry, err := svc.BanUser(ctx, BanUserInput{ModeratorID: 2, TargetUserID: 3, Details: "spam"})
		require.NoError(t, err)
		assert.Equal(t, models.ActionBanUser, entry.ActionType)
		assert.True(t, banned)
	})
}

func TestModerationService_UnbanUser(t *testing.T) {
	t.Parallel()

	userRepo := moderatorUserRepo()
	userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		if id == 3 {
			return &models.User{ID: id, IsBanned: true}, nil
		}
		return &models.User{ID: id, Role: models.RoleModerator}, nil
	}
	svc := NewModerationService(noopModRepo(), userRepo)

	entry, err := svc.UnbanUser(context.Background(), BanUserInput{ModeratorID: 2, TargetUserID: 3, Details: "appeal accepted"})
	require.NoError(t, err)
	assert.Equal(t, models.ActionUnbanUser, entry.ActionType)

	// unbanning a user who is not banned is a conflict
	svc2 := NewModerationService(noopModRepo(), moderatorUserRepo())
	_, err = svc2.UnbanUser(context.Background(), BanUserInput{ModeratorID: 2, TargetUserID: 4, Details: "noop"})
	assertConflictError(t, err)
}

func TestModerationService_WarnUser(t *testing.T) {
	t.Parallel()

	svc := NewModerationService(noopModRepo(), moderatorUserRepo())

	entry, err := svc.WarnUser(context.Background(), WarnUserInput{ModeratorID: 2, TargetUserID: 3, Details: "tone it down"})
	require.NoError(t, err)
	assert.Equal(t, models.ActionWarnUser, entry.ActionType)

	_, err = svc.WarnUser(context.Background(), WarnUserInput{ModeratorID: 2, TargetUserID: 3})
	assertValidationError(t, err)
}
