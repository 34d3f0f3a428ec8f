package service

import (
	"context"
	"testing"

	"quorum/internal/models"
	"quorum/internal/query"
	"quorum/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func gormNotFound() error { return gorm.ErrRecordNotFound }

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	require.True(t, models.IsCode(err, models.CodeValidation), "expected validation error, got %v", err)
}

func assertConflictError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	require.True(t, models.IsCode(err, models.CodeConflict), "expected conflict error, got %v", err)
}

func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	require.True(t, models.IsCode(err, models.CodeUnauthorized), "expected unauthorized error, got %v", err)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	require.True(t, models.IsCode(err, models.CodeNotFound), "expected not-found error, got %v", err)
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	setBannedFn     func(context.Context, uint, bool) error
}

func (s *userRepoStub) Create(ctx context.Context, u *models.User) error { return s.createFn(ctx, u) }
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, name string) (*models.User, error) {
	return s.getByUsernameFn(ctx, name)
}
func (s *userRepoStub) SetBanned(ctx context.Context, id uint, banned bool) error {
	return s.setBannedFn(ctx, id, banned)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn: func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "member", Role: models.RoleUser}, nil
		},
		getByUsernameFn: func(_ context.Context, name string) (*models.User, error) {
			return &models.User{ID: 1, Username: name, Role: models.RoleUser}, nil
		},
		setBannedFn: func(_ context.Context, _ uint, _ bool) error { return nil },
	}
}

// moderatorUserRepo resolves every id to a moderator.
func moderatorUserRepo() *userRepoStub {
	repo := noopUserRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Username: "mod", Role: models.RoleModerator}, nil
	}
	return repo
}

// categoryRepoStub is a stub for repository.CategoryRepository.
type categoryRepoStub struct {
	createFn    func(context.Context, *models.Category) error
	getByIDFn   func(context.Context, uint) (*models.Category, error)
	getBySlugFn func(context.Context, string) (*models.Category, error)
	listFn      func(context.Context, repository.CategoryFilter) ([]*models.Category, int64, error)
	updateFn    func(context.Context, *models.Category) error
	setActiveFn func(context.Context, uint, bool) error
}

func (s *categoryRepoStub) Create(ctx context.Context, c *models.Category) error {
	return s.createFn(ctx, c)
}
func (s *categoryRepoStub) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	return s.getByIDFn(ctx, id)
}
func (s *categoryRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *categoryRepoStub) List(ctx context.Context, f repository.CategoryFilter) ([]*models.Category, int64, error) {
	return s.listFn(ctx, f)
}
func (s *categoryRepoStub) Update(ctx context.Context, c *models.Category) error {
	return s.updateFn(ctx, c)
}
func (s *categoryRepoStub) SetActive(ctx context.Context, id uint, active bool) error {
	return s.setActiveFn(ctx, id, active)
}

func noopCategoryRepo() *categoryRepoStub {
	return &categoryRepoStub{
		createFn: func(_ context.Context, c *models.Category) error { c.ID = 1; return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Category, error) {
			return &models.Category{ID: id, Name: "General", Slug: "general", IsActive: true}, nil
		},
		getBySlugFn: func(_ context.Context, _ string) (*models.Category, error) {
			return nil, gormNotFound()
		},
		listFn: func(_ context.Context, _ repository.CategoryFilter) ([]*models.Category, int64, error) {
			return nil, 0, nil
		},
		updateFn:    func(_ context.Context, _ *models.Category) error { return nil },
		setActiveFn: func(_ context.Context, _ uint, _ bool) error { return nil },
	}
}

// topicRepoStub is a stub for repository.TopicRepository.
type topicRepoStub struct {
	createFn        func(context.Context, *models.Topic) error
	getByIDFn       func(context.Context, uint) (*models.Topic, error)
	listFn          func(context.Context, repository.TopicFilter) ([]*models.Topic, int64, error)
	updateContentFn func(context.Context, uint, string, string) error
	setStatusFn     func(context.Context, *models.Topic, models.TopicStatus, uint) error
	setPinnedFn     func(context.Context, uint, bool) error
	setLockedFn     func(context.Context, uint, bool) error
	markAnswerFn    func(context.Context, *models.Topic, uint, uint) error
	unmarkAnswerFn  func(context.Context, *models.Topic) error
	incrementViewFn func(context.Context, uint) error
	setTagsFn       func(context.Context, *models.Topic, []models.Tag) error
}

func (s *topicRepoStub) Create(ctx context.Context, topic *models.Topic) error {
	return s.createFn(ctx, topic)
}
func (s *topicRepoStub) GetByID(ctx context.Context, id uint) (*models.Topic, error) {
	return s.getByIDFn(ctx, id)
}
func (s *topicRepoStub) List(ctx context.Context, f repository.TopicFilter) ([]*models.Topic, int64, error) {
	return s.listFn(ctx, f)
}
func (s *topicRepoStub) UpdateContent(ctx context.Context, id uint, title, content string) error {
	return s.updateContentFn(ctx, id, title, content)
}
func (s *topicRepoStub) SetStatus(ctx context.Context, topic *models.Topic, next models.TopicStatus, actorID uint) error {
	return s.setStatusFn(ctx, topic, next, actorID)
}
func (s *topicRepoStub) SetPinned(ctx context.Context, id uint, pinned bool) error {
	return s.setPinnedFn(ctx, id, pinned)
}
func (s *topicRepoStub) SetLocked(ctx context.Context, id uint, locked bool) error {
	return s.setLockedFn(ctx, id, locked)
}
func (s *topicRepoStub) MarkAnswer(ctx context.Context, topic *models.Topic, postID, actorID uint) error {
	return s.markAnswerFn(ctx, topic, postID, actorID)
}
func (s *topicRepoStub) UnmarkAnswer(ctx context.Context, topic *models.Topic) error {
	return s.unmarkAnswerFn(ctx, topic)
}
func (s *topicRepoStub) IncrementViewCount(ctx context.Context, id uint) error {
	return s.incrementViewFn(ctx, id)
}
func (s *topicRepoStub) SetTags(ctx context.Context, topic *models.Topic, tags []models.Tag) error {
	return s.setTagsFn(ctx, topic, tags)
}

func noopTopicRepo() *topicRepoStub {
	return &topicRepoStub{
		createFn: func(_ context.Context, topic *models.Topic) error { topic.ID = 1; return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Topic, error) {
			return &models.Topic{ID: id, UserID: 1, CategoryID: 1, Status: models.TopicStatusOpen}, nil
		},
		listFn: func(_ context.Context, _ repository.TopicFilter) ([]*models.Topic, int64, error) {
			return nil, 0, nil
		},
		updateContentFn: func(_ context.Context, _ uint, _, _ string) error { return nil },
		setStatusFn: func(_ context.Context, topic *models.Topic, next models.TopicStatus, _ uint) error {
			topic.Status = next
			return nil
		},
		setPinnedFn:     func(_ context.Context, _ uint, _ bool) error { return nil },
		setLockedFn:     func(_ context.Context, _ uint, _ bool) error { return nil },
		markAnswerFn:    func(_ context.Context, _ *models.Topic, _, _ uint) error { return nil },
		unmarkAnswerFn:  func(_ context.Context, _ *models.Topic) error { return nil },
		incrementViewFn: func(_ context.Context, _ uint) error { return nil },
		setTagsFn:       func(_ context.Context, _ *models.Topic, _ []models.Tag) error { return nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn      func(context.Context, *models.Post) error
	getByIDFn     func(context.Context, uint, bool) (*models.Post, error)
	listByTopicFn func(context.Context, repository.PostFilter) ([]*models.Post, int64, error)
	softDeleteFn  func(context.Context, uint, uint) error
	restoreFn     func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint, includeDeleted bool) (*models.Post, error) {
	return s.getByIDFn(ctx, id, includeDeleted)
}
func (s *postRepoStub) ListByTopic(ctx context.Context, f repository.PostFilter) ([]*models.Post, int64, error) {
	return s.listByTopicFn(ctx, f)
}
func (s *postRepoStub) SoftDelete(ctx context.Context, id, deletedByID uint) error {
	return s.softDeleteFn(ctx, id, deletedByID)
}
func (s *postRepoStub) Restore(ctx context.Context, id uint) error { return s.restoreFn(ctx, id) }

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, post *models.Post) error { post.ID = 1; return nil },
		getByIDFn: func(_ context.Context, id uint, _ bool) (*models.Post, error) {
			return &models.Post{ID: id, TopicID: 1, UserID: 1, Content: "existing"}, nil
		},
		listByTopicFn: func(_ context.Context, _ repository.PostFilter) ([]*models.Post, int64, error) {
			return nil, 0, nil
		},
		softDeleteFn: func(_ context.Context, _, _ uint) error { return nil },
		restoreFn:    func(_ context.Context, _ uint) error { return nil },
	}
}

// replyRepoStub is a stub for repository.ReplyRepository.
type replyRepoStub struct {
	createFn     func(context.Context, *models.Reply, bool) error
	getByIDFn    func(context.Context, uint, bool) (*models.Reply, error)
	listByPostFn func(context.Context, repository.ReplyFilter) ([]*models.Reply, int64, error)
	softDeleteFn func(context.Context, uint, uint) error
	restoreFn    func(context.Context, uint) error
}

func (s *replyRepoStub) Create(ctx context.Context, reply *models.Reply, touchThread bool) error {
	return s.createFn(ctx, reply, touchThread)
}
func (s *replyRepoStub) GetByID(ctx context.Context, id uint, includeDeleted bool) (*models.Reply, error) {
	return s.getByIDFn(ctx, id, includeDeleted)
}
func (s *replyRepoStub) ListByPost(ctx context.Context, f repository.ReplyFilter) ([]*models.Reply, int64, error) {
	return s.listByPostFn(ctx, f)
}
func (s *replyRepoStub) SoftDelete(ctx context.Context, id, deletedByID uint) error {
	return s.softDeleteFn(ctx, id, deletedByID)
}
func (s *replyRepoStub) Restore(ctx context.Context, id uint) error { return s.restoreFn(ctx, id) }

func noopReplyRepo() *replyRepoStub {
	return &replyRepoStub{
		createFn: func(_ context.Context, reply *models.Reply, _ bool) error { reply.ID = 1; return nil },
		getByIDFn: func(_ context.Context, id uint, _ bool) (*models.Reply, error) {
			return &models.Reply{ID: id, PostID: 1, UserID: 1, Content: "existing"}, nil
		},
		listByPostFn: func(_ context.Context, _ repository.ReplyFilter) ([]*models.Reply, int64, error) {
			return nil, 0, nil
		},
		softDeleteFn: func(_ context.Context, _, _ uint) error { return nil },
		restoreFn:    func(_ context.Context, _ uint) error { return nil },
	}
}

// historyRepoStub is a stub for repository.EditHistoryRepository.
type historyRepoStub struct {
	recordEditFn     func(context.Context, models.ContentKind, uint, string, uint) (*models.EditHistoryEntry, error)
	listForContentFn func(context.Context, models.ContentKind, uint, query.PageRequest) ([]*models.EditHistoryEntry, int64, error)
}

func (s *historyRepoStub) RecordEdit(ctx context.Context, kind models.ContentKind, contentID uint, newContent string, editorID uint) (*models.EditHistoryEntry, error) {
	return s.recordEditFn(ctx, kind, contentID, newContent, editorID)
}
func (s *historyRepoStub) ListForContent(ctx context.Context, kind models.ContentKind, contentID uint, page query.PageRequest) ([]*models.EditHistoryEntry, int64, error) {
	return s.listForContentFn(ctx, kind, contentID, page)
}

func noopHistoryRepo() *historyRepoStub {
	return &historyRepoStub{
		recordEditFn: func(_ context.Context, kind models.ContentKind, contentID uint, _ string, editorID uint) (*models.EditHistoryEntry, error) {
			return &models.EditHistoryEntry{ID: 1, ContentKind: kind, ContentID: contentID, EditorID: editorID}, nil
		},
		listForContentFn: func(_ context.Context, _ models.ContentKind, _ uint, _ query.PageRequest) ([]*models.EditHistoryEntry, int64, error) {
			return nil, 0, nil
		},
	}
}

// voteRepoStub is a stub for repository.VoteRepository.
type voteRepoStub struct {
	castFn        func(context.Context, uint, models.VoteTarget, uint, models.VotePolarity) (repository.VoteOutcome, error)
	removeFn      func(context.Context, uint, models.VoteTarget, uint) (repository.VoteOutcome, error)
	getUserVoteFn func(context.Context, uint, models.VoteTarget, uint) (*models.Vote, error)
	listForUserFn func(context.Context, uint, query.PageRequest) ([]*models.Vote, int64, error)
}

func (s *voteRepoStub) Cast(ctx context.Context, userID uint, kind models.VoteTarget, targetID uint, polarity models.VotePolarity) (repository.VoteOutcome, error) {
	return s.castFn(ctx, userID, kind, targetID, polarity)
}
func (s *voteRepoStub) Remove(ctx context.Context, userID uint, kind models.VoteTarget, targetID uint) (repository.VoteOutcome, error) {
	return s.removeFn(ctx, userID, kind, targetID)
}
func (s *voteRepoStub) GetUserVote(ctx context.Context, userID uint, kind models.VoteTarget, targetID uint) (*models.Vote, error) {
	return s.getUserVoteFn(ctx, userID, kind, targetID)
}
func (s *voteRepoStub) ListForUser(ctx context.Context, userID uint, page query.PageRequest) ([]*models.Vote, int64, error) {
	return s.listForUserFn(ctx, userID, page)
}

func noopVoteRepo() *voteRepoStub {
	return &voteRepoStub{
		castFn: func(_ context.Context, _ uint, _ models.VoteTarget, _ uint, _ models.VotePolarity) (repository.VoteOutcome, error) {
			return repository.VoteApplied, nil
		},
		removeFn: func(_ context.Context, _ uint, _ models.VoteTarget, _ uint) (repository.VoteOutcome, error) {
			return repository.VoteRemoved, nil
		},
		getUserVoteFn: func(_ context.Context, userID uint, kind models.VoteTarget, targetID uint) (*models.Vote, error) {
			return &models.Vote{ID: 1, UserID: userID, TargetKind: kind, TargetID: targetID, Value: 1}, nil
		},
		listForUserFn: func(_ context.Context, _ uint, _ query.PageRequest) ([]*models.Vote, int64, error) {
			return nil, 0, nil
		},
	}
}

// modRepoStub is a stub for repository.ModerationRepository.
type modRepoStub struct {
	recordFn        func(context.Context, *models.ModerationLogEntry) error
	recordRemovalFn func(context.Context, *models.ModerationLogEntry, models.ContentKind, uint) error
	recordBanFn     func(context.Context, *models.ModerationLogEntry, uint, bool) error
	listFn          func(context.Context, repository.ModerationFilter) ([]*models.ModerationLogEntry, int64, error)
}

func (s *modRepoStub) Record(ctx context.Context, entry *models.ModerationLogEntry) error {
	return s.recordFn(ctx, entry)
}
func (s *modRepoStub) RecordContentRemoval(ctx context.Context, entry *models.ModerationLogEntry, kind models.ContentKind, contentID uint) error {
	return s.recordRemovalFn(ctx, entry, kind, contentID)
}
func (s *modRepoStub) RecordBan(ctx context.Context, entry *models.ModerationLogEntry, targetUserID uint, banned bool) error {
	return s.recordBanFn(ctx, entry, targetUserID, banned)
}
func (s *modRepoStub) List(ctx context.Context, f repository.ModerationFilter) ([]*models.ModerationLogEntry, int64, error) {
	return s.listFn(ctx, f)
}

func noopModRepo() *modRepoStub {
	return &modRepoStub{
		recordFn: func(_ context.Context, entry *models.ModerationLogEntry) error {
			entry.ID = 1
			return nil
		},
		recordRemovalFn: func(_ context.Context, entry *models.ModerationLogEntry, _ models.ContentKind, _ uint) error {
			entry.ID = 1
			return nil
		},
		recordBanFn: func(_ context.Context, entry *models.ModerationLogEntry, _ uint, _ bool) error {
			entry.ID = 1
			return nil
		},
		listFn: func(_ context.Context, _ repository.ModerationFilter) ([]*models.ModerationLogEntry, int64, error) {
			return nil, 0, nil
		},
	}
}

// reportRepoStub is a stub for repository.ReportRepository.
type reportRepoStub struct {
	createFn         func(context.Context, *models.ReportedContent) error
	getByIDFn        func(context.Context, uint) (*models.ReportedContent, error)
	getByReferenceFn func(context.Context, string) (*models.ReportedContent, error)
	listFn           func(context.Context, repository.ReportFilter) ([]*models.ReportedContent, int64, error)
	setStatusFn      func(context.Context, *models.ReportedContent, models.ReportStatus, map[string]interface{}) error
}

func (s *reportRepoStub) Create(ctx context.Context, report *models.ReportedContent) error {
	return s.createFn(ctx, report)
}
func (s *reportRepoStub) GetByID(ctx context.Context, id uint) (*models.ReportedContent, error) {
	return s.getByIDFn(ctx, id)
}
func (s *reportRepoStub) GetByReference(ctx context.Context, reference string) (*models.ReportedContent, error) {
	return s.getByReferenceFn(ctx, reference)
}
func (s *reportRepoStub) List(ctx context.Context, f repository.ReportFilter) ([]*models.ReportedContent, int64, error) {
	return s.listFn(ctx, f)
}
func (s *reportRepoStub) SetStatus(ctx context.Context, report *models.ReportedContent, next models.ReportStatus, updates map[string]interface{}) error {
	return s.setStatusFn(ctx, report, next, updates)
}

func noopReportRepo() *reportRepoStub {
	return &reportRepoStub{
		createFn: func(_ context.Context, report *models.ReportedContent) error {
			report.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.ReportedContent, error) {
			return &models.ReportedContent{ID: id, Status: models.ReportStatusPending, ReportingUserID: 1}, nil
		},
		getByReferenceFn: func(_ context.Context, reference string) (*models.ReportedContent, error) {
			return &models.ReportedContent{ID: 1, Reference: reference, Status: models.ReportStatusPending, ReportingUserID: 1}, nil
		},
		listFn: func(_ context.Context, _ repository.ReportFilter) ([]*models.ReportedContent, int64, error) {
			return nil, 0, nil
		},
		setStatusFn: func(_ context.Context, report *models.ReportedContent, next models.ReportStatus, _ map[string]interface{}) error {
			report.Status = next
			return nil
		},
	}
}

// watchRepoStub is a stub for repository.WatchRepository.
type watchRepoStub struct {
	watchFn          func(context.Context, uint, uint) (bool, error)
	unwatchFn        func(context.Context, uint, uint) (bool, error)
	isWatchingFn     func(context.Context, uint, uint) (bool, error)
	listForUserFn    func(context.Context, uint, query.PageRequest) ([]*models.Topic, int64, error)
	listWatcherIDsFn func(context.Context, uint) ([]uint, error)
}

func (s *watchRepoStub) Watch(ctx context.Context, userID, topicID uint) (bool, error) {
	return s.watchFn(ctx, userID, topicID)
}
func (s *watchRepoStub) Unwatch(ctx context.Context, userID, topicID uint) (bool, error) {
	return s.unwatchFn(ctx, userID, topicID)
}
func (s *watchRepoStub) IsWatching(ctx context.Context, userID, topicID uint) (bool, error) {
	return s.isWatchingFn(ctx, userID, topicID)
}
func (s *watchRepoStub) ListForUser(ctx context.Context, userID uint, page query.PageRequest) ([]*models.Topic, int64, error) {
	return s.listForUserFn(ctx, userID, page)
}
func (s *watchRepoStub) ListWatcherIDs(ctx context.Context, topicID uint) ([]uint, error) {
	return s.listWatcherIDsFn(ctx, topicID)
}

func noopWatchRepo() *watchRepoStub {
	return &watchRepoStub{
		watchFn:      func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		unwatchFn:    func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		isWatchingFn: func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		listForUserFn: func(_ context.Context, _ uint, _ query.PageRequest) ([]*models.Topic, int64, error) {
			return nil, 0, nil
		},
		listWatcherIDsFn: func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
	}
}

// statsRepoStub is a stub for repository.StatsRepository.
type statsRepoStub struct {
	getForUserFn        func(context.Context, uint) (*models.ForumUserStats, error)
	recomputeFn         func(context.Context, uint) (*models.ForumUserStats, error)
	recomputeCategoryFn func(context.Context, uint) error
}

func (s *statsRepoStub) GetForUser(ctx context.Context, userID uint) (*models.ForumUserStats, error) {
	return s.getForUserFn(ctx, userID)
}
func (s *statsRepoStub) Recompute(ctx context.Context, userID uint) (*models.ForumUserStats, error) {
	return s.recomputeFn(ctx, userID)
}
func (s *statsRepoStub) RecomputeCategoryCounters(ctx context.Context, categoryID uint) error {
	return s.recomputeCategoryFn(ctx, categoryID)
}

func noopStatsRepo() *statsRepoStub {
	return &statsRepoStub{
		getForUserFn: func(_ context.Context, userID uint) (*models.ForumUserStats, error) {
			return &models.ForumUserStats{UserID: userID}, nil
		},
		recomputeFn: func(_ context.Context, userID uint) (*models.ForumUserStats, error) {
			return &models.ForumUserStats{UserID: userID}, nil
		},
		recomputeCategoryFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// tagRepoStub is a stub for repository.TagRepository.
type tagRepoStub struct {
	createFn             func(context.Context, *models.Tag) error
	getByIDFn            func(context.Context, uint) (*models.Tag, error)
	getByNameFn          func(context.Context, string) (*models.Tag, error)
	getOrCreateByNamesFn func(context.Context, []string) ([]models.Tag, error)
	listFn               func(context.Context, string, query.PageRequest) ([]*models.Tag, int64, error)
	deleteFn             func(context.Context, uint) error
}

func (s *tagRepoStub) Create(ctx context.Context, tag *models.Tag) error { return s.createFn(ctx, tag) }
func (s *tagRepoStub) GetByID(ctx context.Context, id uint) (*models.Tag, error) {
	return s.getByIDFn(ctx, id)
}
func (s *tagRepoStub) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	return s.getByNameFn(ctx, name)
}
func (s *tagRepoStub) GetOrCreateByNames(ctx context.Context, names []string) ([]models.Tag, error) {
	return s.getOrCreateByNamesFn(ctx, names)
}
func (s *tagRepoStub) List(ctx context.Context, name string, page query.PageRequest) ([]*models.Tag, int64, error) {
	return s.listFn(ctx, name, page)
}
func (s *tagRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }

func noopTagRepo() *tagRepoStub {
	return &tagRepoStub{
		createFn:    func(_ context.Context, tag *models.Tag) error { tag.ID = 1; return nil },
		getByIDFn:   func(_ context.Context, id uint) (*models.Tag, error) { return &models.Tag{ID: id}, nil },
		getByNameFn: func(_ context.Context, name string) (*models.Tag, error) { return &models.Tag{ID: 1, Name: name}, nil },
		getOrCreateByNamesFn: func(_ context.Context, names []string) ([]models.Tag, error) {
			tags := make([]models.Tag, len(names))
			for i, name := range names {
				tags[i] = models.Tag{ID: uint(i + 1), Name: name}
			}
			return tags, nil
		},
		listFn: func(_ context.Context, _ string, _ query.PageRequest) ([]*models.Tag, int64, error) {
			return nil, 0, nil
		},
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}
