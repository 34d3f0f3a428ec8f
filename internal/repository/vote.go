package repository

import (
	"context"

	"quorum/internal/models"
	"quorum/internal/observability"
	"quorum/internal/query"

	"gorm.io/gorm"
)

// VoteOutcome describes what a cast or removal actually did.
type VoteOutcome string

const (
	// VoteApplied means a new ledger row was written.
	VoteApplied VoteOutcome = "applied"
	// VoteSwapped means an existing row flipped polarity.
	VoteSwapped VoteOutcome = "swapped"
	// VoteNoop means the ledger already held the requested state.
	VoteNoop VoteOutcome = "noop"
	// VoteRemoved means an existing row was deleted.
	VoteRemoved VoteOutcome = "removed"
)

// VoteRepository is the vote ledger. Cast and Remove are idempotent: replays
// and concurrent duplicates converge on one row per (user, target) pair, and
// every counter adjustment happens in the same transaction as the ledger
// write, guarded so a lost race adjusts nothing.
type VoteRepository interface {
	Cast(ctx context.Context, userID uint, kind models.VoteTarget, targetID uint, polarity models.VotePolarity) (VoteOutcome, error)
	Remove(ctx context.Context, userID uint, kind models.VoteTarget, targetID uint) (VoteOutcome, error)
	// GetUserVote returns nil without error when the user has no vote on
	// the target.
	GetUserVote(ctx context.Context, userID uint, kind models.VoteTarget, targetID uint) (*models.Vote, error)
	ListForUser(ctx context.Context, userID uint, page query.PageRequest) ([]*models.Vote, int64, error)
}

type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository creates a new VoteRepository
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

// voteTarget resolves the score-bearing row a vote points at. Review targets
// live in an external service, so they carry a ledger row and nothing else.
type voteTarget struct {
	table    string
	authorID uint
	scored   bool
}

func resolveVoteTarget(tx *gorm.DB, kind models.VoteTarget, targetID uint) (voteTarget, error) {
	switch kind {
	case models.VoteTargetTopic:
		var t models.Topic
		if err := tx.Select("id", "user_id").First(&t, targetID).Error; err != nil {
			return voteTarget{}, err
		}
		return voteTarget{table: "topics", authorID: t.UserID, scored: true}, nil
	case models.VoteTargetPost:
		var p models.Post
		if err := tx.Select("id", "user_id").Where("is_deleted = ?", false).First(&p, targetID).Error; err != nil {
			return voteTarget{}, err
		}
		return voteTarget{table: "posts", authorID: p.UserID, scored: true}, nil
	case models.VoteTargetReply:
		var rp models.Reply
		if err := tx.Select("id", "user_id").Where("is_deleted = ?", false).First(&rp, targetID).Error; err != nil {
			return voteTarget{}, err
		}
		return voteTarget{table: "replies", authorID: rp.UserID, scored: true}, nil
	case models.VoteTargetReview:
		return voteTarget{scored: false}, nil
	}
	return voteTarget{}, gorm.ErrRecordNotFound
}

// adjustScore shifts the denormalized score on the target row.
func adjustScore(tx *gorm.DB, target voteTarget, targetID uint, delta int) error {
	if !target.scored || delta == 0 {
		return nil
	}
	return tx.Table(target.table).Where("id = ?", targetID).
		Update("score", gorm.Expr("score + ?", delta)).Error
}

// voteStatsDelta maps a ledger change onto the target author's rollup.
// Reputation tracks the signed sum of votes; upvotes_received only counts
// positive rows. Topic votes affect the topic score alone.
func voteStatsDelta(kind models.VoteTarget, oldValue, newValue int) statsDelta {
	if kind != models.VoteTargetPost && kind != models.VoteTargetReply {
		return statsDelta{}
	}
	d := statsDelta{Reputation: int64(newValue - oldValue)}
	if oldValue > 0 {
		d.UpvotesReceived--
	}
	if newValue > 0 {
		d.UpvotesReceived++
	}
	return d
}

func (r *voteRepository) Cast(ctx context.Context, userID uint, kind models.VoteTarget, targetID uint, polarity models.VotePolarity) (VoteOutcome, error) {
	outcome := VoteNoop
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		target, err := resolveVoteTarget(tx, kind, targetID)
		if err != nil {
			return err
		}

		var existing models.Vote
		err = tx.Where("user_id = ? AND target_kind = ? AND target_id = ?", userID, kind, targetID).
			First(&existing).Error
		switch {
		case err == nil && existing.Value == int(polarity):
			outcome = VoteNoop
			return nil

		case err == nil:
			// flip polarity, guarded on the old value so racing swaps
			// cannot both adjust counters
			res := tx.Model(&models.Vote{}).
				Where("id = ? AND value = ?", existing.ID, existing.Value).
				Update("value", int(polarity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				outcome = VoteNoop
				return nil
			}
			outcome = VoteSwapped
			if err := adjustScore(tx, target, targetID, int(polarity)-existing.Value); err != nil {
				return err
			}
			return applyVoteStats(tx, target, voteStatsDelta(kind, existing.Value, int(polarity)))

		case err == gorm.ErrRecordNotFound:
			// ON CONFLICT DO NOTHING makes a lost insert race a clean noop
			res := tx.Exec(`
				INSERT INTO votes (user_id, target_kind, target_id, value, created_at)
				VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
				ON CONFLICT (user_id, target_kind, target_id) DO NOTHING`,
				userID, kind, targetID, int(polarity),
			)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				outcome = VoteNoop
				return nil
			}
			outcome = VoteApplied
			if err := adjustScore(tx, target, targetID, int(polarity)); err != nil {
				return err
			}
			return applyVoteStats(tx, target, voteStatsDelta(kind, 0, int(polarity)))

		default:
			return err
		}
	})
	if err != nil {
		return "", err
	}
	observability.VoteOperations.WithLabelValues(string(kind), string(outcome)).Inc()
	return outcome, nil
}

func (r *voteRepository) Remove(ctx context.Context, userID uint, kind models.VoteTarget, targetID uint) (VoteOutcome, error) {
	outcome := VoteNoop
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		target, err := resolveVoteTarget(tx, kind, targetID)
		if err != nil {
			return err
		}

		var existing models.Vote
		err = tx.Where("user_id = ? AND target_kind = ? AND target_id = ?", userID, kind, targetID).
			First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			outcome = VoteNoop
			return nil
		}
		if err != nil {
			return err
		}

		res := tx.Where("id = ? AND value = ?", existing.ID, existing.Value).Delete(&models.Vote{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			outcome = VoteNoop
			return nil
		}
		outcome = VoteRemoved
		if err := adjustScore(tx, target, targetID, -existing.Value); err != nil {
			return err
		}
		return applyVoteStats(tx, target, voteStatsDelta(kind, existing.Value, 0))
	})
	if err != nil {
		return "", err
	}
	observability.VoteOperations.WithLabelValues(string(kind), string(outcome)).Inc()
	return outcome, nil
}

func applyVoteStats(tx *gorm.DB, target voteTarget, d statsDelta) error {
	if d == (statsDelta{}) || target.authorID == 0 {
		return nil
	}
	return applyStatsDelta(tx, target.authorID, d)
}

func (r *voteRepository) GetUserVote(ctx context.Context, userID uint, kind models.VoteTarget, targetID uint) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND target_kind = ? AND target_id = ?", userID, kind, targetID).
		First(&vote).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

var voteSort = query.Sortable{
	Columns: map[string]string{
		"createdAt": "created_at",
	},
	Default: "created_at desc",
}

func (r *voteRepository) ListForUser(ctx context.Context, userID uint, page query.PageRequest) ([]*models.Vote, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Vote{}).Where("user_id = ?", userID)

	var count int64
	if err := base.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var votes []*models.Vote
	if err := query.Paginate(base, page, voteSort).Find(&votes).Error; err != nil {
		return nil, 0, err
	}
	return votes, count, nil
}
