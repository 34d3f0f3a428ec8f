package models

import "time"

// VoteTarget is the kind of entity a vote applies to.
type VoteTarget string

const (
	VoteTargetTopic  VoteTarget = "topic"
	VoteTargetPost   VoteTarget = "post"
	VoteTargetReply  VoteTarget = "reply"
	VoteTargetReview VoteTarget = "review"
)

// ValidVoteTarget reports whether kind names a supported vote target.
func ValidVoteTarget(kind VoteTarget) bool {
	switch kind {
	case VoteTargetTopic, VoteTargetPost, VoteTargetReply, VoteTargetReview:
		return true
	}
	return false
}

// VotePolarity is the direction of a vote: +1 or -1.
type VotePolarity int

const (
	Upvote   VotePolarity = 1
	Downvote VotePolarity = -1
)

// Vote records one user's vote on one target. The unique index over
// (user_id, target_kind, target_id) is what makes cast idempotent under
// concurrent inserts: a single row per user/target pair, with the signed
// value column carrying the polarity.
type Vote struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;uniqueIndex:idx_votes_user_target" json:"user_id"`
	TargetKind VoteTarget `gorm:"type:varchar(20);not null;uniqueIndex:idx_votes_user_target" json:"target_kind"`
	TargetID   uint       `gorm:"not null;uniqueIndex:idx_votes_user_target" json:"target_id"`
	Value      int        `gorm:"not null" json:"value"`
	CreatedAt  time.Time  `json:"created_at"`
}
