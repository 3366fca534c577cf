package models

import (
	"time"
)

// VoteType 投票方向枚举
type VoteType string

const (
	VoteTypeUp   VoteType = "up"
	VoteTypeDown VoteType = "down"
)

func (t VoteType) Valid() bool {
	return t == VoteTypeUp || t == VoteTypeDown
}

// VoteSource 投票来源枚举，区分浏览器用户和程序化客户端
type VoteSource string

const (
	VoteSourceHuman   VoteSource = "human"
	VoteSourceMachine VoteSource = "machine"
)

func (s VoteSource) Valid() bool {
	return s == VoteSourceHuman || s == VoteSourceMachine
}

// Vote 投票流水记录
// 同一 (news_item_id, voter_ip, vote_source) 三元组至多一行，
// 后续同三元组的投票覆盖 vote_type 并刷新 created_at，不新增行
type Vote struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	NewsItemID uint       `json:"news_item_id" gorm:"not null;index;uniqueIndex:idx_votes_identity,priority:1"`
	VoteType   VoteType   `json:"vote_type" gorm:"type:varchar(10);not null;check:vote_type IN ('up','down')"`
	VoterIP    string     `json:"voter_ip" gorm:"type:varchar(45);not null;uniqueIndex:idx_votes_identity,priority:2"`
	VoteSource VoteSource `json:"vote_source" gorm:"type:varchar(10);not null;default:'human';check:vote_source IN ('human','machine');uniqueIndex:idx_votes_identity,priority:3"`
	CreatedAt  time.Time  `json:"created_at"`
}

// TableName 为 Vote 模型指定数据库表名
func (Vote) TableName() string {
	return "votes"
}

// VoteRequest 用于投票时的请求体
type VoteRequest struct {
	VoteType VoteType   `json:"vote_type" binding:"required,oneof=up down"`
	Source   VoteSource `json:"source" binding:"omitempty,oneof=human machine"`
}

// VoteCounts 单个条目的分来源票数统计，无记录的维度为0
type VoteCounts struct {
	HumanUpvotes     int64 `json:"human_upvotes"`
	HumanDownvotes   int64 `json:"human_downvotes"`
	MachineUpvotes   int64 `json:"machine_upvotes"`
	MachineDownvotes int64 `json:"machine_downvotes"`
}
