package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mecha-board/mecha-board-backend/internal/models"
	"github.com/mecha-board/mecha-board-backend/internal/utils"
	"gorm.io/gorm"
)

// VoteService 封装投票流水的记账逻辑：
// 去重、覆盖式改票、以及净得分的全量重算
type VoteService struct {
	db *gorm.DB

	// 按条目ID维度的互斥锁
	// 嵌入式后端没有可移植的行级锁，投票的读改写序列靠它串行化
	mu        sync.Mutex
	itemLocks map[uint]*sync.Mutex
}

// NewVoteService 创建并返回一个新的 VoteService 实例
func NewVoteService(db *gorm.DB) *VoteService {
	return &VoteService{
		db:        db,
		itemLocks: make(map[uint]*sync.Mutex),
	}
}

func (s *VoteService) lockItem(newsItemID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.itemLocks[newsItemID]
	if !ok {
		lock = &sync.Mutex{}
		s.itemLocks[newsItemID] = lock
	}
	return lock
}

// CastVote 记录一次投票，返回状态是否发生变更
//   - 同一 (条目, IP, 来源) 的重复同向投票不产生任何变更，返回 false
//   - 反向投票覆盖原记录并刷新投票时间，不新增行
//   - 首次投票新增记录
//
// 任何状态变更后都在同一事务内从投票流水全量重算 vote_score，
// 不做增量加减，历史上的任何计数漂移会被顺带修正
func (s *VoteService) CastVote(newsItemID uint, voteType models.VoteType, voterIP string, source models.VoteSource) (bool, error) {
	if s.db == nil {
		return false, errors.New("database connection not initialized")
	}
	if !voteType.Valid() {
		return false, fmt.Errorf("%w: invalid vote type: %s", utils.ErrValidation, voteType)
	}
	if source == "" {
		source = models.VoteSourceHuman
	}
	if !source.Valid() {
		return false, fmt.Errorf("%w: invalid vote source: %s", utils.ErrValidation, source)
	}

	lock := s.lockItem(newsItemID)
	lock.Lock()
	defer lock.Unlock()

	changed := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item models.NewsItem
		if err := tx.First(&item, newsItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNewsItemNotFound
			}
			return fmt.Errorf("failed to find news item: %w", err)
		}

		var existing models.Vote
		err := tx.Where("news_item_id = ? AND voter_ip = ? AND vote_source = ?",
			newsItemID, voterIP, source).First(&existing).Error
		switch {
		case err == nil:
			if existing.VoteType == voteType {
				// 同向重复投票，保持原状
				return nil
			}
			existing.VoteType = voteType
			existing.CreatedAt = time.Now()
			if err := tx.Save(&existing).Error; err != nil {
				return fmt.Errorf("failed to update vote: %w", err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			vote := models.Vote{
				NewsItemID: newsItemID,
				VoteType:   voteType,
				VoterIP:    voterIP,
				VoteSource: source,
			}
			if err := tx.Create(&vote).Error; err != nil {
				return fmt.Errorf("failed to create vote: %w", err)
			}
		default:
			return fmt.Errorf("failed to check existing vote: %w", err)
		}

		changed = true
		return recomputeScore(tx, newsItemID)
	})
	if err != nil {
		return false, err
	}
	return changed, nil
}

// recomputeScore 从投票流水重新推导净得分并写回条目
func recomputeScore(tx *gorm.DB, newsItemID uint) error {
	score, err := deriveScore(tx, newsItemID)
	if err != nil {
		return err
	}
	if err := tx.Model(&models.NewsItem{}).Where("id = ?", newsItemID).
		UpdateColumn("vote_score", score).Error; err != nil {
		return fmt.Errorf("failed to update vote score: %w", err)
	}
	return nil
}

// deriveScore 跨全部投票来源合计：赞成票计 +1，反对票计 −1
func deriveScore(tx *gorm.DB, newsItemID uint) (int, error) {
	var score int
	err := tx.Model(&models.Vote{}).
		Where("news_item_id = ?", newsItemID).
		Select("COALESCE(SUM(CASE WHEN vote_type = 'up' THEN 1 ELSE -1 END), 0)").
		Scan(&score).Error
	if err != nil {
		return 0, fmt.Errorf("failed to derive vote score: %w", err)
	}
	return score, nil
}

// GetVoteCounts 返回条目的分来源票数统计，无记录的维度为0
func (s *VoteService) GetVoteCounts(newsItemID uint) (*models.VoteCounts, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	if err := s.db.First(&models.NewsItem{}, newsItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNewsItemNotFound
		}
		return nil, fmt.Errorf("failed to find news item: %w", err)
	}

	type countRow struct {
		VoteSource models.VoteSource
		VoteType   models.VoteType
		Count      int64
	}
	var rows []countRow
	if err := s.db.Model(&models.Vote{}).
		Select("vote_source, vote_type, COUNT(*) AS count").
		Where("news_item_id = ?", newsItemID).
		Group("vote_source").Group("vote_type").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get vote counts: %w", err)
	}

	counts := &models.VoteCounts{}
	for _, r := range rows {
		switch {
		case r.VoteSource == models.VoteSourceHuman && r.VoteType == models.VoteTypeUp:
			counts.HumanUpvotes = r.Count
		case r.VoteSource == models.VoteSourceHuman && r.VoteType == models.VoteTypeDown:
			counts.HumanDownvotes = r.Count
		case r.VoteSource == models.VoteSourceMachine && r.VoteType == models.VoteTypeUp:
			counts.MachineUpvotes = r.Count
		case r.VoteSource == models.VoteSourceMachine && r.VoteType == models.VoteTypeDown:
			counts.MachineDownvotes = r.Count
		}
	}
	return counts, nil
}

// RecomputeAllScores 全表重算每个条目的净得分，返回被修正的条目数
// 正常路径下每次投票都同步重算，这里只兜底绕过服务层的带外修改
func (s *VoteService) RecomputeAllScores() (int, error) {
	if s.db == nil {
		return 0, errors.New("database connection not initialized")
	}

	var items []models.NewsItem
	if err := s.db.Find(&items).Error; err != nil {
		return 0, fmt.Errorf("failed to list news items: %w", err)
	}

	repaired := 0
	for _, item := range items {
		lock := s.lockItem(item.ID)
		lock.Lock()
		err := s.db.Transaction(func(tx *gorm.DB) error {
			score, err := deriveScore(tx, item.ID)
			if err != nil {
				return err
			}
			if score == item.VoteScore {
				return nil
			}
			repaired++
			return tx.Model(&models.NewsItem{}).Where("id = ?", item.ID).
				UpdateColumn("vote_score", score).Error
		})
		lock.Unlock()
		if err != nil {
			return repaired, fmt.Errorf("failed to recompute score for item %d: %w", item.ID, err)
		}
	}
	return repaired, nil
}
