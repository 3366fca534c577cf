package scheduler

import (
	"log"
	"time"

	"github.com/mecha-board/mecha-board-backend/internal/services"
	"github.com/robfig/cron/v3"
)

// ScoreScheduler 定时从投票流水重算全部净得分
// 正常路径下每次投票都同步重算，这个调度器只兜底带外修改造成的漂移
type ScoreScheduler struct {
	cron        *cron.Cron
	voteService *services.VoteService
}

func NewScoreScheduler(voteService *services.VoteService) *ScoreScheduler {
	// 创建带有秒级精度的cron调度器
	c := cron.New(cron.WithSeconds())

	return &ScoreScheduler{
		cron:        c,
		voteService: voteService,
	}
}

// Start 启动得分校准调度器，每小时整点执行一次
func (s *ScoreScheduler) Start() error {
	_, err := s.cron.AddFunc("0 0 * * * *", s.sweepScores)
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("score scheduler started")
	return nil
}

// Stop 停止调度器
func (s *ScoreScheduler) Stop() {
	s.cron.Stop()
	log.Println("score scheduler stopped")
}

// GetNextRun 获取下次运行时间
func (s *ScoreScheduler) GetNextRun() []time.Time {
	entries := s.cron.Entries()
	var nextRuns []time.Time

	for _, entry := range entries {
		nextRuns = append(nextRuns, entry.Next)
	}

	return nextRuns
}

// sweepScores 全量校准一次净得分
func (s *ScoreScheduler) sweepScores() {
	log.Println("[SCORE SCHEDULER] Starting vote score sweep...")

	repaired, err := s.voteService.RecomputeAllScores()
	if err != nil {
		log.Printf("[SCORE SCHEDULER ERROR] Vote score sweep failed: %v", err)
		return
	}

	if repaired > 0 {
		log.Printf("[SCORE SCHEDULER] Repaired %d drifted vote scores", repaired)
	} else {
		log.Println("[SCORE SCHEDULER] All vote scores consistent")
	}
}
