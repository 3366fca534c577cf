package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mecha-board/mecha-board-backend/internal/models"
	"github.com/mecha-board/mecha-board-backend/internal/services"
	"github.com/mecha-board/mecha-board-backend/internal/utils"
)

// VoteHandler 封装投票相关的 HTTP 请求处理逻辑
type VoteHandler struct {
	voteService *services.VoteService
	newsService *services.NewsService
}

// NewVoteHandler 创建并返回一个新的 VoteHandler 实例
func NewVoteHandler(voteService *services.VoteService, newsService *services.NewsService) *VoteHandler {
	return &VoteHandler{
		voteService: voteService,
		newsService: newsService,
	}
}

// clientIP 尽力取请求方的客户端IP：
// 转发头的第一跳优先，否则退回传输层对端地址
func clientIP(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	return c.ClientIP()
}

// CastVote 投票；重复同向投票返回 changed=false，其余情况 changed=true
func (h *VoteHandler) CastVote(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		utils.BadRequest(c, "Invalid news item ID")
		return
	}

	var req models.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	changed, err := h.voteService.CastVote(uint(id), req.VoteType, clientIP(c), req.Source)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNewsItemNotFound):
			utils.NotFound(c, err.Error())
		case errors.Is(err, utils.ErrValidation):
			utils.BadRequest(c, err.Error())
		default:
			utils.InternalServerError(c, err.Error())
		}
		return
	}

	// 返回投票后的最新净得分
	item, err := h.newsService.GetNewsItemByID(uint(id))
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}

	utils.Success(c, gin.H{
		"changed":    changed,
		"vote_score": item.VoteScore,
	})
}

// GetVoteCounts 返回条目的分来源票数统计
func (h *VoteHandler) GetVoteCounts(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		utils.BadRequest(c, "Invalid news item ID")
		return
	}

	counts, err := h.voteService.GetVoteCounts(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNewsItemNotFound) {
			utils.NotFound(c, err.Error())
		} else {
			utils.InternalServerError(c, err.Error())
		}
		return
	}

	utils.Success(c, counts)
}
