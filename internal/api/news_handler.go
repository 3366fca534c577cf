package api

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mecha-board/mecha-board-backend/internal/models"
	"github.com/mecha-board/mecha-board-backend/internal/services"
	"github.com/mecha-board/mecha-board-backend/internal/utils"
)

// NewsHandler 封装新闻条目相关的 HTTP 请求处理逻辑
type NewsHandler struct {
	newsService *services.NewsService
}

// NewNewsHandler 创建并返回一个新的 NewsHandler 实例
func NewNewsHandler(newsService *services.NewsService) *NewsHandler {
	return &NewsHandler{newsService: newsService}
}

func (h *NewsHandler) CreateNews(c *gin.Context) {
	var req models.NewsItemCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	item, err := h.newsService.CreateNews(&req)
	if err != nil {
		if errors.Is(err, utils.ErrValidation) {
			utils.BadRequest(c, err.Error())
		} else {
			utils.InternalServerError(c, err.Error())
		}
		return
	}

	utils.Created(c, item.ToResponse())
}

// GetNewsItems 按 sort 查询参数返回列表，缺省为 classic 排序
func (h *NewsHandler) GetNewsItems(c *gin.Context) {
	mode := models.SortMode(c.DefaultQuery("sort", string(models.SortModeClassic)))
	if !mode.Valid() {
		utils.BadRequest(c, "Invalid sort mode: "+string(mode))
		return
	}

	items, err := h.newsService.GetNewsItems(mode)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}

	responses := make([]models.NewsItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, item.ToResponse())
	}

	utils.Success(c, responses)
}

func (h *NewsHandler) GetNewsItemByID(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		utils.BadRequest(c, "Invalid news item ID")
		return
	}

	item, err := h.newsService.GetNewsItemByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNewsItemNotFound) {
			utils.NotFound(c, err.Error())
		} else {
			utils.InternalServerError(c, err.Error())
		}
		return
	}

	utils.Success(c, item.ToResponse())
}
