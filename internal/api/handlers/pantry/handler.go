package pantry

import (
	"errors"
	"net/http"

	"pantry-engine/internal/core/planner"
	"pantry-engine/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 庫存對帳 API 處理程序
type Handler struct {
	service *planner.Service
	debug   bool
}

// NewHandler 創建新的處理程序
func NewHandler(service *planner.Service, debug bool) *Handler {
	return &Handler{
		service: service,
		debug:   debug,
	}
}

// Register 註冊 /pantry 路由，consume 額外套用去重中間件
func (h *Handler) Register(group *gin.RouterGroup, consumeGuards ...gin.HandlerFunc) {
	group.POST("/availability", h.HandleAvailability)
	group.POST("/shopping-list", h.HandleShoppingList)
	group.POST("/consume", append(consumeGuards, h.HandleConsume)...)
	group.POST("/rank", h.HandleRank)
	group.POST("/cost", h.HandleCost)
	group.GET("/units", h.HandleUnits)
}

// HandleAvailability 檢查食譜需求的庫存可用量
func (h *Handler) HandleAvailability(c *gin.Context) {
	var req planner.AvailabilityRequest
	if !h.bind(c, &req) {
		return
	}
	resp, err := h.service.CheckAvailability(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleShoppingList 產生購物清單
func (h *Handler) HandleShoppingList(c *gin.Context) {
	var req planner.ShoppingListRequest
	if !h.bind(c, &req) {
		return
	}
	resp, err := h.service.GenerateShoppingList(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleConsume 烹飪後扣除庫存
func (h *Handler) HandleConsume(c *gin.Context) {
	var req planner.ConsumeRequest
	if !h.bind(c, &req) {
		return
	}
	resp, err := h.service.Consume(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleRank 依庫存排序候選食譜
func (h *Handler) HandleRank(c *gin.Context) {
	var req planner.RankRequest
	if !h.bind(c, &req) {
		return
	}
	resp, err := h.service.RankRecipes(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleCost 估算食譜成本
func (h *Handler) HandleCost(c *gin.Context) {
	var req planner.CostRequest
	if !h.bind(c, &req) {
		return
	}
	resp, err := h.service.EstimateCost(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleUnits 列出單位詞彙、換算規則與備用價格
func (h *Handler) HandleUnits(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Units())
}

// bind 解析請求內容，失敗時直接寫入錯誤回應
func (h *Handler) bind(c *gin.Context, v interface{}) bool {
	err := common.DecodeJSONStrict(c.Request.Body, v)
	if err == nil {
		return true
	}

	common.LogWarn("請求格式無效",
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", requestid.Get(c)),
	)

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, common.ErrorResponse{
			Code:    common.ErrCodeTooLarge,
			Message: "請求內容過大",
		})
		return false
	}

	resp := common.ErrorResponse{
		Code:    common.ErrCodeInvalidRequest,
		Message: "Invalid request format",
	}
	if h.debug {
		resp.Details = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, resp)
	return false
}

func (h *Handler) fail(c *gin.Context, err error) {
	status, resp := common.ToResponse(err, h.debug)
	if status >= http.StatusInternalServerError {
		common.LogError("請求處理失敗",
			zap.Error(err),
			zap.String("request_id", requestid.Get(c)),
		)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, resp)
}
