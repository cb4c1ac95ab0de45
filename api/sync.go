package api

import (
	"errors"
	"net/http"
	"time"

	"suito/models"
	"suito/service"

	"github.com/gin-gonic/gin"
)

// SyncHandler 同步协议处理器
type SyncHandler struct {
	svc        *service.LedgerService
	serverName string
}

// NewSyncHandler 创建同步处理器，serverName 为 /api/ping 返回的服务器标识
func NewSyncHandler(svc *service.LedgerService, serverName string) *SyncHandler {
	return &SyncHandler{svc: svc, serverName: serverName}
}

// Ping 健康检查
// @Summary 健康检查
// @Description 局域网探测与连接测试使用，返回固定的服务器标识
// @Tags 同步
// @Produce json
// @Success 200 {object} models.PingResponse
// @Router /api/ping [get]
func (h *SyncHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, models.PingResponse{
		Status:    "ok",
		Server:    h.serverName,
		Timestamp: time.Now().UTC(),
	})
}

// Pull 获取服务端完整数据集
// @Summary 拉取数据
// @Description 只读获取服务端当前的全部每日记录与交易
// @Tags 同步
// @Produce json
// @Success 200 {object} models.SnapshotResponse
// @Failure 500 {object} Response
// @Router /api/sync [get]
func (h *SyncHandler) Pull(c *gin.Context) {
	ledger, serverTime, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		InternalError(c, err, "读取数据失败")
		return
	}
	c.JSON(http.StatusOK, models.SnapshotResponse{
		DailyRecords: ledger.DailyRecords,
		Transactions: ledger.Transactions,
		ServerTime:   serverTime,
	})
}

// Push 合并客户端数据
// @Summary 同步（合并）
// @Description 客户端推送完整本地数据集，服务端按 createdAt 后写者胜合并并返回合并后的完整数据集
// @Tags 同步
// @Accept json
// @Produce json
// @Param request body models.Ledger true "客户端完整数据集"
// @Success 200 {object} models.SyncResponse
// @Failure 400 {object} Response "数据格式错误"
// @Failure 413 {object} Response "请求体过大"
// @Failure 500 {object} Response
// @Router /api/sync [post]
func (h *SyncHandler) Push(c *gin.Context) {
	var req models.Ledger
	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}
	out, err := h.svc.Sync(c.Request.Context(), req)
	if errors.Is(err, service.ErrValidation) {
		BadRequest(c, err.Error())
		return
	}
	if err != nil {
		InternalError(c, err, "同步失败")
		return
	}
	c.JSON(http.StatusOK, out.Response())
}

// Import 导入备份（初次引导用）
// @Summary 导入
// @Description 用快照整体覆盖服务端数据，不做合并比较
// @Tags 管理
// @Accept json
// @Produce json
// @Param request body models.ImportRequest true "快照"
// @Success 200 {object} models.ImportResponse
// @Failure 400 {object} Response
// @Failure 500 {object} Response
// @Router /api/import [post]
func (h *SyncHandler) Import(c *gin.Context) {
	var req models.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}
	resp, err := h.svc.Import(c.Request.Context(), req.Ledger())
	if errors.Is(err, service.ErrValidation) {
		BadRequest(c, err.Error())
		return
	}
	if err != nil {
		InternalError(c, err, "导入失败")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AdminSave 管理端直接保存
// @Summary 管理端保存
// @Description 管理页面编辑后的数据直接保存（排序后整体覆盖，不打时间戳）
// @Tags 管理
// @Accept json
// @Produce json
// @Param request body models.Ledger true "完整数据集"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} Response
// @Failure 500 {object} Response
// @Router /api/admin/save [post]
func (h *SyncHandler) AdminSave(c *gin.Context) {
	var req models.Ledger
	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}
	err := h.svc.AdminSave(c.Request.Context(), req)
	if errors.Is(err, service.ErrValidation) {
		BadRequest(c, err.Error())
		return
	}
	if err != nil {
		InternalError(c, err, "保存失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "数据已保存",
	})
}
