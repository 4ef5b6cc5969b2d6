package admin

import (
	"strconv"

	"github.com/2063ti/flugede-gadgets-store/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListContactMessages returns the contact inbox.
func (h *Handler) ListContactMessages(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	onlyUnread := c.Query("unread") == "true"
	messages, total, err := h.EngagementService.ListContactMessages(onlyUnread, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "message list failed", err)
		return
	}
	response.SuccessWithPage(c, messages, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// MarkContactRead flags a message as handled.
func (h *Handler) MarkContactRead(c *gin.Context) {
	messageID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || messageID == 0 {
		respondError(c, response.CodeBadRequest, "invalid message id", nil)
		return
	}
	if err := h.EngagementService.MarkContactRead(uint(messageID)); err != nil {
		respondError(c, response.CodeInternal, "message update failed", err)
		return
	}
	response.Success(c, gin.H{"updated": true})
}
