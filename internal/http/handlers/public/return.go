package public

import (
	"strconv"

	"github.com/2063ti/flugede-gadgets-store/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ReturnRequestPayload opens a return for one order item.
type ReturnRequestPayload struct {
	OrderItemID uint   `json:"order_item_id" binding:"required"`
	Reason      string `json:"reason" binding:"required"`
}

// RequestReturn opens a return for a delivered item.
func (h *Handler) RequestReturn(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req ReturnRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	request, err := h.ReturnService.RequestReturn(uid, req.OrderItemID, req.Reason)
	if err != nil {
		respondReturnError(c, err)
		return
	}
	response.Success(c, request)
}

// GetReturns lists the user's return requests.
func (h *Handler) GetReturns(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	requests, total, err := h.ReturnService.ListUserReturns(uid, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "return list failed", err)
		return
	}
	totalPage := (total + int64(pageSize) - 1) / int64(pageSize)
	response.SuccessWithPage(c, requests, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}
