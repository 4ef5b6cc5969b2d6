package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/2063ti/flugede-gadgets-store/internal/http/response"
	"github.com/2063ti/flugede-gadgets-store/internal/repository"
	"github.com/2063ti/flugede-gadgets-store/internal/service"

	"github.com/gin-gonic/gin"
)

// ListReturns lists return requests.
func (h *Handler) ListReturns(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	requests, total, err := h.ReturnService.ListReturns(repository.ReturnListFilter{
		Status:   strings.TrimSpace(c.Query("status")),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "return list failed", err)
		return
	}
	response.SuccessWithPage(c, requests, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// ReviewReturnRequest is the staff decision payload.
type ReviewReturnRequest struct {
	Status    string `json:"status" binding:"required"`
	AdminNote string `json:"admin_note"`
}

// ReviewReturn approves, rejects or completes a return request.
func (h *Handler) ReviewReturn(c *gin.Context) {
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || requestID == 0 {
		respondError(c, response.CodeBadRequest, "invalid return request id", nil)
		return
	}
	var req ReviewReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	request, err := h.ReturnService.ReviewReturn(service.ReviewReturnInput{
		RequestID: uint(requestID),
		Status:    req.Status,
		AdminNote: req.AdminNote,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReturnNotFound):
			respondError(c, response.CodeNotFound, "return request not found", nil)
		case errors.Is(err, service.ErrReturnStatusInvalid):
			respondError(c, response.CodeBadRequest, "return status not allowed", nil)
		default:
			respondError(c, response.CodeInternal, "return review failed", err)
		}
		return
	}
	response.Success(c, request)
}
