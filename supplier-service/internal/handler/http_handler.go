package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/weiawesome/supplyfinder/pkg/log"
	"github.com/weiawesome/supplyfinder/pkg/record"
	"github.com/weiawesome/supplyfinder/pkg/response"
	"github.com/weiawesome/supplyfinder/supplier-service/internal/service"
)

// StatusClientClosedRequest is the nginx convention for a request the
// caller abandoned before it was answered.
const StatusClientClosedRequest = 499

// Handler serves the admin HTTP routes over the lookup service.
type Handler struct {
	lookupService service.LookupService
}

// NewHandler creates a new HTTP handler.
func NewHandler(lookupService service.LookupService) *Handler {
	return &Handler{lookupService: lookupService}
}

// UpsertRecordRequest is the body of PUT /api/v1/records/:id.
type UpsertRecordRequest struct {
	URL      string `json:"url" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
}

// RegisterRoutes registers all routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	api := r.Group("/api/v1")
	{
		records := api.Group("/records")
		{
			records.GET("", h.ListRecords)
			records.GET("/:id", h.GetRecord)
			records.PUT("/:id", h.UpsertRecord)
		}
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "records": h.lookupService.RecordCount()})
}

func (h *Handler) ListRecords(c *gin.Context) {
	response.Success(c, h.lookupService.Records(c.Request.Context()))
}

func (h *Handler) GetRecord(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := parseID(c)
	if !ok {
		return
	}

	reply, err := h.lookupService.InquireRecord(ctx, id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if !reply.Found {
		response.NotFound(c, "record not found")
		return
	}

	response.Success(c, reply.Record)
}

func (h *Handler) UpsertRecord(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpsertRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("failed to bind upsert record request")
		response.BadRequest(c, err.Error())
		return
	}

	rec := record.Record{ID: id, URL: req.URL, Name: req.Name, Location: req.Location}
	if err := h.lookupService.UpsertRecord(ctx, rec); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, rec)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, record.ErrInvalidArgument):
		response.BadRequest(c, err.Error())
	case errors.Is(err, record.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, record.ErrCanceled):
		response.Error(c, StatusClientClosedRequest, "CANCELED", err.Error())
	default:
		l := log.Ctx(c.Request.Context())
		l.Error().Err(err).Msg("record request failed")
		response.InternalError(c, "internal error")
	}
}

func parseID(c *gin.Context) (uint32, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "id must be a positive 32-bit integer")
		return 0, false
	}
	return uint32(id), true
}
