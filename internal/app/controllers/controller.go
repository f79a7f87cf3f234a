package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/abimath/internal/app/models"
	"github.com/yigit/abimath/internal/app/models/dto"
	"github.com/yigit/abimath/internal/middleware"
	"github.com/yigit/abimath/internal/pkg/apperrors"
	"github.com/yigit/abimath/internal/pkg/export"
	"github.com/yigit/abimath/internal/pkg/logger"
)

// parseID reads the :id path parameter. On failure the 400 response has
// already been written.
func parseID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("The id must be a positive integer."))
		return 0, false
	}
	return id, true
}

// audit starts an info event for a completed change, tagged with the token
// subject. Routes served without auth are logged as "anonymous".
func audit(ctx *gin.Context) *zerolog.Event {
	actor := "anonymous"
	if claims, ok := middleware.ClaimsFromContext(ctx); ok && claims.Subject != "" {
		actor = claims.Subject
	}
	return logger.Info().
		Str("actor", actor).
		Str("requestID", middleware.GetRequestID(ctx))
}

func writeWorkbook(ctx *gin.Context, filename, title string, set models.ResultSet) {
	var buf bytes.Buffer
	if err := export.WriteResults(&buf, title, set); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

// HealthController serves liveness endpoints
type HealthController struct{}

// NewHealthController creates a new HealthController
func NewHealthController() *HealthController {
	return &HealthController{}
}

// Index godoc
// @Summary Welcome text
// @Description Checks that the web server is responding
// @Tags health
// @Produce plain
// @Success 200 {string} string "Welcome to AbiMath"
// @Router / [get]
func (h *HealthController) Index(ctx *gin.Context) {
	ctx.String(http.StatusOK, "Welcome to AbiMath\n")
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.HealthResponse{Success: true, Status: "ok"})
}
