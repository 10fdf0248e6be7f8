package controller

import (
	"strconv"

	"pilates_diario_backend/internal/service"
	"pilates_diario_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RankingController struct {
	RankingService *service.RankingService
}

func NewRankingController(rankingService *service.RankingService) *RankingController {
	return &RankingController{RankingService: rankingService}
}

// Top godoc
// @Summary Leaderboard
// @Description Top ranked members by points plus the caller's own position
// @Tags ranking
// @Produce  json
// @Security ApiKeyAuth
// @Param   limit query int false "Max entries (clamped to the configured cap)"
// @Success 200 {object} util.Response{data=object}
// @Router /api/ranking [get]
func (c *RankingController) Top(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	entries, err := c.RankingService.Top(ctx.Request.Context(), limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	me, err := c.RankingService.ForUser(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"ranking": entries,
		"me":      me,
	})
}

// Me godoc
// @Summary Own ranking position
// @Description The caller's entry in the full ranking, or null before any points
// @Tags ranking
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.RankingEntry}
// @Router /api/ranking/me [get]
func (c *RankingController) Me(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	entry, err := c.RankingService.ForUser(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, entry)
}
