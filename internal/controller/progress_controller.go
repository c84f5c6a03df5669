package controller

import (
	"athena_backend/internal/service"
	"athena_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ProgressController 处理完成度汇总的API请求

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// @Summary 单个行动能力的完成度
// @Description 统计调用者在该行动能力下已完结（第3阶段已审批）的学习目标数量
// @Tags 进度
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "行动能力ID"
// @Success 200 {object} util.Response{data=model.CompetenceProgress}
// @Failure 403 {object} util.Response "不属于调用者的教育条例"
// @Router /api/competences/{id}/chart [get]
func (c *ProgressController) CompetenceChart(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	competenceID := util.MustParseUint(ctx.Param("id"))
	if competenceID == 0 {
		util.BadRequest(ctx, "invalid competence id")
		return
	}

	progress, err := c.ProgressService.CompetenceProgress(user.UserID, user.OrdinanceID, competenceID)
	if err != nil {
		util.RejectOrFail(ctx, err)
		return
	}

	util.Success(ctx, progress)
}

// @Summary 全部行动能力的完成度
// @Description 调用者条例下全部行动能力的 {closed, total}，供仪表盘绘图
// @Tags 进度
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.CompetenceProgress}
// @Router /api/progress [get]
func (c *ProgressController) Chart(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	rows, err := c.ProgressService.Chart(user.UserID, user.OrdinanceID)
	if err != nil {
		util.RejectOrFail(ctx, err)
		return
	}

	util.Success(ctx, rows)
}
