package controller

import (
	"athena_backend/internal/service"
	"athena_backend/internal/util"
	"athena_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

// CheckController 处理勾选记录的API请求

type CheckController struct {
	CheckService *service.CheckService
}

func NewCheckController(checkService *service.CheckService) *CheckController {
	return &CheckController{CheckService: checkService}
}

// @Summary 提交勾选
// @Description 学徒为某个学习目标的某个阶段提交勾选，成功后待教练审批
// @Tags 勾选
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param check body service.SubmitCheckRequest true "勾选内容"
// @Success 201 {object} util.Response{data=model.LearnAimCheck}
// @Failure 403 {object} util.Response "进阶规则拒绝"
// @Failure 409 {object} util.Response "阶段已勾选"
// @Router /api/checks [post]
func (c *CheckController) SubmitCheck(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitCheckRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	check, err := c.CheckService.SubmitCheck(user.UserID, user.OrdinanceID, req)
	if err != nil {
		util.RejectOrFail(ctx, err)
		return
	}

	util.Created(ctx, check)
}

// @Summary 更新勾选
// @Description 学徒编辑自己的待审批勾选
// @Tags 勾选
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "勾选ID"
// @Param check body service.ReviseCheckRequest true "新的勾选内容"
// @Success 200 {object} util.Response{data=model.LearnAimCheck}
// @Failure 403 {object} util.Response "非本人或学期回退"
// @Failure 409 {object} util.Response "已审批不可修改"
// @Router /api/checks/{id} [put]
func (c *CheckController) ReviseCheck(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	checkID := util.MustParseUint(ctx.Param("id"))
	if checkID == 0 {
		util.BadRequest(ctx, "invalid check id")
		return
	}

	var req service.ReviseCheckRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	check, err := c.CheckService.ReviseCheck(user.UserID, user.OrdinanceID, checkID, req)
	if err != nil {
		util.RejectOrFail(ctx, err)
		return
	}

	util.Success(ctx, check)
}

// @Summary 撤回勾选
// @Description 学徒删除自己的待审批勾选；已审批的不可撤回
// @Tags 勾选
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "勾选ID"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "已审批不可删除"
// @Router /api/checks/{id} [delete]
func (c *CheckController) WithdrawCheck(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	checkID := util.MustParseUint(ctx.Param("id"))
	if checkID == 0 {
		util.BadRequest(ctx, "invalid check id")
		return
	}

	if err := c.CheckService.Decline(user.UserID, user.Role, checkID); err != nil {
		util.RejectOrFail(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"detail": "learn check deleted successfully"})
}

// @Summary 审批勾选
// @Description 教练把待审批勾选置为已审批；重复审批报冲突
// @Tags 勾选
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "勾选ID"
// @Success 200 {object} util.Response{data=model.LearnAimCheck}
// @Failure 409 {object} util.Response "已审批"
// @Router /api/checks/{id}/approve [patch]
func (c *CheckController) ApproveCheck(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	checkID := util.MustParseUint(ctx.Param("id"))
	if checkID == 0 {
		util.BadRequest(ctx, "invalid check id")
		return
	}

	check, err := c.CheckService.Approve(user.UserID, user.Role, checkID)
	if err != nil {
		monitoring.CheckDecisions.WithLabelValues("approve", "rejected").Inc()
		util.RejectOrFail(ctx, err)
		return
	}

	monitoring.CheckDecisions.WithLabelValues("approve", "ok").Inc()
	util.Success(ctx, check)
}

// @Summary 拒绝勾选
// @Description 教练删除一条待审批勾选；已审批的不可拒绝
// @Tags 勾选
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "勾选ID"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "已审批"
// @Router /api/checks/{id}/decline [delete]
func (c *CheckController) DeclineCheck(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	checkID := util.MustParseUint(ctx.Param("id"))
	if checkID == 0 {
		util.BadRequest(ctx, "invalid check id")
		return
	}

	if err := c.CheckService.Decline(user.UserID, user.Role, checkID); err != nil {
		monitoring.CheckDecisions.WithLabelValues("decline", "rejected").Inc()
		util.RejectOrFail(ctx, err)
		return
	}

	monitoring.CheckDecisions.WithLabelValues("decline", "ok").Inc()
	util.Success(ctx, gin.H{"detail": "learn check declined"})
}

// @Summary 学徒的勾选列表
// @Description 教练查看某个学徒的全部勾选记录
// @Tags 勾选
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "学徒ID"
// @Success 200 {object} util.Response{data=[]model.LearnAimCheck}
// @Router /api/trainees/{id}/checks [get]
func (c *CheckController) ChecksForTrainee(ctx *gin.Context) {
	traineeID := util.MustParseUint(ctx.Param("id"))
	if traineeID == 0 {
		util.BadRequest(ctx, "invalid trainee id")
		return
	}

	checks, err := c.CheckService.ChecksForTrainee(traineeID)
	if err != nil {
		util.RejectOrFail(ctx, err)
		return
	}

	util.Success(ctx, checks)
}
