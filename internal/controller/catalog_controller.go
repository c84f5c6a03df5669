package controller

import (
	"athena_backend/internal/service"
	"athena_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// CatalogController 处理学习目标目录的API请求

type CatalogController struct {
	CatalogService *service.CatalogService
}

func NewCatalogController(catalogService *service.CatalogService) *CatalogController {
	return &CatalogController{CatalogService: catalogService}
}

// @Summary 行动能力目录
// @Description 按调用者的教育条例列出行动能力、学习目标、标签与勾选历史；教练可用 student-id 查看学徒
// @Tags 目录
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param student-id query int false "学徒ID（仅教练）"
// @Success 200 {object} util.Response{data=[]service.CompetenceView}
// @Router /api/competences [get]
func (c *CatalogController) ListCompetences(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	studentID := util.MustParseUint(ctx.Query("student-id"))

	competences, err := c.CatalogService.ListCompetences(user, studentID)
	if err != nil {
		util.RejectOrFail(ctx, err)
		return
	}

	util.Success(ctx, competences)
}

// @Summary 切换待办标记
// @Description 学徒把学习目标标记/取消标记为待办；已完全掌握的学习目标会被拒绝
// @Tags 目录
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "学习目标ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "学习目标已完全掌握"
// @Router /api/learn-aims/{id}/todo [post]
func (c *CatalogController) ToggleTodo(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	learnAimID := util.MustParseUint(ctx.Param("id"))
	if learnAimID == 0 {
		util.BadRequest(ctx, "invalid learn aim id")
		return
	}

	marked, err := c.CatalogService.ToggleTodo(user.UserID, learnAimID)
	if err != nil {
		util.RejectOrFail(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"markedAsTodo": marked})
}
