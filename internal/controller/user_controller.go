package controller

import (
	"athena_backend/internal/service"
	"athena_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

// UserController 处理用户资料相关的HTTP请求
type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// @Summary 获取个人资料
// @Description 获取当前登录用户的资料
// @Tags 用户
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	profile, err := c.UserService.Profile(user.UserID)
	if err != nil {
		util.RejectOrFail(ctx, err)
		return
	}

	util.Success(ctx, profile)
}

// @Summary 更新个人资料
// @Description 更新当前登录用户的姓名
// @Tags 用户
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param profile body service.UpdateProfileRequest true "资料"
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	profile, err := c.UserService.UpdateProfile(user.UserID, req)
	if err != nil {
		util.RejectOrFail(ctx, err)
		return
	}

	util.Success(ctx, profile)
}

// @Summary 上传头像
// @Description 上传头像图片到对象存储并更新资料
// @Tags 用户
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "头像图片"
// @Success 200 {object} util.Response
// @Router /api/profile/avatar [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	if fileHeader.Size > util.MaxAvatarSize {
		util.BadRequest(ctx, "file too large")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, util.MimeImage) {
		util.BadRequest(ctx, "only image uploads are allowed")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	url, err := c.UserService.UploadAvatar(ctx.Request.Context(), user.UserID, fileHeader.Filename, file, fileHeader.Size, contentType)
	if err != nil {
		util.RejectOrFail(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"avatar": url})
}

// @Summary 学徒名册
// @Description 教练获取分配给自己的学徒列表
// @Tags 用户
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.User}
// @Router /api/trainees [get]
func (c *UserController) GetTrainees(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	trainees, err := c.UserService.Trainees(user.UserID)
	if err != nil {
		util.RejectOrFail(ctx, err)
		return
	}

	util.Success(ctx, trainees)
}
