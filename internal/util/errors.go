package util

import "errors"

// 业务校验错误，全部作为类型化结果返回给调用方，不触发日志与重试
var (
	ErrStageMustStartAtOne     = errors.New("learn aim stage can't start higher than one")
	ErrPriorStageNotApproved   = errors.New("previous learn check is not approved yet")
	ErrStageAlreadyChecked     = errors.New("learn aim is already checked at this stage")
	ErrSemesterRegression      = errors.New("semester can't be lower than a previous checked learn aim")
	ErrAlreadyApproved         = errors.New("learn check is already approved")
	ErrNotOwner                = errors.New("learn check does not belong to this trainee")
	ErrNotInEducationOrdinance = errors.New("learn aim is not part of the education ordinance")
	ErrLearnAimCompleted       = errors.New("learn aim is fully completed and cannot be modified")

	ErrUserNotFound        = errors.New("user not found")
	ErrLearnAimNotFound    = errors.New("learn aim not found")
	ErrCompetenceNotFound  = errors.New("action competence not found")
	ErrCheckNotFound       = errors.New("learn check not found")
	ErrNoOrdinance         = errors.New("user has no education ordinance assigned")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)
