package code

// 错误码消息映射
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:         "成功",
	ErrUnknown:         "未知错误",
	ErrBind:            "请求参数绑定错误",
	ErrValidation:      "请求参数验证错误",
	ErrTokenInvalid:    "无效的认证令牌",
	ErrTooManyRequests: "请求频率过高",

	// 用户相关错误码
	ErrUserNotFound:          "用户不存在",
	ErrUserAlreadyExist:      "用户已存在",
	ErrUserPasswordIncorrect: "用户密码错误",
	ErrUserInactive:          "用户已被停用",

	// 工位相关错误码
	ErrDeskNotFound:      "工位不存在",
	ErrDeskAlreadyExist:  "工位编号已存在",
	ErrDeskUnavailable:   "工位状态不允许分配",
	ErrDeskConflict:      "工位在请求时段已被占用",
	ErrDeskNumberInvalid: "工位编号格式不合法",
	ErrDeskStatusInvalid: "工位状态不合法",

	// 员工相关错误码
	ErrEmployeeNotFound:     "员工不存在",
	ErrEmployeeAlreadyExist: "员工编号已存在",
	ErrDepartmentConfig:     "员工部门配置缺失或不一致",

	// 申请相关错误码
	ErrRequestNotFound:  "工位申请不存在",
	ErrInvalidDateRange: "日期区间不合法",
	ErrInvalidShift:     "班次不合法",

	// 楼层/部门配置错误码
	ErrFloorNotFound:      "楼层不存在",
	ErrFloorAlreadyExist:  "楼层编号已存在",
	ErrDepartmentNotFound: "部门不存在",
	ErrFloorOccupied:      "楼层已绑定其他部门",

	// 数据库相关错误码
	ErrDatabase:       "数据库错误",
	ErrRecordNotFound: "记录不存在",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTokenInvalid:    StatusUnauthorized,
	ErrTooManyRequests: StatusTooManyRequests,

	// 用户相关错误码
	ErrUserNotFound:          StatusNotFound,
	ErrUserAlreadyExist:      StatusBadRequest,
	ErrUserPasswordIncorrect: StatusUnauthorized,
	ErrUserInactive:          StatusForbidden,

	// 工位相关错误码
	ErrDeskNotFound:      StatusNotFound,
	ErrDeskAlreadyExist:  StatusBadRequest,
	ErrDeskUnavailable:   StatusBadRequest,
	ErrDeskConflict:      StatusConflict,
	ErrDeskNumberInvalid: StatusBadRequest,
	ErrDeskStatusInvalid: StatusBadRequest,

	// 员工相关错误码
	ErrEmployeeNotFound:     StatusNotFound,
	ErrEmployeeAlreadyExist: StatusBadRequest,
	ErrDepartmentConfig:     StatusBadRequest,

	// 申请相关错误码
	ErrRequestNotFound:  StatusNotFound,
	ErrInvalidDateRange: StatusBadRequest,
	ErrInvalidShift:     StatusBadRequest,

	// 楼层/部门配置错误码
	ErrFloorNotFound:      StatusNotFound,
	ErrFloorAlreadyExist:  StatusBadRequest,
	ErrDepartmentNotFound: StatusNotFound,
	ErrFloorOccupied:      StatusBadRequest,

	// 数据库相关错误码
	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
}

// GetMessage 获取错误码对应的消息
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "未知错误"
}

// GetStatus 获取错误码对应的HTTP状态码
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
