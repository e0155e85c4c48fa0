package code

// HTTP状态码.
const (
	// StatusOK - 200: 成功.
	StatusOK = 200
	// StatusBadRequest - 400: 请求参数错误.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: 未授权.
	StatusUnauthorized = 401
	// StatusForbidden - 403: 禁止访问.
	StatusForbidden = 403
	// StatusNotFound - 404: 资源不存在.
	StatusNotFound = 404
	// StatusConflict - 409: 资源冲突.
	StatusConflict = 409
	// StatusInternalServerError - 500: 服务器内部错误.
	StatusInternalServerError = 500
	// StatusTooManyRequests - 429: 请求过多.
	StatusTooManyRequests = 429
)

// 通用错误码 (100xxx).
const (
	// ErrSuccess - 200: 成功.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: 未知错误.
	ErrUnknown
	// ErrBind - 400: 请求参数绑定错误.
	ErrBind
	// ErrValidation - 400: 请求参数验证错误.
	ErrValidation
	// ErrTokenInvalid - 401: 令牌无效.
	ErrTokenInvalid
	// ErrTooManyRequests - 429: 请求频率过高.
	ErrTooManyRequests
)

// 用户相关错误码 (101xxx).
const (
	// ErrUserNotFound - 404: 用户不存在.
	ErrUserNotFound int = iota + 101000
	// ErrUserAlreadyExist - 400: 用户已存在.
	ErrUserAlreadyExist
	// ErrUserPasswordIncorrect - 401: 用户密码错误.
	ErrUserPasswordIncorrect
	// ErrUserInactive - 403: 用户已被停用.
	ErrUserInactive
)

// 工位相关错误码 (102xxx).
const (
	// ErrDeskNotFound - 404: 工位不存在.
	ErrDeskNotFound int = iota + 102000
	// ErrDeskAlreadyExist - 400: 工位编号已存在.
	ErrDeskAlreadyExist
	// ErrDeskUnavailable - 400: 工位状态不允许分配.
	ErrDeskUnavailable
	// ErrDeskConflict - 409: 工位在请求时段已被占用.
	ErrDeskConflict
	// ErrDeskNumberInvalid - 400: 工位编号格式不合法.
	ErrDeskNumberInvalid
	// ErrDeskStatusInvalid - 400: 工位状态不合法.
	ErrDeskStatusInvalid
)

// 员工相关错误码 (103xxx).
const (
	// ErrEmployeeNotFound - 404: 员工不存在.
	ErrEmployeeNotFound int = iota + 103000
	// ErrEmployeeAlreadyExist - 400: 员工编号已存在.
	ErrEmployeeAlreadyExist
	// ErrDepartmentConfig - 400: 员工部门配置缺失或不一致.
	ErrDepartmentConfig
)

// 申请相关错误码 (104xxx).
const (
	// ErrRequestNotFound - 404: 工位申请不存在.
	ErrRequestNotFound int = iota + 104000
	// ErrInvalidDateRange - 400: 日期区间不合法.
	ErrInvalidDateRange
	// ErrInvalidShift - 400: 班次不合法.
	ErrInvalidShift
)

// 楼层/部门配置错误码 (105xxx).
const (
	// ErrFloorNotFound - 404: 楼层不存在.
	ErrFloorNotFound int = iota + 105000
	// ErrFloorAlreadyExist - 400: 楼层编号已存在.
	ErrFloorAlreadyExist
	// ErrDepartmentNotFound - 404: 部门不存在.
	ErrDepartmentNotFound
	// ErrFloorOccupied - 400: 楼层已绑定其他部门.
	ErrFloorOccupied
)

// 数据库相关错误码 (106xxx).
const (
	// ErrDatabase - 500: 数据库错误.
	ErrDatabase int = iota + 106000
	// ErrRecordNotFound - 404: 记录不存在.
	ErrRecordNotFound
)
