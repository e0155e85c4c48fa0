package controllers

import (
	"desk-management-service/internal/domain/services"
	"desk-management-service/internal/domain/services/container"
	"desk-management-service/internal/error/code"
	"desk-management-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceJWTController 定义认证控制器接口
type InterfaceJWTController interface {
	Login()
	Signup()
}

// JWTController 处理身份验证请求
type JWTController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewJWTController 创建一个新的认证控制器
func NewJWTController(ctx *gin.Context, container *container.ServiceContainer) *JWTController {
	return &JWTController{
		Ctx:       ctx,
		Container: container,
	}
}

// LoginRequest 表示登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@example.com"`
	Password string `json:"password" binding:"required" example:"admin123"`
}

// SignupRequest 表示员工注册请求
type SignupRequest struct {
	Email          string `json:"email" binding:"required,email" example:"alice@example.com"`
	Password       string `json:"password" binding:"required,min=6" example:"secret123"`
	FullName       string `json:"full_name" binding:"required" example:"Alice Zhang"`
	EmployeeCode   string `json:"employee_code" example:"EMP-1001"`
	Department     string `json:"department" binding:"required" example:"Engineering"`
	PreferredShift string `json:"preferred_shift" example:"MORNING"`
}

// ErrorResponse 表示错误响应
type ErrorResponse struct {
	Code    int         `json:"code" example:"401"`
	Message string      `json:"message" example:"Invalid email or password"`
	Data    interface{} `json:"data"`
}

// HandleJWTFunc 返回一个处理认证请求的Gin处理函数
func HandleJWTFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewJWTController(ctx, container)

		switch method {
		case "login":
			controller.Login()
		case "signup":
			controller.Signup()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. Login 处理用户登录
// @Summary      User Login
// @Description  Process user login and return JWT token with role claims
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login request parameters"
// @Success      200  {object}  map[string]interface{}  "Success response with token"
// @Failure      400  {object}  ErrorResponse  "Bad request"
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /auth/login [post]
func (c *JWTController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数", nil)
		return
	}

	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	result, err := jwtService.Login(req.Email, req.Password)
	if err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, result)
}

// 2. Signup 处理员工自助注册
// @Summary      Employee Signup
// @Description  Register a new EMPLOYEE account with its employee profile
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body SignupRequest true "Signup request parameters"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse  "Bad request"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /auth/signup [post]
func (c *JWTController) Signup() {
	var req SignupRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.Signup(services.SignupInput{
		Email:          req.Email,
		Password:       req.Password,
		FullName:       req.FullName,
		EmployeeCode:   req.EmployeeCode,
		Department:     req.Department,
		PreferredShift: req.PreferredShift,
	})
	if err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, gin.H{
		"user_id":   user.ID,
		"email":     user.Email,
		"full_name": user.FullName,
		"role":      user.Role,
	})
}
