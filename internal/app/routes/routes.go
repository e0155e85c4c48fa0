package routes

import (
	"time"

	_ "desk-management-service/docs"
	"desk-management-service/internal/app/controllers"
	"desk-management-service/internal/app/middleware"
	"desk-management-service/internal/domain/services/container"
	"desk-management-service/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *gin.Engine {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	// 设置正确的Content-Type，确保UTF-8编码
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		c.Next()
	})
	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg, redisClient)
	// 初始化中间件
	middleware.InitAuthMiddleware(cfg, db)
	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// API 路由根路径；写操作成功后清空响应缓存
	api := r.Group("/api")
	api.Use(middleware.PurgeCacheOnWrite())
	// 注册公共路由
	registerPublicRoutes(api, container)
	// 注册员工路由
	registerEmployeeRoutes(api, container)
	// 注册IT支持路由（管理员也可访问）
	registerITSupportRoutes(api, container)
	// 注册管理员路由
	registerAdminRoutes(api, container)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加IP限流中间件 - 每秒允许10个请求，最多突发20个请求
	api.Use(middleware.IPRateLimiter(10, 20))

	// 健康检查路由
	api.GET("/ping", controllers.HandleHealthFunc(container, "ping"))
	api.GET("/health", controllers.HandleHealthFunc(container, "ping")) // 兼容Docker健康检查的路由

	// 健康状态路由组
	healthGroup := api.Group("/health")
	healthGroup.GET("/status", controllers.HandleHealthFunc(container, "status"))
	healthGroup.GET("/cache-stats", controllers.HandleHealthFunc(container, "cacheStats"))

	// 认证路由
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.PathRateLimiter(5, 10)) // 每秒5个请求，最多突发10个
	authGroup.POST("/login", controllers.HandleJWTFunc(container, "login"))
	authGroup.POST("/signup", controllers.HandleJWTFunc(container, "signup"))
}

// registerEmployeeRoutes 注册任意已登录用户可访问的路由
func registerEmployeeRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	user := api.Group("/")
	user.Use(middleware.AuthenticateUser())
	user.Use(middleware.IPRateLimiter(30, 50))

	// 工位浏览路由
	user.GET("/desks", middleware.Cache(middleware.CacheConfig{Expiration: 10 * time.Second}), controllers.HandleDeskFunc(container, "getDesks"))
	user.GET("/desks/:id", controllers.HandleDeskFunc(container, "getDesk"))

	// 工位申请路由
	requestGroup := user.Group("/desk-requests")
	requestGroup.POST("", controllers.HandleDeskRequestFunc(container, "createRequest"))
	requestGroup.GET("/me", controllers.HandleDeskRequestFunc(container, "getMyRequests"))
}

// registerITSupportRoutes 注册IT支持路由（管理员也可访问）
func registerITSupportRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	support := api.Group("/")
	support.Use(middleware.AuthenticateITSupport())
	support.Use(middleware.IPRateLimiter(30, 50))

	// 工位运维路由：状态变更与历史查询
	support.PUT("/desks/number/:desk_number/status", controllers.HandleDeskFunc(container, "updateDeskStatus"))
	support.GET("/desks/number/:desk_number/history", controllers.HandleDeskFunc(container, "getDeskHistory"))

	// 工位分配路由
	support.POST("/desks/:id/assign", controllers.HandleDeskFunc(container, "assignDesk"))

	// 分配记录路由
	assignmentGroup := support.Group("/assignments")
	assignmentGroup.GET("", controllers.HandleAssignmentFunc(container, "getAssignments"))
	assignmentGroup.POST("/:id/release", controllers.HandleAssignmentFunc(container, "releaseAssignment"))
}

// registerAdminRoutes 注册仅管理员可访问的路由
func registerAdminRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	admin := api.Group("/")
	admin.Use(middleware.AuthenticateSystemAdmin())
	admin.Use(middleware.IPRateLimiter(30, 50))

	// 工位管理路由
	admin.POST("/desks", controllers.HandleDeskFunc(container, "createDesk"))
	admin.DELETE("/desks/:id", controllers.HandleDeskFunc(container, "deleteDesk"))
	admin.POST("/desks/reconcile", controllers.HandleDeskFunc(container, "reconcileStatuses"))

	// 员工管理路由
	employeeGroup := admin.Group("/employees")
	employeeGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleEmployeeFunc(container, "getEmployees"))
	employeeGroup.GET("/:id", controllers.HandleEmployeeFunc(container, "getEmployee"))
	employeeGroup.POST("", controllers.HandleEmployeeFunc(container, "createEmployee"))

	// 申请管理路由
	admin.GET("/desk-requests", controllers.HandleDeskRequestFunc(container, "getRequests"))
	admin.GET("/desk-requests/:id", controllers.HandleDeskRequestFunc(container, "getRequest"))

	// 系统设置路由
	settingsGroup := admin.Group("/settings")
	settingsGroup.GET("", controllers.HandleSettingsFunc(container, "getSettings"))
	settingsGroup.PUT("/auto-assignment", controllers.HandleSettingsFunc(container, "updateAutoAssignment"))

	// 楼层与部门配置路由
	configGroup := admin.Group("/admin-config")
	configGroup.GET("/floors", middleware.Cache(middleware.CacheConfig{Expiration: 5 * time.Minute}), controllers.HandleAdminConfigFunc(container, "getFloors"))
	configGroup.POST("/floors", controllers.HandleAdminConfigFunc(container, "createFloor"))
	configGroup.GET("/departments", middleware.Cache(middleware.CacheConfig{Expiration: 5 * time.Minute}), controllers.HandleAdminConfigFunc(container, "getDepartments"))
	configGroup.POST("/departments", controllers.HandleAdminConfigFunc(container, "createDepartment"))
}
