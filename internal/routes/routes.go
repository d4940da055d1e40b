package routes

import (
	"github.com/gin-gonic/gin"

	"salespipe/internal/authz"
	"salespipe/internal/handlers"
	"salespipe/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	opportunityHandler *handlers.OpportunityHandler,
	dashboardHandler *handlers.DashboardHandler,
	rateHandler *handlers.RateHandler,
	settingsHandler *handlers.SettingsHandler,
	targetHandler *handlers.TargetHandler,
	reportHandler *handlers.ReportHandler,
) *gin.Engine {

	// ---- public
	r.POST("/login", authHandler.Login)
	r.POST("/register", authHandler.Register)

	// ---- protected
	r.Use(middleware.AuthMiddleware())

	// OPPORTUNITIES (visibility enforced per scope inside the handlers)
	opps := r.Group("/opportunities")
	{
		opps.POST("/", opportunityHandler.Create)
		opps.GET("/", opportunityHandler.List)
		opps.GET("/loss-reasons", opportunityHandler.LossReasons)
		opps.GET("/:id", opportunityHandler.GetByID)
		opps.PUT("/:id", opportunityHandler.Update)
		opps.POST("/:id/advance", opportunityHandler.Advance)
		opps.POST("/:id/won", opportunityHandler.MarkWon)
		opps.POST("/:id/lost", opportunityHandler.MarkLost)
	}

	// DASHBOARD
	dash := r.Group("/dashboard")
	{
		dash.GET("/summary", dashboardHandler.Summary)
		dash.GET("/rows", dashboardHandler.Rows)
	}

	// TARGETS (reads scoped; writes for managers and up)
	targets := r.Group("/targets")
	{
		targets.GET("/", targetHandler.List)
		targets.POST("/", middleware.RequireRoles(authz.RoleManager, authz.RoleHead, authz.RoleAdmin), targetHandler.Create)
		targets.PUT("/:id", middleware.RequireRoles(authz.RoleManager, authz.RoleHead, authz.RoleAdmin), targetHandler.Update)
	}

	// RATES (admin writes, everyone reads)
	rates := r.Group("/rates")
	{
		rates.GET("/", rateHandler.List)
		rates.POST("/", middleware.RequireRoles(authz.RoleAdmin), rateHandler.Create)
		rates.PUT("/:id", middleware.RequireRoles(authz.RoleAdmin), rateHandler.Update)
		rates.DELETE("/:id", middleware.RequireRoles(authz.RoleAdmin), rateHandler.Deactivate)
	}

	// SETTINGS (admin)
	settings := r.Group("/settings", middleware.RequireRoles(authz.RoleAdmin))
	{
		settings.GET("/", settingsHandler.Get)
		settings.PUT("/", settingsHandler.Update)
	}

	// USERS (admin manages assignments)
	users := r.Group("/users")
	{
		users.GET("/", middleware.RequireRoles(authz.RoleAdmin), userHandler.List)
		users.GET("/:id", middleware.RequireRoles(authz.RoleAdmin), userHandler.GetByID)
		users.PUT("/:id/assignment", middleware.RequireRoles(authz.RoleAdmin), userHandler.CompleteAssignment)
	}

	// REPORTS
	reports := r.Group("/reports")
	{
		reports.GET("/pipeline.pdf", reportHandler.PipelinePDF)
		reports.GET("/pipeline.xlsx", reportHandler.PipelineXLSX)
	}

	return r
}
