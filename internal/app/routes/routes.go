package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/abimath/internal/app/controllers"
	"github.com/yigit/abimath/internal/middleware"
)

// Permissions follow the verb:resource convention of the identity provider
const (
	PermGetStudents    = "get:students"
	PermPostStudents   = "post:students"
	PermPatchStudents  = "patch:students"
	PermDeleteStudents = "delete:students"
	PermGetClasses     = "get:classes"
	PermPostClasses    = "post:classes"
	PermPatchClasses   = "patch:classes"
	PermDeleteClasses  = "delete:classes"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	healthController *controllers.HealthController,
	studentController *controllers.StudentController,
	classController *controllers.ClassController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.NoRoute(middleware.NotFound)
	router.NoMethod(middleware.MethodNotAllowed)

	// --- Public routes ---
	router.GET("/", healthController.Index)
	router.GET("/health", healthController.Health)

	require := authMiddleware.RequirePermission

	// --- Student routes ---
	router.GET("/students", require(PermGetStudents), studentController.ListStudents)
	router.GET("/students-detail", require(PermGetStudents), studentController.ListStudentsDetail)
	students := router.Group("/students")
	{
		students.GET("/:id", require(PermGetStudents), studentController.GetStudent)
		students.GET("/:id/results.xlsx", require(PermGetStudents), studentController.ExportStudentResults)
		students.POST("", require(PermPostStudents), studentController.CreateStudent)
		students.PATCH("/:id", require(PermPatchStudents), studentController.UpdateStudent)
		students.DELETE("/:id", require(PermDeleteStudents), studentController.DeleteStudent)
	}

	// --- Class routes ---
	router.GET("/classes", require(PermGetClasses), classController.ListClasses)
	router.GET("/classes-detail", require(PermGetClasses), classController.ListClassesDetail)
	classes := router.Group("/classes")
	{
		classes.GET("/:id", require(PermGetClasses), classController.GetClass)
		classes.GET("/:id/students", require(PermGetStudents), studentController.ListClassStudents)
		classes.GET("/:id/results.xlsx", require(PermGetClasses), classController.ExportClassResults)
		classes.POST("", require(PermPostClasses), classController.CreateClass)
		classes.PATCH("/:id", require(PermPatchClasses), classController.UpdateClass)
		classes.DELETE("/:id", require(PermDeleteClasses), classController.DeleteClass)
	}
}
