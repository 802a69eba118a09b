package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escolabr/escolar/internal/app/controllers"
	"github.com/escolabr/escolar/internal/app/models"
	"github.com/escolabr/escolar/internal/middleware"
	"github.com/escolabr/escolar/internal/pkg/auth"
)

// SetupRoutes wires every endpoint. All school-scoped routes carry the
// school id in the path; there is no ambient tenant.
func SetupRoutes(router *gin.Engine, ctrls *controllers.Controllers, jwtService *auth.JWTService) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/login", ctrls.Auth.Login)
		authGroup.POST("/refresh", ctrls.Auth.RefreshToken)
		authGroup.GET("/cpf/check", ctrls.Auth.CheckCPF)

		authenticated := authGroup.Group("", middleware.JWTAuth(jwtService))
		authenticated.POST("/logout", ctrls.Auth.Logout)
		authenticated.GET("/profile", ctrls.Auth.GetProfile)
	}

	adminOnly := middleware.RoleRequired(models.RoleGeneralAdmin)
	schoolStaff := middleware.RoleRequired(models.RoleGeneralAdmin, models.RoleSchoolAdmin)
	schoolReaders := middleware.RoleRequired(models.RoleGeneralAdmin, models.RoleSchoolAdmin, models.RoleTeacher)

	schools := v1.Group("/schools", middleware.JWTAuth(jwtService))
	{
		schools.POST("", adminOnly, ctrls.School.Create)
		schools.GET("", ctrls.School.List)
		schools.GET("/:schoolId", ctrls.School.Get)
		schools.PUT("/:schoolId", adminOnly, ctrls.School.Update)
		schools.DELETE("/:schoolId", adminOnly, ctrls.School.Delete)
	}

	students := schools.Group("/:schoolId/students")
	{
		students.POST("", schoolStaff, ctrls.Student.Enroll)
		students.GET("", schoolReaders, ctrls.Student.List)
		students.GET("/:studentId", schoolReaders, ctrls.Student.Get)
		students.PUT("/:studentId", schoolStaff, ctrls.Student.Update)
		students.DELETE("/:studentId", schoolStaff, ctrls.Student.Delete)
		students.POST("/:studentId/class", schoolStaff, ctrls.Class.ReenrollStudent)
	}

	teachers := schools.Group("/:schoolId/teachers")
	{
		teachers.POST("", schoolStaff, ctrls.Teacher.Enroll)
		teachers.GET("", schoolReaders, ctrls.Teacher.List)
		teachers.GET("/:teacherId", schoolReaders, ctrls.Teacher.Get)
		teachers.PUT("/:teacherId", schoolStaff, ctrls.Teacher.Update)
		teachers.DELETE("/:teacherId", schoolStaff, ctrls.Teacher.Delete)
	}

	exercises := teachers.Group("/:teacherId/exercises", schoolReaders)
	{
		exercises.POST("", ctrls.Exercise.Create)
		exercises.GET("", ctrls.Exercise.List)
		exercises.GET("/:exerciseId", ctrls.Exercise.Get)
		exercises.PUT("/:exerciseId", ctrls.Exercise.Update)
		exercises.DELETE("/:exerciseId", ctrls.Exercise.Delete)
	}

	exams := teachers.Group("/:teacherId/exams", schoolReaders)
	{
		exams.POST("", ctrls.Exam.Create)
		exams.GET("", ctrls.Exam.List)
		exams.GET("/:examId", ctrls.Exam.Get)
		exams.PUT("/:examId", ctrls.Exam.Update)
		exams.DELETE("/:examId", ctrls.Exam.Delete)
	}

	guardians := schools.Group("/:schoolId/guardians")
	{
		guardians.POST("", schoolStaff, ctrls.Guardian.Enroll)
		guardians.GET("", schoolReaders, ctrls.Guardian.List)
		guardians.GET("/:guardianId", schoolReaders, ctrls.Guardian.Get)
		guardians.PUT("/:guardianId", schoolStaff, ctrls.Guardian.Update)
		guardians.DELETE("/:guardianId", schoolStaff, ctrls.Guardian.Delete)
		guardians.POST("/:guardianId/students", schoolStaff, ctrls.Guardian.LinkStudents)
	}

	classes := schools.Group("/:schoolId/classes")
	{
		classes.POST("", schoolStaff, ctrls.Class.Create)
		classes.GET("", schoolReaders, ctrls.Class.List)
		classes.GET("/:classId", schoolReaders, ctrls.Class.Get)
		classes.PUT("/:classId", schoolStaff, ctrls.Class.Update)
		classes.DELETE("/:classId", schoolStaff, ctrls.Class.Delete)
	}

	plans := v1.Group("/plans", middleware.JWTAuth(jwtService), adminOnly)
	{
		plans.POST("", ctrls.Plan.Create)
		plans.GET("", ctrls.Plan.List)
		plans.GET("/:planId", ctrls.Plan.Get)
		plans.PUT("/:planId", ctrls.Plan.Update)
	}

	v1.GET("/subscriptions", middleware.JWTAuth(jwtService), adminOnly, ctrls.Subscription.List)
}
