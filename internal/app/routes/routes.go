// Package routes wires controllers into the HTTP router.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/apavel/studygate/internal/app/controllers"
	"github.com/apavel/studygate/internal/app/models"
	"github.com/apavel/studygate/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	documentController *controllers.DocumentController,
	programController *controllers.ProgramController,
	enrollmentController *controllers.EnrollmentController,
	admissionFileController *controllers.AdmissionFileController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// Everything else requires a valid access token. Ownership checks live
	// in the services; only staff-wide operations are gated by role here.
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	adminOnly := authMiddleware.RoleRequired(string(models.RoleAdmin))

	users := authenticated.Group("/users")
	{
		users.GET("", adminOnly, userController.GetAllUsers)
		users.GET("/:id", userController.GetUserByID)
		users.PUT("/:id", userController.UpdateUser)
		users.DELETE("/:id", userController.DeleteUser)

		users.POST("/:id/information", userController.PopulateProfile)
		users.GET("/:id/information", userController.GetProfile)
		users.PUT("/:id/information", userController.UpdateProfile)
		users.DELETE("/:id/information", userController.DeleteProfile)
	}

	documents := authenticated.Group("/documents")
	{
		documents.POST("", documentController.CreateDocuments)
		documents.GET("", adminOnly, documentController.GetAllDocuments)
		documents.GET("/:id", documentController.GetDocumentsByID)
		documents.PUT("/:id", documentController.UpdateDocuments)
		documents.DELETE("/:id", documentController.DeleteDocuments)
	}

	programs := authenticated.Group("/programs-of-study")
	{
		programs.GET("", programController.GetAllPrograms)
		programs.GET("/:id", programController.GetProgramByID)

		programs.POST("", adminOnly, programController.CreateProgram)
		programs.PUT("/:id", adminOnly, programController.UpdateProgram)
		programs.DELETE("/:id", adminOnly, programController.DeleteProgram)
	}

	enrollments := authenticated.Group("/enrollments")
	{
		enrollments.POST("", enrollmentController.CreateEnrollment)
		enrollments.GET("", enrollmentController.GetAllEnrollments)
		enrollments.GET("/:id", enrollmentController.GetEnrollmentByID)
		enrollments.PUT("/:id", enrollmentController.UpdateEnrollment)
		enrollments.PUT("/:id/grade", adminOnly, enrollmentController.SubmitGrade)
		enrollments.DELETE("/:id", enrollmentController.DeleteEnrollment)
	}

	admissionFiles := authenticated.Group("/admission-files")
	{
		admissionFiles.POST("", admissionFileController.SubmitAdmissionFile)
		admissionFiles.GET("", adminOnly, admissionFileController.GetAllAdmissionFiles)
		admissionFiles.GET("/:id", admissionFileController.GetAdmissionFileByID)
		admissionFiles.PUT("/:id/resubmit", admissionFileController.ResubmitAdmissionFile)
		admissionFiles.PUT("/:id/validate", adminOnly, admissionFileController.ValidateAdmissionFile)
		admissionFiles.DELETE("/:id", admissionFileController.DeleteAdmissionFile)
	}
}
