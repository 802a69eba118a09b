package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/escolabr/escolar/internal/app/models/dto"
	"github.com/escolabr/escolar/internal/app/services"
	"github.com/escolabr/escolar/internal/middleware"
)

// Controllers bundles every HTTP controller.
type Controllers struct {
	Auth     *AuthController
	School   *SchoolController
	Student  *StudentController
	Teacher  *TeacherController
	Guardian *GuardianController
	Class    *ClassController

	Plan         *PlanController
	Subscription *SubscriptionController
	Exercise     *ExerciseController
	Exam         *ExamController
}

// NewControllers creates all controllers over the services.
func NewControllers(svcs *services.Services) *Controllers {
	return &Controllers{
		Auth:     NewAuthController(svcs.Auth),
		School:   NewSchoolController(svcs.School),
		Student:  NewStudentController(svcs.Enrollment),
		Teacher:  NewTeacherController(svcs.Enrollment),
		Guardian: NewGuardianController(svcs.Enrollment),
		Class:    NewClassController(svcs.Class),

		Plan:         NewPlanController(svcs.Plan),
		Subscription: NewSubscriptionController(svcs.Plan),
		Exercise:     NewExerciseController(svcs.Exercise),
		Exam:         NewExamController(svcs.Exercise),
	}
}

// pathUUID parses a UUID path parameter, writing a 400 on failure. The bool
// result tells the handler whether to continue.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, name+" must be a valid UUID").WithField(name)))
		return uuid.Nil, false
	}
	return id, true
}

// bindListFilter binds the common list query parameters.
func bindListFilter(c *gin.Context) (*dto.ListFilterRequest, bool) {
	var filter dto.ListFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleAPIError(c, err)
		return nil, false
	}
	return &filter, true
}
