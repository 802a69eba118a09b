package services

import (
	"github.com/escolabr/escolar/internal/app/repositories"
	"github.com/escolabr/escolar/internal/db"
	"github.com/escolabr/escolar/internal/pkg/auth"
)

// Services bundles every application service.
type Services struct {
	Auth       *AuthService
	Enrollment *EnrollmentService
	School     *SchoolService
	Class      *ClassService
	Plan       *PlanService
	Exercise   *ExerciseService
}

// NewServices wires all services over the repositories and the database.
func NewServices(database *db.PostgresDB, repos *repositories.Repositories, jwt *auth.JWTService) *Services {
	return &Services{
		Auth: NewAuthService(repos.Identity, repos.Role, repos.Token, jwt),
		Enrollment: NewEnrollmentService(database, repos.Identity, repos.Role,
			repos.School, repos.Student, repos.Teacher, repos.Guardian),
		School: NewSchoolService(repos.School),
		Class:  NewClassService(database, repos.Class, repos.Student),
		Plan:   NewPlanService(repos.Plan, repos.Subscription),
		Exercise: NewExerciseService(database, repos.Teacher, repos.Class,
			repos.Exercise, repos.Exam),
	}
}
