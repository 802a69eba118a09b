package repositories

import (
	"github.com/escolabr/escolar/internal/db"
)

// Repositories bundles every repository over a shared connection pool.
type Repositories struct {
	Identity IIdentityRepository
	Role     IRoleRepository
	School   ISchoolRepository
	Student  IStudentRepository
	Teacher  ITeacherRepository
	Guardian IGuardianRepository
	Class    IClassRepository
	Token    ITokenRepository

	Plan         IPlanRepository
	Subscription ISubscriptionRepository
	Exercise     IExerciseRepository
	Exam         IExamRepository
}

// NewRepositories creates all repositories backed by the given database.
func NewRepositories(database *db.PostgresDB) *Repositories {
	pool := database.Pool
	return &Repositories{
		Identity: NewIdentityRepository(pool),
		Role:     NewRoleRepository(pool),
		School:   NewSchoolRepository(pool),
		Student:  NewStudentRepository(pool),
		Teacher:  NewTeacherRepository(pool),
		Guardian: NewGuardianRepository(pool),
		Class:    NewClassRepository(pool),
		Token:    NewTokenRepository(pool),

		Plan:         NewPlanRepository(pool),
		Subscription: NewSubscriptionRepository(pool),
		Exercise:     NewExerciseRepository(pool),
		Exam:         NewExamRepository(pool),
	}
}
