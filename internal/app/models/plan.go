package models

import (
	"time"

	"github.com/google/uuid"
)

// Plan defines a subscription plan schools can be billed under, based on the
// 'plans' table. Limits are nil when the plan is unlimited.
type Plan struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Name         string     `json:"name" db:"name"`
	Description  *string    `json:"description,omitempty" db:"description"`
	MonthlyPrice float64    `json:"monthlyPrice" db:"monthly_price"`
	AnnualPrice  *float64   `json:"annualPrice,omitempty" db:"annual_price"`
	MaxStudents  *int       `json:"maxStudents,omitempty" db:"max_students"`
	MaxTeachers  *int       `json:"maxTeachers,omitempty" db:"max_teachers"`
	MaxStorageMB *int       `json:"maxStorageMb,omitempty" db:"max_storage_mb"`
	Features     []string   `json:"features,omitempty" db:"features"`
	Active       bool       `json:"active" db:"active"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
	DeletedAt    *time.Time `json:"-" db:"deleted_at"`
}

// Subscription statuses.
const (
	SubscriptionActive   = "active"
	SubscriptionCanceled = "canceled"
	SubscriptionExpired  = "expired"
)

// Subscription billing periods.
const (
	SubscriptionMonthly = "monthly"
	SubscriptionAnnual  = "annual"
)

// Subscription ties a school to a plan, based on the 'subscriptions' table.
type Subscription struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	SchoolID  uuid.UUID  `json:"schoolId" db:"school_id"`
	PlanID    uuid.UUID  `json:"planId" db:"plan_id"`
	Status    string     `json:"status" db:"status"`
	Period    string     `json:"period" db:"period"`
	Price     float64    `json:"price" db:"price"`
	StartsAt  time.Time  `json:"startsAt" db:"starts_at"`
	EndsAt    *time.Time `json:"endsAt,omitempty" db:"ends_at"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
	DeletedAt *time.Time `json:"-" db:"deleted_at"`

	// Relations (populated when needed)
	School *School `json:"school,omitempty"`
	Plan   *Plan   `json:"plan,omitempty"`
}
