// Package domain defines the records a condominium administrator keeps:
// residents, common-expense payments, maintenance requests, announcements,
// common-area reservations and the building settings.
package domain

import "time"

// OccupancyStatus describes who lives in a unit.
type OccupancyStatus string

const (
	OccupancyOwner  OccupancyStatus = "owner"
	OccupancyTenant OccupancyStatus = "tenant"
	OccupancyVacant OccupancyStatus = "vacant"
)

func (s OccupancyStatus) Valid() bool {
	switch s {
	case OccupancyOwner, OccupancyTenant, OccupancyVacant:
		return true
	}
	return false
}

// Resident is the person registered against an apartment.
// Debt is derived from payments and the monthly fee; it is never authored.
type Resident struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	RUT             string          `json:"rut"`
	Phone           string          `json:"phone,omitempty"`
	Email           string          `json:"email,omitempty"`
	Apartment       string          `json:"apartment"`
	OccupancyStatus OccupancyStatus `json:"occupancyStatus"`
	Debt            int64           `json:"debt"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
)

func (s PaymentStatus) Valid() bool {
	return s == PaymentPaid || s == PaymentPending
}

// Payment is a common-expense charge. Date is nil while unpaid.
// ResidentID is a weak reference and may dangle after the resident is deleted.
type Payment struct {
	ID           string        `json:"id"`
	ResidentID   string        `json:"residentId"`
	Apartment    string        `json:"apartment"`
	ResidentName string        `json:"residentName"`
	Amount       int64         `json:"amount"`
	Date         *time.Time    `json:"date"`
	Status       PaymentStatus `json:"status"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// MaintenanceStatus is ordered; a request only moves forward.
type MaintenanceStatus string

const (
	MaintenancePending    MaintenanceStatus = "pending"
	MaintenanceInProgress MaintenanceStatus = "in_progress"
	MaintenanceCompleted  MaintenanceStatus = "completed"
)

// Rank orders the lifecycle; unknown statuses rank -1.
func (s MaintenanceStatus) Rank() int {
	switch s {
	case MaintenancePending:
		return 0
	case MaintenanceInProgress:
		return 1
	case MaintenanceCompleted:
		return 2
	}
	return -1
}

func (s MaintenanceStatus) Valid() bool { return s.Rank() >= 0 }

// MaintenanceRequest with an empty Apartment refers to a common area.
type MaintenanceRequest struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Apartment   string            `json:"apartment,omitempty"`
	Priority    Priority          `json:"priority"`
	Status      MaintenanceStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	ResolvedAt  *time.Time        `json:"resolvedAt"`
}

// Audience tags who an announcement is meant for.
const AudienceAll = "all"

type Announcement struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Target    string    `json:"target"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Area is a bookable common area.
type Area string

const (
	AreaMultipurposeRoom Area = "multipurpose_room"
	AreaBBQ              Area = "bbq_area"
	AreaPool             Area = "pool"
)

func (a Area) Valid() bool {
	switch a {
	case AreaMultipurposeRoom, AreaBBQ, AreaPool:
		return true
	}
	return false
}

type ReservationStatus string

const ReservationConfirmed ReservationStatus = "confirmed"

// Reservation books an area on Date (YYYY-MM-DD) over the half-open
// interval [Start, End), both HH:MM.
type Reservation struct {
	ID        string            `json:"id"`
	Area      Area              `json:"area"`
	Apartment string            `json:"apartment"`
	Date      string            `json:"date"`
	Start     string            `json:"start"`
	End       string            `json:"end"`
	Purpose   string            `json:"purpose,omitempty"`
	Status    ReservationStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// Settings is the singleton building configuration.
type Settings struct {
	MonthlyFee        int64  `json:"monthlyFee"`
	BuildingName      string `json:"buildingName"`
	Address           string `json:"address"`
	AdministratorName string `json:"administrator"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
	Currency          string `json:"currency"`
}

const (
	DefaultMonthlyFee   int64 = 85000
	DefaultBuildingName       = "Condominio"
	DefaultCurrency           = "CLP"
)

// DefaultSettings is what an empty dataset reports.
func DefaultSettings() Settings {
	return Settings{
		MonthlyFee:   DefaultMonthlyFee,
		BuildingName: DefaultBuildingName,
		Currency:     DefaultCurrency,
	}
}
