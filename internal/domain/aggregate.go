package domain

// PointsPerWeek is the current user's point total for the week starting
// on Week.
type PointsPerWeek struct {
	Week   Date `json:"week"`
	Points int  `json:"points"`
}

// BloodPressureByPeriod holds the readings of a trailing window, newest first.
type BloodPressureByPeriod struct {
	Period   string          `json:"period"`
	Readings []BloodPressure `json:"readings"`
}

// WeightByPeriod holds the weigh-ins of a trailing window, newest first.
type WeightByPeriod struct {
	Period   string   `json:"period"`
	WeighIns []Weight `json:"weighIns"`
}

// Account is the authenticated principal.
type Account struct {
	Login       string   `json:"login"`
	FirstName   string   `json:"firstName,omitempty"`
	LastName    string   `json:"lastName,omitempty"`
	Email       string   `json:"email,omitempty"`
	Authorities []string `json:"authorities"`
}

const (
	AuthorityUser  = "ROLE_USER"
	AuthorityAdmin = "ROLE_ADMIN"
)
