package employee

import "time"

// Employee is the read-only slice of the employee directory the payroll
// engine needs. The directory itself is maintained elsewhere.
type Employee struct {
	ID        string
	Code      string
	FirstName string
	LastName  string
	IsActive  bool
	JoinDate  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}
