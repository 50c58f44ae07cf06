package models

import (
	"fmt"
	"strings"
)

// StaffName is the placeholder the registrar uses for unassigned sections.
const StaffName = "STAFF"

// Instructor identifies a teaching instructor by name.
type Instructor struct {
	LastName  string `db:"last_name" json:"last_name"`
	FirstName string `db:"first_name" json:"first_name"`
}

// IsStaff reports whether the instructor is the STAFF/STAFF placeholder.
func (i Instructor) IsStaff() bool {
	return strings.EqualFold(strings.TrimSpace(i.LastName), StaffName) &&
		strings.EqualFold(strings.TrimSpace(i.FirstName), StaffName)
}

// String renders "Last, First".
func (i Instructor) String() string {
	return fmt.Sprintf("%s, %s", i.LastName, i.FirstName)
}
