package dto

import "time"

// InstructorPayload names one instructor of a meeting.
type InstructorPayload struct {
	LastName  string `json:"lastName" validate:"required"`
	FirstName string `json:"firstName" validate:"required"`
}

// MeetingRecordPayload is a meeting submitted for an ad-hoc check. Times are
// "HH:MM", days use the letter form ("MWF", "M W F", "TTh") or full names, dates are
// "YYYY-MM-DD" in the request time zone.
type MeetingRecordPayload struct {
	ID          string              `json:"id" validate:"omitempty,max=128"`
	CourseCode  string              `json:"courseCode" validate:"required,max=32"`
	Section     string              `json:"section" validate:"omitempty,max=16"`
	Days        string              `json:"days" validate:"omitempty,max=64"`
	StartTime   string              `json:"startTime" validate:"required_with=Days,omitempty,max=5"`
	EndTime     string              `json:"endTime" validate:"required_with=Days,omitempty,max=5"`
	StartDate   string              `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string              `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Room        string              `json:"room" validate:"omitempty,max=64"`
	Instructors []InstructorPayload `json:"instructors" validate:"omitempty,dive"`
}

// ConstraintGroupPayload is a constraint group submitted for an ad-hoc check.
type ConstraintGroupPayload struct {
	ID       string   `json:"id" validate:"required,max=128"`
	Name     string   `json:"name"`
	Codes    []string `json:"codes" validate:"required,min=1,dive,required"`
	Priority string   `json:"priority" validate:"required,oneof=PRIORITY NON_PRIORITY IGNORE"`
}

// CheckConflictsRequest carries a full schedule snapshot to check.
type CheckConflictsRequest struct {
	Records     []MeetingRecordPayload   `json:"records" validate:"required,min=1,dive"`
	Constraints []ConstraintGroupPayload `json:"constraints" validate:"omitempty,dive"`
	// DateRecordIDs limits the date-range check. Empty checks every record.
	DateRecordIDs []string `json:"dateRecordIds" validate:"omitempty,dive,required"`
	TimeZone      string   `json:"timeZone" validate:"omitempty,timezone"`
}

// MeetingView is a meeting as rendered inside a conflict cluster.
type MeetingView struct {
	ID          string   `json:"id"`
	CourseCode  string   `json:"courseCode"`
	Section     string   `json:"section,omitempty"`
	Days        string   `json:"days,omitempty"`
	StartTime   string   `json:"startTime,omitempty"`
	EndTime     string   `json:"endTime,omitempty"`
	StartDate   string   `json:"startDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty"`
	Room        string   `json:"room,omitempty"`
	Instructors []string `json:"instructors,omitempty"`
}

// ClusterView is one set of mutually reported meetings.
type ClusterView struct {
	RecordIDs []string      `json:"recordIds"`
	Meetings  []MeetingView `json:"meetings"`
}

// GroupConflicts lists the clusters found inside one instructor or room.
type GroupConflicts struct {
	Key      string        `json:"key"`
	Clusters []ClusterView `json:"clusters"`
}

// ConstraintConflicts lists the clusters found inside one constraint group.
type ConstraintConflicts struct {
	ID       string        `json:"id"`
	Name     string        `json:"name,omitempty"`
	Priority string        `json:"priority"`
	Clusters []ClusterView `json:"clusters"`
}

// ConflictSummary counts checked groups and found clusters per check.
type ConflictSummary struct {
	Records                 int `json:"records"`
	InstructorGroupsChecked int `json:"instructorGroupsChecked"`
	InstructorClusters      int `json:"instructorClusters"`
	RoomGroupsChecked       int `json:"roomGroupsChecked"`
	RoomClusters            int `json:"roomClusters"`
	ConstraintGroupsChecked int `json:"constraintGroupsChecked"`
	ConstraintClusters      int `json:"constraintClusters"`
	DateClusters            int `json:"dateClusters"`
}

// ConflictReport is the outcome of a full check. Only groups with at least one
// cluster are listed.
type ConflictReport struct {
	CheckID     string                `json:"checkId"`
	TermID      string                `json:"termId,omitempty"`
	Instructors []GroupConflicts      `json:"instructors"`
	Rooms       []GroupConflicts      `json:"rooms"`
	Constraints []ConstraintConflicts `json:"constraints"`
	Dates       []ClusterView         `json:"dates"`
	Summary     ConflictSummary       `json:"summary"`
	GeneratedAt time.Time             `json:"generatedAt"`
}
