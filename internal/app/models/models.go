package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent     RoleType = "STUDENT"
	RoleParent      RoleType = "PARENT"
	RoleFacilitator RoleType = "FACILITATOR"
	RoleAdmin       RoleType = "ADMIN"
)

// Valid reports whether r is one of the four known roles
func (r RoleType) Valid() bool {
	switch r {
	case RoleStudent, RoleParent, RoleFacilitator, RoleAdmin:
		return true
	}
	return false
}

// BootcampStatus is the lifecycle state of a bootcamp
type BootcampStatus string

const (
	BootcampDraft      BootcampStatus = "DRAFT"
	BootcampPublished  BootcampStatus = "PUBLISHED"
	BootcampInProgress BootcampStatus = "IN_PROGRESS"
	BootcampCompleted  BootcampStatus = "COMPLETED"
	BootcampCancelled  BootcampStatus = "CANCELLED"
)

// BootcampFormat describes how a bootcamp is delivered
type BootcampFormat string

const (
	FormatOnline   BootcampFormat = "ONLINE"
	FormatInPerson BootcampFormat = "IN_PERSON"
	FormatHybrid   BootcampFormat = "HYBRID"
)

// EnrollmentStatus of a student within a bootcamp
type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "ACTIVE"
	EnrollmentDropped   EnrollmentStatus = "DROPPED"
	EnrollmentCompleted EnrollmentStatus = "COMPLETED"
)

// AttendanceStatus of a student for one session
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceLate    AttendanceStatus = "LATE"
	AttendanceExcused AttendanceStatus = "EXCUSED"
)

// CommunicationStatus of a message. SENT is terminal.
type CommunicationStatus string

const (
	CommunicationDraft     CommunicationStatus = "DRAFT"
	CommunicationScheduled CommunicationStatus = "SCHEDULED"
	CommunicationSent      CommunicationStatus = "SENT"
)

// CommunicationType classifies a communication
type CommunicationType string

const (
	CommunicationAnnouncement CommunicationType = "ANNOUNCEMENT"
	CommunicationMessage      CommunicationType = "MESSAGE"
	CommunicationReminder     CommunicationType = "REMINDER"
)
