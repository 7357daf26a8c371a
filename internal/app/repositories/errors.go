package repositories

import "errors"

// Storage-level errors. Services translate these into client-facing application errors.
var (
	ErrNotFound = errors.New("record not found")

	ErrEmailTaken = errors.New("email already in use")

	ErrAlreadyEnrolled  = errors.New("student already enrolled in bootcamp")
	ErrBootcampNotOpen  = errors.New("bootcamp is not open for enrollment")
	ErrBootcampFull     = errors.New("bootcamp is full")
	ErrCapacityTooLow   = errors.New("capacity below current enrollment count")
	ErrDuplicateDay     = errors.New("day already taken in this bootcamp")
	ErrDuplicateTime    = errors.New("time slot already taken in this session")
	ErrDuplicateRecord  = errors.New("attendance already recorded")
	ErrDuplicateName    = errors.New("name already in use")
	ErrAlreadyAssigned  = errors.New("student already assigned")
	ErrAlreadySent      = errors.New("communication already sent")
	ErrUnknownReference = errors.New("referenced record does not exist")
	ErrBoundReached     = errors.New("bounded counter did not advance")
)

// Unique constraint names, see migrations
const (
	constraintUsersEmail           = "users_email_key"
	constraintEnrollmentUnique     = "enrollments_student_bootcamp_key"
	constraintSessionDay           = "sessions_bootcamp_day_key"
	constraintActivityTime         = "session_activities_session_time_key"
	constraintAttendanceUnique     = "attendance_records_session_student_key"
	constraintDiscussionDay        = "discussion_topics_bootcamp_day_key"
	constraintKnowledgeStreamName  = "knowledge_streams_name_key"
	constraintStudentStreamUnique  = "student_knowledge_streams_student_stream_key"
	constraintRubricSkill          = "rubrics_skill_key"
	constraintBootcampEnrollmentCk = "bootcamps_enrollment_count_check"
)
