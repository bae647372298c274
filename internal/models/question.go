package models

import "database/sql"

// Question is a single interview question owned by a business.
//
// Base questions are authored ahead of time with order indices on a fixed
// stride of three (0, 3, 6, ...) so that two slots remain open after each of
// them. Follow-up questions are generated at runtime and land in those slots;
// they additionally record the interview they were generated for, which keeps
// concurrent interviews of the same business from fighting over slots.
type Question struct {
	ID         string         `db:"id"`
	Content    string         `db:"content"`
	BusinessID string         `db:"business_id"`
	// InterviewID is set for follow-up questions only.
	InterviewID sql.NullString `db:"interview_id"`
	IsFollowUp  bool           `db:"is_follow_up"`
	// OrderIndex is null only before assignment.
	OrderIndex sql.NullInt64 `db:"order_index"`
}

// BaseQuestionStride is the spacing between authored base questions. The two
// positions after every base question are reserved for its follow-ups.
const BaseQuestionStride = 3
