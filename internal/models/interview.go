package models

// Interview is one employee's run through the full question sequence of their
// business. It is immutable except for its set of associated responses.
type Interview struct {
	ID         string `db:"id"`
	BusinessID string `db:"business_id"`
	EmployeeID string `db:"employee_id"`
}

// QuestionResponse records an answer to one question within an interview.
// There is at most one response per (interview, question) pair; re-answering
// overwrites the content instead of duplicating the row.
type QuestionResponse struct {
	ID          int64  `db:"id"`
	InterviewID string `db:"interview_id"`
	EmployeeID  string `db:"employee_id"`
	QuestionID  string `db:"question_id"`
	Content     string `db:"content"`
}

// AnsweredQuestion is one entry of an interview's history: the question that
// was asked joined with the answer that was recorded for it.
type AnsweredQuestion struct {
	Question Question
	Answer   string
}
