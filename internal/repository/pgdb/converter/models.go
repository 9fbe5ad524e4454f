package converter

import "time"

// LabelSubmissionModel представляет запись таблицы label_submissions в PostgreSQL.
type LabelSubmissionModel struct {
	ID        string    `db:"id"`
	Clusterer string    `db:"clusterer"`
	Cleared   bool      `db:"cleared"`
	Total     int       `db:"total"`
	CreatedAt time.Time `db:"created_at"`
}

// LabelEntryModel представляет запись таблицы label_entries в PostgreSQL.
type LabelEntryModel struct {
	SubmissionID string `db:"submission_id"`
	Document     string `db:"document"`
	Label        string `db:"label"`
}
