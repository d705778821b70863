package store

import "context"

// UpsertQuizQuestion inserts a question keyed by its text; existing rows win.
func (q *Queries) UpsertQuizQuestion(ctx context.Context, qq QuizQuestion) error {
	_, err := q.db.Exec(ctx, `
INSERT INTO quiz_questions (question, options, correct)
VALUES ($1, $2, $3)
ON CONFLICT (question) DO NOTHING`, qq.Question, qq.Options, qq.Correct)
	return err
}

func (q *Queries) ListQuizQuestions(ctx context.Context) ([]QuizQuestion, error) {
	rows, err := q.db.Query(ctx, `SELECT id, question, options, correct FROM quiz_questions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []QuizQuestion{}
	for rows.Next() {
		var qq QuizQuestion
		if err := rows.Scan(&qq.ID, &qq.Question, &qq.Options, &qq.Correct); err != nil {
			return nil, err
		}
		out = append(out, qq)
	}
	return out, rows.Err()
}
