package storage

import (
	"github.com/adarsh20n06-web/NOBLTY-AI/internal/models"
)

// CreateTrainingRecord 오너 게이트를 통과한 제출만 여기까지 도달함
func CreateTrainingRecord(ownerEmail, content, tags string) (int64, error) {
	var id int64
	err := db.QueryRow(`
		INSERT INTO training_records(owner_email, content, tags)
		VALUES($1, $2, $3)
		RETURNING id`,
		ownerEmail, content, tags,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func GetTrainingRecords() ([]models.TrainingRecord, error) {
	query := `
		SELECT id, owner_email, content, COALESCE(tags, ''), created_at
		FROM training_records
		ORDER BY created_at DESC
	`
	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.TrainingRecord
	for rows.Next() {
		var r models.TrainingRecord
		if err := rows.Scan(&r.ID, &r.Owner, &r.Content, &r.Tags, &r.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
