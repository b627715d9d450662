package storage

import (
	"database/sql"
	"errors"
	"time"

	"github.com/adarsh20n06-web/NOBLTY-AI/internal/models"
)

var ErrAPIKeyNotFound = errors.New("api key not found")

// CreateAPIKey 해시/지문만 저장, 평문 키는 호출자가 1회 반환
func CreateAPIKey(email, keyHash, fingerprint, boundIP string, maxUses int, expiresAt int64) (int64, error) {
	var id int64
	err := db.QueryRow(`
		INSERT INTO api_keys(email, key_hash, fingerprint, max_uses, expires_at, created, bound_ip)
		VALUES($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		email, keyHash, fingerprint, maxUses, expiresAt, time.Now().Unix(), boundIP,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetAPIKeyByFingerprint 지문 인덱스로 조회, bcrypt 검증은 호출자 몫
func GetAPIKeyByFingerprint(fingerprint string) (models.APIKey, error) {
	var key models.APIKey
	var nullIP sql.NullString

	row := db.QueryRow(`
		SELECT id, email, key_hash, fingerprint, uses, max_uses, revoked, expires_at, created, bound_ip
		FROM api_keys WHERE fingerprint = $1`, fingerprint)
	if err := row.Scan(
		&key.ID, &key.Email, &key.KeyHash, &key.Fingerprint,
		&key.Uses, &key.MaxUses, &key.Revoked, &key.ExpiresAt, &key.Created, &nullIP,
	); err != nil {
		if err == sql.ErrNoRows {
			return key, ErrAPIKeyNotFound
		}
		return key, err
	}

	if nullIP.Valid {
		key.BoundIP = nullIP.String
	}
	return key, nil
}

func IncrementAPIKeyUses(id int64) error {
	_, err := db.Exec("UPDATE api_keys SET uses = uses + 1 WHERE id = $1", id)
	return err
}

// RevokeAPIKey 본인 소유 키만 취소 가능
func RevokeAPIKey(id int64, email string) error {
	result, err := db.Exec("UPDATE api_keys SET revoked = TRUE WHERE id = $1 AND email = $2", id, email)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAPIKeyNotFound
	}
	return nil
}

func ListAPIKeysByEmail(email string) ([]models.APIKey, error) {
	rows, err := db.Query(`
		SELECT id, email, uses, max_uses, revoked, expires_at, created, bound_ip
		FROM api_keys WHERE email = $1 ORDER BY created DESC`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []models.APIKey
	for rows.Next() {
		var key models.APIKey
		var nullIP sql.NullString

		if err := rows.Scan(&key.ID, &key.Email, &key.Uses, &key.MaxUses,
			&key.Revoked, &key.ExpiresAt, &key.Created, &nullIP); err != nil {
			return nil, err
		}
		if nullIP.Valid {
			key.BoundIP = nullIP.String
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
