package storage

import (
	"database/sql"
	"time"
)

// CreateAuditLog meta는 AES-GCM으로 암호화된 JSON, apiKeyID는 세션 인증이면 0
func CreateAuditLog(apiKeyID int64, email, endpoint string, meta []byte) error {
	keyID := sql.NullInt64{Int64: apiKeyID, Valid: apiKeyID > 0}

	stmt, err := db.Prepare("INSERT INTO audit_logs(api_key_id, email, endpoint, meta, ts) VALUES($1, $2, $3, $4, $5)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(keyID, email, endpoint, meta, time.Now().Unix())
	return err
}
