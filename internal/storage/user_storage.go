package storage

import (
	"database/sql"
	"time"

	"github.com/adarsh20n06-web/NOBLTY-AI/internal/models"
)

// UpsertUser OAuth 콜백 시 호출, 이미 있으면 이름/프로바이더만 갱신
func UpsertUser(email, name, provider string) error {
	stmt, err := db.Prepare(`
		INSERT INTO users(email, name, provider, created_at)
		VALUES($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, provider = EXCLUDED.provider`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(email, name, provider, time.Now().Unix())
	return err
}

func GetUserByEmail(email string) (models.User, error) {
	var user models.User
	var nullName, nullProvider sql.NullString

	row := db.QueryRow("SELECT id, email, name, provider, created_at FROM users WHERE email = $1", email)
	if err := row.Scan(&user.ID, &user.Email, &nullName, &nullProvider, &user.CreatedAt); err != nil {
		return user, err
	}

	if nullName.Valid {
		user.Name = nullName.String
	}
	if nullProvider.Valid {
		user.Provider = nullProvider.String
	}
	return user, nil
}
