package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/tradeline/jobtrack/api/internal/database"
	"github.com/tradeline/jobtrack/api/internal/model"
)

// UserRepository handles the single operator profile record
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Get retrieves the profile record. Returns nil when none exists.
func (r *UserRepository) Get(ctx context.Context) (*model.User, error) {
	query := `SELECT * FROM user LIMIT 1`

	result, err := r.db.QueryOne(ctx, query, nil)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseUserResult(result)
}

// Update writes profile fields back. The caller passes the full desired state;
// password_hash is written as-is (hashing happens in the service).
func (r *UserRepository) Update(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
		UPDATE type::thing('user', $key) SET
			name = $name,
			email = $email,
			phone = $phone,
			password_hash = $password_hash,
			updated_on = time::now()
		RETURN AFTER
	`
	vars := map[string]interface{}{
		"key":           recordKey(user.ID, "user"),
		"name":          user.Name,
		"email":         user.Email,
		"phone":         user.Phone,
		"password_hash": user.PasswordHash,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseUserResult(result)
}

// parseUserResult parses a single user from a query result
func parseUserResult(result interface{}) (*model.User, error) {
	userMap, ok := result.(map[string]interface{})
	if !ok {
		if rows, ok := extractQueryResults(result); ok && len(rows) > 0 {
			if m, ok := rows[0].(map[string]interface{}); ok {
				return parseUserMap(m)
			}
		}
		return nil, fmt.Errorf("unexpected user result format: %T", result)
	}
	return parseUserMap(userMap)
}

func parseUserMap(m map[string]interface{}) (*model.User, error) {
	id := extractRecordID(m["id"])
	if id == "" {
		return nil, fmt.Errorf("user record missing id")
	}

	return &model.User{
		ID:           id,
		Name:         getString(m, "name"),
		Email:        getString(m, "email"),
		Phone:        getStringPtr(m, "phone"),
		PasswordHash: getString(m, "password_hash"),
		UpdatedOn:    getTime(m, "updated_on"),
	}, nil
}
