package config

import (
	"encoding/json"
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	users, err := ParseUsers(c.Auth.UsersJSON)
	if err != nil {
		return fmt.Errorf("auth.users: %w", err)
	}
	c.Auth.Users = users

	if c.Database.URI == "" {
		return fmt.Errorf("database.uri is required")
	}

	return nil
}

// ParseUsers parses the JSON-encoded user list
// (e.g. `[{"username":"a","passwordHash":"$2a$..."}]`).
// An empty string yields an empty list.
func ParseUsers(raw string) ([]User, error) {
	if raw == "" {
		return nil, nil
	}

	var users []User
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	for i, u := range users {
		if u.Username == "" {
			return nil, fmt.Errorf("user[%d]: username is required", i)
		}
		if u.PasswordHash == "" {
			return nil, fmt.Errorf("user[%d]: passwordHash is required", i)
		}
	}

	return users, nil
}
