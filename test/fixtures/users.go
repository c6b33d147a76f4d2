// Package fixtures provides test data shared by integration tests.
package fixtures

import (
	"fmt"
	"time"

	"github.com/Twit-Snap/users-service/internal/domain"
)

// Password is the plain password of every fixture account.
const Password = "Password123!"

// Birthdate is the birthdate of every fixture account.
const Birthdate = "1994-08-21"

// RegisterUser returns a valid password registration for username.
func RegisterUser(username string) *domain.RegisterUserRequest {
	return &domain.RegisterUserRequest{
		Email:     username + "@example.com",
		Password:  Password,
		Username:  username,
		Name:      "Test",
		LastName:  "User",
		Birthdate: Birthdate,
	}
}

// User returns an unsaved account; hash is stored as the password digest
// when not empty.
func User(username, hash string) *domain.User {
	birthdate := time.Date(1994, 8, 21, 0, 0, 0, 0, time.UTC)
	u := &domain.User{
		Username:  username,
		Email:     username + "@example.com",
		Name:      "Test",
		LastName:  "User",
		Birthdate: &birthdate,
	}
	if hash != "" {
		u.PasswordHash = &hash
	}
	return u
}

// Users returns count unsaved accounts named user00, user01 and so on.
// Every fifth account is blocked.
func Users(count int) []*domain.User {
	users := make([]*domain.User, count)
	for i := range users {
		users[i] = User(fmt.Sprintf("user%02d", i), "")
		users[i].IsBlocked = i%5 == 0
	}
	return users
}

// Admin returns an unsaved administrator.
func Admin(username, hash string) *domain.Admin {
	return &domain.Admin{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
	}
}

// AuditLog returns an unsaved audit entry of a user actor.
func AuditLog(userID int64, action string) *domain.AuditLog {
	ip := "192.168.1.1"
	return &domain.AuditLog{
		ActorType:    string(domain.PayloadUser),
		ActorID:      fmt.Sprintf("%d", userID),
		Action:       action,
		ResourceType: domain.AuditResourceTypeUser,
		ResourceID:   fmt.Sprintf("%d", userID),
		Details:      []byte(`{}`),
		IPAddress:    &ip,
	}
}
