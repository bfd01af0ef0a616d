package database

import (
	"chatclone-backend/internal/hub"
	"chatclone-backend/internal/models"
	"strings"
)

func (db *Database) Users() []models.User {
	return readList[models.User](db, usersKey)
}

// User looks up a user by id, the second return value reports whether it was
// found.
func (db *Database) User(id int64) (models.User, bool) {
	for _, user := range db.Users() {
		if user.ID == id {
			return user, true
		}
	}
	return models.User{}, false
}

// SaveUser upserts by id. An existing record is replaced in place so the
// collection keeps its order, a new one is appended.
func (db *Database) SaveUser(user models.User) error {
	users := db.Users()

	replaced := false
	for i := range users {
		if users[i].ID == user.ID {
			users[i] = user
			replaced = true
			break
		}
	}
	if !replaced {
		users = append(users, user)
	}

	err := writeList(db, usersKey, users)
	if err != nil {
		return err
	}

	db.emitter.Emit(hub.Event{Type: hub.UsersUpdated})
	return nil
}

// FindUserByEmail matches case-insensitively, emails are unique.
func (db *Database) FindUserByEmail(email string) (models.User, bool) {
	for _, user := range db.Users() {
		if strings.EqualFold(user.Email, email) {
			return user, true
		}
	}
	return models.User{}, false
}

// FindUserByTag matches the username case-insensitively and the 4-digit
// discriminator exactly.
func (db *Database) FindUserByTag(username string, discriminator string) (models.User, bool) {
	for _, user := range db.Users() {
		if strings.EqualFold(user.UserName, username) && user.Discriminator == discriminator {
			return user, true
		}
	}
	return models.User{}, false
}
