package database

import (
	"chatclone-backend/internal/hub"
	"chatclone-backend/internal/models"
)

func (db *Database) Servers() []models.Server {
	return readList[models.Server](db, serversKey)
}

func (db *Database) Server(id int64) (models.Server, bool) {
	for _, server := range db.Servers() {
		if server.ID == id {
			return server, true
		}
	}
	return models.Server{}, false
}

// SaveServer upserts by id, same in-place replacement as SaveUser.
func (db *Database) SaveServer(server models.Server) error {
	servers := db.Servers()

	replaced := false
	for i := range servers {
		if servers[i].ID == server.ID {
			servers[i] = server
			replaced = true
			break
		}
	}
	if !replaced {
		servers = append(servers, server)
	}

	err := writeList(db, serversKey, servers)
	if err != nil {
		return err
	}

	db.emitter.Emit(hub.Event{Type: hub.ServersUpdated})
	return nil
}

// DeleteServer is a no-op when the id doesn't exist. Dangling invites and
// message logs are left behind, referential integrity is the caller's
// problem.
func (db *Database) DeleteServer(serverID int64) error {
	servers := db.Servers()

	remaining := make([]models.Server, 0, len(servers))
	for _, server := range servers {
		if server.ID != serverID {
			remaining = append(remaining, server)
		}
	}

	err := writeList(db, serversKey, remaining)
	if err != nil {
		return err
	}

	db.emitter.Emit(hub.Event{Type: hub.ServersUpdated})
	return nil
}
