package database

import (
	"chatclone-backend/internal/hub"
	"chatclone-backend/internal/models"
	"math/rand/v2"
	"time"
)

const inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const inviteCodeLength = 6

// CreateInvite generates a short random code for a server. Codes are not
// checked against existing ones, at this scale a collision is vanishingly
// unlikely.
func (db *Database) CreateInvite(serverID int64, createdBy int64) (models.Invite, error) {
	code := make([]byte, inviteCodeLength)
	for i := range code {
		code[i] = inviteCodeAlphabet[rand.IntN(len(inviteCodeAlphabet))]
	}

	invite := models.Invite{
		Code:      string(code),
		ServerID:  serverID,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UnixMilli(),
		Uses:      0,
	}

	invites := readList[models.Invite](db, invitesKey)
	invites = append(invites, invite)

	err := writeList(db, invitesKey, invites)
	if err != nil {
		return models.Invite{}, err
	}

	return invite, nil
}

func (db *Database) InviteByCode(code string) (models.Invite, bool) {
	for _, invite := range readList[models.Invite](db, invitesKey) {
		if invite.Code == code {
			return invite, true
		}
	}
	return models.Invite{}, false
}

// UseInvite joins the user to the invite's server. Joining is idempotent, a
// user already in the member snapshot isn't added again, but the use counter
// counts every redemption including repeats. The found flag is false when
// the invite, server or user can't be resolved.
func (db *Database) UseInvite(code string, userID int64) (models.Server, bool, error) {
	invites := readList[models.Invite](db, invitesKey)

	inviteIndex := -1
	for i := range invites {
		if invites[i].Code == code {
			inviteIndex = i
			break
		}
	}
	if inviteIndex == -1 {
		return models.Server{}, false, nil
	}

	server, found := db.Server(invites[inviteIndex].ServerID)
	if !found {
		return models.Server{}, false, nil
	}

	user, found := db.User(userID)
	if !found {
		return models.Server{}, false, nil
	}

	alreadyMember := false
	for _, member := range server.Members {
		if member.ID == userID {
			alreadyMember = true
			break
		}
	}

	if !alreadyMember {
		server.Members = append(server.Members, user.Snapshot())

		// written directly instead of through SaveServer so the join and the
		// counter bump below come with a single notification
		servers := db.Servers()
		for i := range servers {
			if servers[i].ID == server.ID {
				servers[i] = server
				break
			}
		}

		err := writeList(db, serversKey, servers)
		if err != nil {
			return models.Server{}, false, err
		}
	}

	invites[inviteIndex].Uses++
	err := writeList(db, invitesKey, invites)
	if err != nil {
		return models.Server{}, false, err
	}

	db.emitter.Emit(hub.Event{Type: hub.ServersUpdated})
	return server, true, nil
}
