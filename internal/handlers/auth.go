package handlers

import (
	"chatclone-backend/internal/jwt"
	"chatclone-backend/internal/models"
	"chatclone-backend/internal/snowflake"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"

	strvalidator "chatclone-backend/internal/validator"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

var validate = validator.New()

// default avatar colors cycled through at registration
var avatarColors = []string{
	"#5865F2", "#57F287", "#FEE75C", "#EB459E", "#ED4245", "#3BA55D", "#FAA61A",
}

func Login(w http.ResponseWriter, r *http.Request) {
	type Login struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var login Login
	err := json.NewDecoder(r.Body).Decode(&login)
	if err != nil {
		sugar.Debug(err)
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	user, found := db.FindUserByEmail(login.Email)
	if !found {
		http.Error(w, "", http.StatusUnauthorized)
		return
	}

	err = bcrypt.CompareHashAndPassword(user.Password, []byte(login.Password))
	if err != nil {
		sugar.Debug(err)
		http.Error(w, "", http.StatusUnauthorized)
		return
	}

	cookie, err := jwt.CreateToken(r.URL.Query().Get("rememberMe") == "true", user.ID)
	if err != nil {
		sugar.Debug(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &cookie)

	err = json.NewEncoder(w).Encode(user.Snapshot())
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
}

func Register(w http.ResponseWriter, r *http.Request) {
	var registerErrors = make(map[string]string)

	type Registration struct {
		Email           string `json:"email" validate:"email"`
		Username        string `json:"username" validate:"min=2,max=32"`
		DisplayName     string `json:"displayName" validate:"max=64"`
		Password        string `json:"password" validate:"eqfield=ConfirmPassword,min=6"`
		ConfirmPassword string `json:"confirmPassword"`
	}

	var registration Registration
	err := json.NewDecoder(r.Body).Decode(&registration)
	if err != nil {
		sugar.Debug(err)
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	err = validate.Struct(registration)
	if err != nil {
		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) {
			for _, e := range validateErrs {
				registerErrors[e.Field()] = e.Tag()
			}
		} else {
			sugar.Error(err)
			http.Error(w, "", http.StatusInternalServerError)
			return
		}
	}

	if err := strvalidator.Email(registration.Email); err != nil {
		registerErrors["Email"] = err.Error()
	}
	if err := strvalidator.Password(registration.Password); err != nil {
		registerErrors["Password"] = err.Error()
	}
	if err := strvalidator.Username(registration.Username); err != nil {
		registerErrors["Username"] = err.Error()
	}
	if _, taken := db.FindUserByEmail(registration.Email); taken {
		registerErrors["Email"] = "taken"
	}

	if len(registerErrors) != 0 {
		// sends back 400 with the form field errors
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(registerErrors)
		if encodeErr != nil {
			sugar.Error(encodeErr)
			http.Error(w, "", http.StatusInternalServerError)
		}
		return
	}

	discriminator, err := pickDiscriminator(registration.Username)
	if err != nil {
		sugar.Error(err)
		registerErrors["Username"] = "taken"
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(registerErrors)
		if encodeErr != nil {
			sugar.Error(encodeErr)
			http.Error(w, "", http.StatusInternalServerError)
		}
		return
	}

	userID, err := snowflake.Generate()
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	passwordBytes, err := bcrypt.GenerateFromPassword([]byte(registration.Password), 12)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	displayName := registration.DisplayName
	if displayName == "" {
		displayName = registration.Username
	}

	user := models.User{
		ID:            userID,
		Email:         registration.Email,
		UserName:      registration.Username,
		Discriminator: discriminator,
		DisplayName:   displayName,
		Password:      passwordBytes,
		AvatarColor:   avatarColors[rand.IntN(len(avatarColors))],
		Status:        models.StatusOnline,
		JoinedAt:      time.Now().UnixMilli(),
	}

	err = db.SaveUser(user)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	cookie, err := jwt.CreateToken(false, user.ID)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &cookie)

	err = json.NewEncoder(w).Encode(user.Snapshot())
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
}

// pickDiscriminator rolls random 4-digit tags until one is free for the
// username. Gives up after a while so a fully crowded username errors
// instead of looping forever.
func pickDiscriminator(username string) (string, error) {
	for range 100 {
		discriminator := fmt.Sprintf("%04d", rand.IntN(10000))
		if _, taken := db.FindUserByTag(username, discriminator); !taken {
			return discriminator, nil
		}
	}
	return "", fmt.Errorf("no free discriminator for username [%s]", username)
}
