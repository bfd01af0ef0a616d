package handlers

import (
	"chatclone-backend/internal/database"
	"chatclone-backend/internal/models"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

var sugar *zap.SugaredLogger
var db *database.Database

func Setup(isHttps bool, cfg *models.ConfigFile, _sugar *zap.SugaredLogger, _db *database.Database) error {
	sugar = _sugar
	db = _db

	r := chi.NewRouter()
	if cfg.PrintHttpRequests {
		r.Use(middleware.Logger)
	}

	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api", func(api chi.Router) {
		api.Get("/test", Test)

		api.Route("/auth", func(r chi.Router) {
			r.Post("/login", Login)
			r.Post("/register", Register)
			r.With(UserVerifier).Get("/isLoggedIn", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
		})

		api.Route("/user", func(r chi.Router) {
			r.Use(UserVerifier)
			r.Get("/fetch", GetUserInfo)
			r.Post("/update", UpdateUserInfo)
		})

		api.Route("/server", func(r chi.Router) {
			r.Use(UserVerifier)
			r.Post("/create", CreateServer)
			r.Get("/fetch", GetServerList)
			r.Post("/delete", DeleteServer)
			r.Post("/rename", RenameServer)
		})

		api.Route("/channel", func(r chi.Router) {
			r.Use(UserVerifier)
			r.Post("/create", CreateChannel)
		})

		api.Route("/friends", func(r chi.Router) {
			r.Use(UserVerifier)
			r.Get("/fetch", GetFriendList)
			r.Get("/requests", GetFriendRequests)
			r.Post("/request", SendFriendRequest)
			r.Post("/accept", AcceptFriendRequest)
			r.Post("/decline", DeclineFriendRequest)
		})

		api.Route("/invite", func(r chi.Router) {
			r.Use(UserVerifier)
			r.Post("/create", CreateInvite)
			r.Get("/fetch", GetInvite)
			r.Post("/use", UseInvite)
		})

		api.Route("/message", func(r chi.Router) {
			r.Use(UserVerifier)
			r.Post("/create", CreateMessage)
			r.Get("/fetch", GetMessageList)
		})

		api.Route("/upload", func(r chi.Router) {
			r.Use(UserVerifier)
			r.Post("/attachment", UploadAttachment)
		})
	})

	var websocketPath string

	if cfg.BehindNginx {
		websocketPath = "/ws/"
	} else {
		websocketPath = "/ws"
		r.Handle("/cdn/*", http.StripPrefix("/cdn/", http.FileServer(http.Dir("./public"))))
		r.Handle("/*", http.FileServer(http.Dir("./public/static")))
	}

	r.With(UserVerifier).Get(websocketPath, HandleWebSocket)

	address := fmt.Sprintf("%s:%s", cfg.Address, cfg.Port)

	if isHttps {
		return http.ListenAndServeTLS(address, cfg.TlsCert, cfg.TlsKey, r)
	}
	return http.ListenAndServe(address, r)
}
