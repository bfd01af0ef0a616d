package keyValue

import (
	"chatclone-backend/internal/models"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Store is the flat key-value layer every collection is serialized into.
// Get returns "" for an absent key instead of an error.
type Store interface {
	Get(key string) (string, error)
	Set(key string, value string) error
	Delete(key string) error
}

// Setup picks the backing store: redis when a client was connected, sqlite
// when self-contained, mysql/mariadb otherwise.
func Setup(cfg *models.ConfigFile, sugar *zap.SugaredLogger, redisClient *redis.Client) (Store, error) {
	if redisClient != nil {
		fmt.Println("Using redis as key-value store...")
		return &redisStore{client: redisClient, sugar: sugar}, nil
	}

	if cfg.SelfContained {
		fmt.Println("Connecting to key-value store sqlite...")
	} else {
		fmt.Println("Connecting to key-value store mysql/mariadb...")
	}

	return setupSql(cfg, sugar)
}

func setupSql(cfg *models.ConfigFile, sugar *zap.SugaredLogger) (Store, error) {
	var db *sql.DB
	var err error

	if cfg.SelfContained {
		db, err = sql.Open("sqlite", "./keyvalue.db")
		if err != nil {
			return nil, err
		}

		// there can be sqlite busy errors if this is not set to 1
		db.SetMaxOpenConns(1)

		err = setPragmaValues(db)
		if err != nil {
			return nil, err
		}
	} else {
		db, err = sql.Open("mysql", fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&timeout=10s", cfg.DbUser, cfg.DbPassword, cfg.DbAddress, cfg.DbPort, cfg.DbDatabase))
		if err != nil {
			return nil, err
		}

		db.SetMaxOpenConns(10)
	}

	_, err = db.Exec(`
			CREATE TABLE IF NOT EXISTS kv (
				k VARCHAR(512) PRIMARY KEY,
				v TEXT NOT NULL
			);
		`)
	if err != nil {
		return nil, err
	}

	return &sqlStore{db: db, sqlite: cfg.SelfContained, sugar: sugar}, nil
}

func setPragmaValues(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return err
	}

	// these next 2 extremely speed up performance of sqlite
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return err
	}

	if _, err := db.Exec("PRAGMA synchronous = normal"); err != nil {
		return err
	}

	return nil
}
