package keyValue

import (
	"database/sql"
	"errors"

	"go.uber.org/zap"
)

type sqlStore struct {
	db     *sql.DB
	sqlite bool
	sugar  *zap.SugaredLogger
}

func (s *sqlStore) Get(key string) (string, error) {
	s.sugar.Debugf("Getting value of key [%s] from sql", key)

	var value string
	err := s.db.QueryRow("SELECT v FROM kv WHERE k = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	} else if err != nil {
		return "", err
	}

	return value, nil
}

func (s *sqlStore) Set(key string, value string) error {
	s.sugar.Debugf("Setting value of key [%s] in sql", key)

	var err error
	if s.sqlite {
		_, err = s.db.Exec("INSERT INTO kv (k, v) VALUES (?, ?) ON CONFLICT(k) DO UPDATE SET v = excluded.v", key, value)
	} else {
		_, err = s.db.Exec("INSERT INTO kv (k, v) VALUES (?, ?) ON DUPLICATE KEY UPDATE v = VALUES(v)", key, value)
	}
	return err
}

func (s *sqlStore) Delete(key string) error {
	s.sugar.Debugf("Deleting key [%s] from sql", key)

	_, err := s.db.Exec("DELETE FROM kv WHERE k = ?", key)
	return err
}
