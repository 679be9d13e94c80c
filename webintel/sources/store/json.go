package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"webintel/webintel/types"
	"webintel/webintel/utils/logging"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

type jsonDB struct {
	Companies map[string]*types.BusinessDetails           `json:"companies"`
	Questions map[string]map[string]types.QuestionAnswer `json:"questions"`
}

func emptyDB() *jsonDB {
	return &jsonDB{
		Companies: map[string]*types.BusinessDetails{},
		Questions: map[string]map[string]types.QuestionAnswer{},
	}
}

// JSONStore keeps everything in one JSON file. Every read loads the whole
// file and every write rewrites it through a temp file and rename. mu
// serializes read-modify-write cycles within the process.
type JSONStore struct {
	path   string
	mu     sync.RWMutex
	logger *logging.Loggers
}

// NewJSONStore creates the directory and an empty database file if missing.
func NewJSONStore(path string, logger *logging.Loggers) (*JSONStore, error) {
	s := &JSONStore{path: path, logger: logger}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, eris.Wrapf(err, "create store directory for %s", path)
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := s.save(emptyDB()); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// load treats an unreadable or corrupt file as empty.
func (s *JSONStore) load() *jsonDB {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.logger.Error.Error("error loading database", zap.String("path", s.path), zap.Error(err))
		return emptyDB()
	}
	db := emptyDB()
	if err := json.Unmarshal(data, db); err != nil {
		s.logger.Error.Error("error loading database", zap.String("path", s.path), zap.Error(err))
		return emptyDB()
	}
	if db.Companies == nil {
		db.Companies = map[string]*types.BusinessDetails{}
	}
	if db.Questions == nil {
		db.Questions = map[string]map[string]types.QuestionAnswer{}
	}
	return db
}

func (s *JSONStore) save(db *jsonDB) error {
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return eris.Wrap(err, "encode database")
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".db-*.json")
	if err != nil {
		return eris.Wrap(err, "create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return eris.Wrap(err, "write temp file")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return eris.Wrap(err, "sync temp file")
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrap(err, "close temp file")
	}
	return eris.Wrap(os.Rename(tmp.Name(), s.path), "replace database file")
}

func (s *JSONStore) update(fn func(db *jsonDB)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	db := s.load()
	fn(db)
	return s.save(db)
}

func (s *JSONStore) GetCompany(ctx context.Context, url string) (*types.BusinessDetails, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load().Companies[url], nil
}

func (s *JSONStore) SaveCompany(ctx context.Context, url string, details *types.BusinessDetails) error {
	return s.update(func(db *jsonDB) {
		db.Companies[url] = details
	})
}

func (s *JSONStore) GetAnswer(ctx context.Context, url, question string) (*types.QuestionAnswer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ans, ok := s.load().Questions[url][question]
	if !ok {
		return nil, nil
	}
	return &ans, nil
}

func (s *JSONStore) SaveAnswer(ctx context.Context, url, question string, answer types.QuestionAnswer) error {
	return s.update(func(db *jsonDB) {
		if db.Questions[url] == nil {
			db.Questions[url] = map[string]types.QuestionAnswer{}
		}
		db.Questions[url][question] = answer
	})
}

func (s *JSONStore) Exists(ctx context.Context, url string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.load().Companies[url]
	return ok, nil
}

func (s *JSONStore) Close() error { return nil }
