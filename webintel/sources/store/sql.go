package store

import (
	"context"
	"encoding/json"

	"webintel/webintel/sources/psql"
	"webintel/webintel/sources/psql/dao"
	"webintel/webintel/types"

	"github.com/rotisserie/eris"
)

// SQLStore persists records as JSON text in gorm-managed tables.
type SQLStore struct {
	db        *psql.Database
	companies *dao.CompanyDAO
	questions *dao.QuestionDAO
}

func NewSQLStore(db *psql.Database) *SQLStore {
	return &SQLStore{
		db:        db,
		companies: dao.NewCompanyDAO(db.DB),
		questions: dao.NewQuestionDAO(db.DB),
	}
}

func (s *SQLStore) GetCompany(ctx context.Context, url string) (*types.BusinessDetails, error) {
	rec, err := s.companies.Get(ctx, url)
	if err != nil || rec == nil {
		return nil, eris.Wrap(err, "get company")
	}
	var details types.BusinessDetails
	if err := json.Unmarshal([]byte(rec.Data), &details); err != nil {
		return nil, eris.Wrapf(err, "decode company %s", url)
	}
	return &details, nil
}

func (s *SQLStore) SaveCompany(ctx context.Context, url string, details *types.BusinessDetails) error {
	data, err := json.Marshal(details)
	if err != nil {
		return eris.Wrap(err, "encode company")
	}
	return eris.Wrap(s.companies.Upsert(ctx, url, string(data)), "save company")
}

func (s *SQLStore) GetAnswer(ctx context.Context, url, question string) (*types.QuestionAnswer, error) {
	rec, err := s.questions.Get(ctx, url, question)
	if err != nil || rec == nil {
		return nil, eris.Wrap(err, "get answer")
	}
	var ans types.QuestionAnswer
	if err := json.Unmarshal([]byte(rec.Data), &ans); err != nil {
		return nil, eris.Wrap(err, "decode answer")
	}
	return &ans, nil
}

func (s *SQLStore) SaveAnswer(ctx context.Context, url, question string, answer types.QuestionAnswer) error {
	data, err := json.Marshal(answer)
	if err != nil {
		return eris.Wrap(err, "encode answer")
	}
	return eris.Wrap(s.questions.Upsert(ctx, url, question, string(data)), "save answer")
}

func (s *SQLStore) Exists(ctx context.Context, url string) (bool, error) {
	ok, err := s.companies.Exists(ctx, url)
	return ok, eris.Wrap(err, "company exists")
}

func (s *SQLStore) Close() error { return s.db.Close() }
