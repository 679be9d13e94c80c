package dao

import (
	"context"
	"errors"
	"time"

	"webintel/webintel/sources/psql/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuestionDAO struct {
	DB *gorm.DB
}

func NewQuestionDAO(db *gorm.DB) *QuestionDAO {
	return &QuestionDAO{DB: db}
}

func (dao *QuestionDAO) Get(ctx context.Context, url, question string) (*models.QuestionRecord, error) {
	var rec models.QuestionRecord
	err := dao.DB.WithContext(ctx).Where("url = ? AND question = ?", url, question).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (dao *QuestionDAO) Upsert(ctx context.Context, url, question, data string) error {
	rec := models.QuestionRecord{URL: url, Question: question, Data: data, UpdatedAt: time.Now().UTC()}
	return dao.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "url"}, {Name: "question"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&rec).Error
}
