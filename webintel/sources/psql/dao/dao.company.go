package dao

import (
	"context"
	"errors"
	"time"

	"webintel/webintel/sources/psql/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CompanyDAO struct {
	DB *gorm.DB
}

func NewCompanyDAO(db *gorm.DB) *CompanyDAO {
	return &CompanyDAO{DB: db}
}

// Get returns nil, nil when url has no record.
func (dao *CompanyDAO) Get(ctx context.Context, url string) (*models.CompanyRecord, error) {
	var rec models.CompanyRecord
	err := dao.DB.WithContext(ctx).Where("url = ?", url).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (dao *CompanyDAO) Upsert(ctx context.Context, url, data string) error {
	rec := models.CompanyRecord{URL: url, Data: data, UpdatedAt: time.Now().UTC()}
	return dao.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "url"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&rec).Error
}

func (dao *CompanyDAO) Exists(ctx context.Context, url string) (bool, error) {
	var count int64
	err := dao.DB.WithContext(ctx).Model(&models.CompanyRecord{}).Where("url = ?", url).Count(&count).Error
	return count > 0, err
}
