package models

import "time"

// CompanyRecord stores one analyzed company as JSON, keyed by URL.
type CompanyRecord struct {
	URL       string    `gorm:"column:url;primaryKey"`
	Data      string    `gorm:"column:data;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (CompanyRecord) TableName() string { return "companies" }

// QuestionRecord stores one answer under (url, question).
type QuestionRecord struct {
	URL       string    `gorm:"column:url;primaryKey"`
	Question  string    `gorm:"column:question;primaryKey"`
	Data      string    `gorm:"column:data;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (QuestionRecord) TableName() string { return "question_answers" }
