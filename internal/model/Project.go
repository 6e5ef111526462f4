package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Project struct {
	BaseModel
	Name string `gorm:"type:text;not null" json:"name"`

	// UUID is the client-facing identifier; the numeric id stays internal.
	UUID string `gorm:"type:text;not null;uniqueIndex" json:"uuid"`

	// PdfFilename is the generated object name in blob storage. It is
	// unique for the lifetime of the store and never reused.
	PdfFilename     string `gorm:"type:text;not null;uniqueIndex" json:"-"`
	PdfOriginalName string `gorm:"type:text;not null" json:"pdf_original_name"`

	Comments []Comment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) (err error) {
	if p.UUID == "" {
		// UUID version 4
		p.UUID = uuid.NewString()
	}
	return
}

func (p Project) TableName() string {
	return "projects"
}
