package model

import "errors"

// Rect is the anchor rectangle of a comment in document-page coordinates.
// The geometry is opaque to the server, it is stored and echoed back as-is.
type Rect struct {
	X      float64 `json:"x" form:"x"`
	Y      float64 `json:"y" form:"y"`
	Width  float64 `json:"width" form:"width"`
	Height float64 `json:"height" form:"height"`
}

func (r Rect) Validate() error {
	if r.X <= 0 || r.Y <= 0 || r.Width <= 0 || r.Height <= 0 {
		return errors.New("rect must have positive x, y, width and height")
	}
	return nil
}

type Comment struct {
	BaseModel

	ProjectID uint    `gorm:"not null;index" json:"-"`
	Project   Project `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	// ParentID links a reply to the comment it answers. Replies of replies
	// are allowed, so threads form a tree of unbounded depth.
	ParentID *uint    `gorm:"index" json:"parent_id"`
	Parent   *Comment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Text string `gorm:"type:text;not null" json:"text"`

	RectX      float64 `gorm:"type:double precision;not null" json:"-"`
	RectY      float64 `gorm:"type:double precision;not null" json:"-"`
	RectWidth  float64 `gorm:"type:double precision;not null" json:"-"`
	RectHeight float64 `gorm:"type:double precision;not null" json:"-"`

	Color    string `gorm:"type:varchar(20);not null" json:"color"`
	Approved bool   `gorm:"type:boolean;default:false;not null" json:"approved"`
	Page     uint   `gorm:"type:integer;default:1;not null" json:"page"`
}

func (c Comment) TableName() string {
	return "comments"
}

func (c Comment) Rect() Rect {
	return Rect{X: c.RectX, Y: c.RectY, Width: c.RectWidth, Height: c.RectHeight}
}

func (c *Comment) SetRect(r Rect) {
	c.RectX = r.X
	c.RectY = r.Y
	c.RectWidth = r.Width
	c.RectHeight = r.Height
}
