package models

import "time"

// BusPass создается ровно один раз, только как следствие одобрения заявки
type BusPass struct {
	BaseModel
	ApplicationID string    `gorm:"type:uuid;not null;uniqueIndex" json:"applicationId"`
	PassNumber    string    `gorm:"uniqueIndex;not null" json:"passNumber"`
	ValidFrom     time.Time `gorm:"not null" json:"validFrom"`
	ValidUntil    time.Time `gorm:"not null" json:"validUntil"`
	IsActive      bool      `gorm:"default:true" json:"isActive"`
	QRCode        string    `json:"qrCode,omitempty"`

	Application *PassApplication `gorm:"foreignKey:ApplicationID" json:"application,omitempty"`
}
