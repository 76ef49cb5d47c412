package models

type PassApplication struct {
	BaseModel
	UserID        string            `gorm:"type:uuid;not null;index" json:"userId"`
	PassTypeID    string            `gorm:"type:uuid;not null;index" json:"passTypeId"`
	Status        ApplicationStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	PaymentStatus PaymentStatus     `gorm:"type:varchar(20);not null;default:'PENDING'" json:"paymentStatus"`

	// Relations: заявка - корень агрегата для документов, решения, платежа и проездного
	User      *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	PassType  *PassType     `gorm:"foreignKey:PassTypeID" json:"passType,omitempty"`
	Documents []Document    `gorm:"foreignKey:ApplicationID" json:"documents,omitempty"`
	Approval  *PassApproval `gorm:"foreignKey:ApplicationID" json:"approval,omitempty"`
	Payment   *Payment      `gorm:"foreignKey:ApplicationID" json:"payment,omitempty"`
	BusPass   *BusPass      `gorm:"foreignKey:ApplicationID" json:"busPass,omitempty"`
}

type Document struct {
	BaseModel
	ApplicationID string `gorm:"type:uuid;not null;index" json:"applicationId"`
	DocumentType  string `gorm:"not null" json:"documentType"`
	DocumentPath  string `gorm:"not null" json:"documentPath"`
}

// PassApproval - решение админа по заявке; на заявку существует максимум одна запись
type PassApproval struct {
	BaseModel
	ApplicationID string            `gorm:"type:uuid;not null;uniqueIndex" json:"applicationId"`
	AdminID       string            `gorm:"type:uuid;not null" json:"adminId"`
	Status        ApplicationStatus `gorm:"type:varchar(20);not null" json:"status"`
	Notes         string            `json:"notes"`
}
