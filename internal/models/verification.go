package models

// ConductorScan - неизменяемая запись о проверке проездного кондуктором.
// Append-only: после создания записи не обновляются и не удаляются.
type ConductorScan struct {
	BaseModel
	PassID      string     `gorm:"type:uuid;not null;index" json:"passId"`
	ConductorID string     `gorm:"type:uuid;not null;index" json:"conductorId"`
	ScanMethod  ScanMethod `gorm:"type:varchar(10);not null" json:"scanMethod"`
	IsValid     bool       `gorm:"not null" json:"isValid"`
	Remarks     string     `json:"remarks"`

	Pass *BusPass `gorm:"foreignKey:PassID" json:"pass,omitempty"`
}
