package models

type User struct {
	BaseModel
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	FullName     string   `gorm:"not null" json:"fullName"`
	Role         UserRole `gorm:"type:varchar(20);not null" json:"role"`
	IsActive     bool     `gorm:"default:true" json:"isActive"`

	// Relations
	Applications []PassApplication `gorm:"foreignKey:UserID" json:"-"`
}

// UserSummary - краткая карточка пользователя, прикрепляемая к заявкам и проездным
type UserSummary struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// Summary возвращает краткую карточку пользователя
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		FullName: u.FullName,
		Email:    u.Email,
	}
}
