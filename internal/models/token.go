package models

// AuthToken is the persisted bearer token for a user. Exactly one row exists
// per user: a re-login overwrites the Token column of the existing row rather
// than inserting a second one. A request is authorized only when its bearer
// token both carries a valid signature and matches a row here literally.
type AuthToken struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	Token  string `gorm:"index;not null" json:"token"`
	Secret string `gorm:"not null" json:"-"`
	UserID uint   `gorm:"uniqueIndex;not null" json:"user_id"`
}

// TableName keeps the table apart from any framework "tokens" naming.
func (AuthToken) TableName() string {
	return "auth_tokens"
}
