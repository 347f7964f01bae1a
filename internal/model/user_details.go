package model

// UserDetail 展示资料，余额等钱包字段都在 users 主表上
type UserDetail struct {
	UserID     uint64  `gorm:"primaryKey"`
	Nickname   string  `gorm:"type:varchar(50);not null"`
	AvatarURL  string  `gorm:"type:varchar(512);column:avatar_url;default:'default_avatar.png'"`
	Bio        *string `gorm:"type:varchar(255);default:''"`
	Region     *string `gorm:"type:varchar(255)"`
	Birthday   *string `gorm:"type:date"`
	Occupation *string `gorm:"type:varchar(50)"`
	Height     *int    `gorm:"comment:身高(cm)"`
}

func (UserDetail) TableName() string {
	return "user_detail"
}
