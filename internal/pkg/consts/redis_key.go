package consts

const (
	IMUserKey         = "im:user:"
	GiftPriceKey      = "gift:price:"
	IntimacyDirtyKey  = "im:intimacy:dirty"
	UserSimpleInfoKey = "user:simple:info:"
)
