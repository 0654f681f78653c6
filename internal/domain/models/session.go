package models

// Session — аутентифицированная личность запущенного клиента.
type Session struct {
	UserID   int64
	Username string
	Token    string
}

// Valid — сессия действительна, только если заданы все три поля.
func (s Session) Valid() bool {
	return s.UserID > 0 && s.Username != "" && s.Token != ""
}
