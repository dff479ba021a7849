package services

// Session is the part of a gin-contrib/sessions session the auth service
// needs. sessions.Session satisfies it.
type Session interface {
	Get(key interface{}) interface{}
	Set(key interface{}, val interface{})
	Delete(key interface{})
	Clear()
	Save() error
}

// SessionUserKey holds the logged-in user's id.
const SessionUserKey = "user_id"

func sessionUserID(sess Session) (uint, bool) {
	switch v := sess.Get(SessionUserKey).(type) {
	case uint:
		return v, v != 0
	case int:
		return uint(v), v > 0
	case int64:
		return uint(v), v > 0
	case uint64:
		return uint(v), v != 0
	case float64:
		// cookie codecs that go through JSON hand numbers back as float64
		return uint(v), v > 0
	default:
		return 0, false
	}
}
