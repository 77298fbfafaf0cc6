package storage

// The online set lives in Redis so presence survives a backend restart only
// as long as the sockets themselves do. All callers treat these as
// best-effort: a Redis failure is logged, never fatal.

const onlineUsersKey = "online_users"

func (s *Service) SetUserOnline(userID string) error {
	return s.Redis.SAdd(s.Ctx, onlineUsersKey, userID).Err()
}

func (s *Service) SetUserOffline(userID string) error {
	return s.Redis.SRem(s.Ctx, onlineUsersKey, userID).Err()
}

func (s *Service) IsUserOnline(userID string) (bool, error) {
	return s.Redis.SIsMember(s.Ctx, onlineUsersKey, userID).Result()
}
