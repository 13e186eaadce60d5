package models

// UserSettings is the per-user settings singleton.
type UserSettings struct {
	CalLimit float64 `json:"calLimit"`
}

func (s UserSettings) Normalize() UserSettings {
	s.CalLimit = NonNegative(s.CalLimit)
	return s
}
