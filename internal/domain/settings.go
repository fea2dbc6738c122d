package domain

// Settings is the process-wide notification configuration.
type Settings struct {
	Email               string `json:"email"`
	NotifyDays          int    `json:"notifyDays"`
	EnableNotifications bool   `json:"enableNotifications"`
	EnableAutoDelete    bool   `json:"enableAutoDelete"`
}

// DefaultSettings is what a fresh install reads before anything is saved.
func DefaultSettings() Settings {
	return Settings{
		Email:               "",
		NotifyDays:          30,
		EnableNotifications: true,
		EnableAutoDelete:    false,
	}
}

// SettingsPatch is both the persisted partial shape and a partial write.
// Absent keys stay nil and never override the layer underneath.
type SettingsPatch struct {
	Email               *string `json:"email,omitempty"`
	NotifyDays          *int    `json:"notifyDays,omitempty"`
	EnableNotifications *bool   `json:"enableNotifications,omitempty"`
	EnableAutoDelete    *bool   `json:"enableAutoDelete,omitempty"`
}

// Apply merges the non-nil fields of the patch onto s.
func (sp SettingsPatch) Apply(s *Settings) {
	if sp.Email != nil {
		s.Email = *sp.Email
	}
	if sp.NotifyDays != nil {
		s.NotifyDays = *sp.NotifyDays
	}
	if sp.EnableNotifications != nil {
		s.EnableNotifications = *sp.EnableNotifications
	}
	if sp.EnableAutoDelete != nil {
		s.EnableAutoDelete = *sp.EnableAutoDelete
	}
}
