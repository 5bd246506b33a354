package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new projects
	DefaultKerfWidth float64  `json:"default_kerf_width"`
	DefaultPriority  Priority `json:"default_priority"` // Priority given to sheets imported without one

	// Application preferences
	ReportTitle    string   `json:"report_title"` // Heading used in PDF and HTML reports
	RecentProjects []string `json:"recent_projects"`
}

// DefaultAppConfig returns an AppConfig populated with defaults matching
// DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultKerfWidth: defaults.KerfWidth,
		DefaultPriority:  PriorityNormal,
		ReportTitle:      "Cutting Plan",
		RecentProjects:   []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a CutSettings struct.
func (c AppConfig) ApplyToSettings(s *CutSettings) {
	s.KerfWidth = c.DefaultKerfWidth
}

// maxRecentProjects bounds the recent project list.
const maxRecentProjects = 10

// AddRecentProject moves path to the front of the recent list, dropping
// duplicates and trimming the list to its maximum length.
func (c *AppConfig) AddRecentProject(path string) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentProjects {
		recent = recent[:maxRecentProjects]
	}
	c.RecentProjects = recent
}
