package domain

// CoachPreferences configures the adaptive coaching engine per profile.
type CoachPreferences struct {
	Enabled        bool
	Frequency      AnalysisFrequency
	Aggressiveness Aggressiveness
}

// DefaultPreferences returns the out-of-the-box coaching configuration.
func DefaultPreferences() CoachPreferences {
	return CoachPreferences{
		Enabled:        true,
		Frequency:      FrequencyDaily,
		Aggressiveness: AggressivenessBalanced,
	}
}
