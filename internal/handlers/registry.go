package handlers

// AppHandlers holds every HTTP handler of the application.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	ProfileHandler      *ProfileHandler
	SensorHandler       *SensorHandler
	ReadingHandler      *ReadingHandler
	ReportHandler       *ReportHandler
	NotificationHandler *NotificationHandler
	SettingsHandler     *SettingsHandler
	GeocodeHandler      *GeocodeHandler
}
