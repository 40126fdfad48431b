package ports

// ApplicationPorts aggregates all ports for dependency injection
type ApplicationPorts struct {
	// Weather
	WeatherProvider WeatherProvider
	LookupMetrics   LookupMetrics

	// Widget sessions
	SessionMetrics SessionMetrics

	// Infrastructure
	ConfigProvider ConfigProvider
	Logger         Logger
}
