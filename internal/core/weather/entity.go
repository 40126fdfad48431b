package weather

import (
	"fmt"
	"math"
	"time"
)

// Icon names one of the display assets a condition code maps to
type Icon string

const (
	IconClear   Icon = "clear"
	IconCloud   Icon = "cloud"
	IconDrizzle Icon = "drizzle"
	IconRain    Icon = "rain"
	IconSnow    Icon = "snow"
	IconMist    Icon = "mist"
)

// FallbackIcon is shown for any condition code missing from the icon table
const FallbackIcon = IconClear

// Icons lists every asset the icon table can produce
var Icons = []Icon{IconClear, IconCloud, IconDrizzle, IconRain, IconSnow, IconMist}

// iconTable maps OpenWeatherMap condition codes to display assets.
// It is built once at package init and never mutated.
var iconTable = map[string]Icon{
	"01d": IconClear,
	"01n": IconClear,
	"02d": IconCloud,
	"02n": IconCloud,
	"03d": IconDrizzle,
	"03n": IconDrizzle,
	"04d": IconDrizzle,
	"04n": IconDrizzle,
	"09d": IconRain,
	"09n": IconRain,
	"10d": IconRain,
	"10n": IconRain,
	"13d": IconSnow,
	"13n": IconSnow,
	"50d": IconMist,
	"50n": IconMist,
}

// IconTable returns a copy of the condition code to icon mapping
func IconTable() map[string]Icon {
	table := make(map[string]Icon, len(iconTable))
	for code, icon := range iconTable {
		table[code] = icon
	}
	return table
}

// IconFor resolves a condition code through the icon table
func IconFor(code string) Icon {
	if icon, ok := iconTable[code]; ok {
		return icon
	}
	return FallbackIcon
}

// AssetFile returns the asset file name served for the icon
func (i Icon) AssetFile() string {
	return string(i) + ".svg"
}

// Record is the display-ready weather for one city at one point in time
type Record struct {
	Temperature int
	City        string
	Country     string
	Latitude    float64
	Longitude   float64
	Humidity    int
	WindSpeed   float64
	Icon        Icon
	Condition   string
	FetchedAt   time.Time
}

// LookupRequest represents a request for current weather.
// The city is passed upstream verbatim, an empty string included.
type LookupRequest struct {
	City string
}

// TruncateTemperature drops the fractional part, rounding toward zero
func TruncateTemperature(celsius float64) int {
	return int(math.Trunc(celsius))
}

// String returns a string representation of the record
func (r *Record) String() string {
	return fmt.Sprintf("%s, %s: %d°C, %d%% humidity, %.2f km/h wind, %s",
		r.City, r.Country, r.Temperature, r.Humidity, r.WindSpeed, r.Icon)
}
