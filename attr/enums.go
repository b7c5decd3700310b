package attr

// LightSize controls the apparent size of a virtual area light.
type LightSize int

const (
	SizeSmall LightSize = iota
	SizeMedium
	SizeLarge
)

// LightSizes lists the members in their canonical sampling order.
var LightSizes = []LightSize{SizeSmall, SizeMedium, SizeLarge}

func (s LightSize) String() string {
	switch s {
	case SizeSmall:
		return "SMALL"
	case SizeMedium:
		return "MEDIUM"
	case SizeLarge:
		return "LARGE"
	}
	return "UNKNOWN"
}

// LightDirection is the compass heading of a virtual light relative to the
// camera, plus the two vertical extremes.
type LightDirection int

const (
	DirBackRight LightDirection = iota
	DirBackLeft
	DirBack
	DirRight
	DirLeft
	DirFrontRight
	DirFrontLeft
	DirFront
	DirTop
	DirBottom
)

var LightDirections = []LightDirection{
	DirBackRight, DirBackLeft, DirBack, DirRight, DirLeft,
	DirFrontRight, DirFrontLeft, DirFront, DirTop, DirBottom,
}

func (d LightDirection) String() string {
	switch d {
	case DirBackRight:
		return "BACK_RIGHT"
	case DirBackLeft:
		return "BACK_LEFT"
	case DirBack:
		return "BACK"
	case DirRight:
		return "RIGHT"
	case DirLeft:
		return "LEFT"
	case DirFrontRight:
		return "FRONT_RIGHT"
	case DirFrontLeft:
		return "FRONT_LEFT"
	case DirFront:
		return "FRONT"
	case DirTop:
		return "TOP"
	case DirBottom:
		return "BOTTOM"
	}
	return "UNKNOWN"
}

// LightIntensity is a size and distance independent brightness level.
type LightIntensity int

const (
	IntensityLow LightIntensity = iota
	IntensityMedium
	IntensityHigh
)

var LightIntensities = []LightIntensity{IntensityLow, IntensityMedium, IntensityHigh}

func (i LightIntensity) String() string {
	switch i {
	case IntensityLow:
		return "LOW"
	case IntensityMedium:
		return "MEDIUM"
	case IntensityHigh:
		return "HIGH"
	}
	return "UNKNOWN"
}

// BlackbodyLightColor is a light color expressed as a blackbody temperature
// band.
type BlackbodyLightColor int

const (
	ColorWarm BlackbodyLightColor = iota
	ColorNeutral
	ColorCool
)

var BlackbodyLightColors = []BlackbodyLightColor{ColorWarm, ColorNeutral, ColorCool}

func (c BlackbodyLightColor) String() string {
	switch c {
	case ColorWarm:
		return "WARM"
	case ColorNeutral:
		return "NEUTRAL"
	case ColorCool:
		return "COOL"
	}
	return "UNKNOWN"
}

// The remaining enums tag HDRI assets with the lighting conditions they
// were captured under. They come from the Poly Haven category metadata and
// feed text-description generation rather than sampling.

type TimeOfDay int

const (
	SunriseSunset TimeOfDay = iota
	MorningAfternoon
	Midday
	Night
)

var TimesOfDay = []TimeOfDay{SunriseSunset, MorningAfternoon, Midday, Night}

func (t TimeOfDay) String() string {
	switch t {
	case SunriseSunset:
		return "SUNRISE_SUNSET"
	case MorningAfternoon:
		return "MORNING_AFTERNOON"
	case Midday:
		return "MIDDAY"
	case Night:
		return "NIGHT"
	}
	return "UNKNOWN"
}

type IndoorOutdoor int

const (
	Indoor IndoorOutdoor = iota
	Outdoor
)

func (v IndoorOutdoor) String() string {
	if v == Indoor {
		return "INDOOR"
	}
	return "OUTDOOR"
}

type NaturalArtificial int

const (
	Natural NaturalArtificial = iota
	Artificial
)

func (v NaturalArtificial) String() string {
	if v == Natural {
		return "NATURAL"
	}
	return "ARTIFICIAL"
}

type ContrastLevel int

const (
	ContrastLow ContrastLevel = iota
	ContrastMedium
	ContrastHigh
)

func (c ContrastLevel) String() string {
	switch c {
	case ContrastLow:
		return "LOW"
	case ContrastMedium:
		return "MEDIUM"
	case ContrastHigh:
		return "HIGH"
	}
	return "UNKNOWN"
}
