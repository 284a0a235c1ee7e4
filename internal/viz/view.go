package viz

import "strings"

// View is a named camera orientation, in degrees.
type View struct {
	Name      string
	Elevation float64
	Azimuth   float64
}

var (
	ViewIso   = View{Name: "iso", Elevation: 30, Azimuth: -60}
	ViewTop   = View{Name: "top", Elevation: 90, Azimuth: 0}
	ViewFront = View{Name: "front", Elevation: 0, Azimuth: 0}
	ViewSide  = View{Name: "side", Elevation: 0, Azimuth: -90}

	DefaultView = ViewIso

	Views = []View{ViewIso, ViewTop, ViewFront, ViewSide}
)

// GetView returns a view by name.
func GetView(name string) (View, bool) {
	for _, v := range Views {
		if strings.EqualFold(v.Name, name) {
			return v, true
		}
	}
	return View{}, false
}

// ViewNames lists the available views.
func ViewNames() []string {
	names := make([]string, len(Views))
	for i, v := range Views {
		names[i] = v.Name
	}
	return names
}

// NextView returns the view after name, wrapping around.
func NextView(name string) View {
	for i, v := range Views {
		if v.Name == name {
			return Views[(i+1)%len(Views)]
		}
	}
	return DefaultView
}
