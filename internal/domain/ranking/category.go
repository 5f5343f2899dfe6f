package ranking

import "strings"

// Category groups sport types that compete on the same boards.
type Category struct {
	Name       string   `json:"name"`
	Label      string   `json:"label"`
	SportTypes []string `json:"sport_types"`
}

var DefaultCategories = []Category{
	{Name: "running", Label: "Running (Trail + Running)", SportTypes: []string{"Trail", "Run"}},
	{Name: "cycling", Label: "Cycling (Gravel, Road, Mountain Bike, Virtual)", SportTypes: []string{"Gravel Ride", "Ride", "MountainBikeRide", "VirtualRide"}},
	{Name: "swimming", Label: "Swimming", SportTypes: []string{"Swim"}},
}

func CategoryByName(name string) (Category, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, item := range DefaultCategories {
		if item.Name == name {
			return item, true
		}
	}
	return Category{}, false
}
