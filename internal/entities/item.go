package entities

// Capability gates which actions may consume an item
type Capability string

// Item capabilities
const (
	CapabilityFeed     Capability = "feed"
	CapabilityZonewalk Capability = "zonewalk"
	CapabilityUseOnPet Capability = "use_on_pet"
)

// DeltaRange is an inclusive integer range
type DeltaRange struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// Item is a static catalog entry
type Item struct {
	ID      string   `yaml:"id" json:"id"`
	Name    string   `yaml:"name" json:"name"`
	Aliases []string `yaml:"aliases,omitempty" json:"aliases,omitempty"`

	// FeedDelta is the weight change range when the item is fed; nil for inedible items
	FeedDelta *DeltaRange  `yaml:"feed_delta,omitempty" json:"feed_delta,omitempty"`
	Uses      []Capability `yaml:"uses" json:"uses"`
}

// Can reports whether the item has the capability
func (i *Item) Can(c Capability) bool {
	for _, use := range i.Uses {
		if use == c {
			return true
		}
	}
	return false
}
