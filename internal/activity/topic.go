package activity

// Topic groups related activities on the home menu.
type Topic string

const (
	TopicMultDiv     Topic = "multiplication-and-division"
	TopicDecimals    Topic = "decimals"
	TopicTime        Topic = "time"
	TopicData        Topic = "data"
	TopicGeometry    Topic = "geometry-and-measurement"
	TopicNumberSense Topic = "number-sense"
)

// AllTopics returns all topics in display order.
func AllTopics() []Topic {
	return []Topic{
		TopicMultDiv,
		TopicDecimals,
		TopicTime,
		TopicData,
		TopicGeometry,
		TopicNumberSense,
	}
}

// DisplayName returns a human-readable name for a topic.
func (t Topic) DisplayName() string {
	switch t {
	case TopicMultDiv:
		return "Multiplication & Division"
	case TopicDecimals:
		return "Decimals"
	case TopicTime:
		return "Time"
	case TopicData:
		return "Data"
	case TopicGeometry:
		return "Geometry & Measurement"
	case TopicNumberSense:
		return "Number Sense"
	default:
		return string(t)
	}
}
