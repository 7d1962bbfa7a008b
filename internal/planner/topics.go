package planner

// Fixed topic labels for types that do not draw from a pool.
const (
	MockTopic   = "Full Mock Test"
	ReviewTopic = "Review Weaknesses & Feedback"

	// FocusPrefix starts a topic that was replaced by a weakness override.
	FocusPrefix = "Focus on: "
)

// TopicPools holds the topics each rotating session type draws from.
var TopicPools = map[SessionType][]string{
	TypePart1: {"Work & Studies", "Hometown", "Hobbies", "Travel", "Family", "Daily Routine"},
	TypePart2: {"Describe a person", "Describe a place", "Describe an object", "Describe an event"},
	TypePart3: {"Education", "Technology", "Environment", "Society", "Health"},
	TypeVocab: {"Education", "Environment", "Technology", "Business", "Travel"},
}

// Setup choices offered by the planner setup flow.
var (
	DurationChoices   = []int{15, 30, 45, 60}
	WeaknessChoices   = []string{"Fluency", "Vocabulary", "Grammar", "Pronunciation", "Coherence"}
	DefaultDuration   = 30
	DefaultTargetBand = 7.0
	MinTargetBand     = 5.0
	MaxTargetBand     = 9.0
)
