package runner

const (
	DefaultMaxSteps = 5

	// MaxStepsFallback answers a turn that kept calling tools.
	MaxStepsFallback = "I could not finish answering within the allowed number of steps. Please send your last message again."
)

// Text fragments providers emit in place of content.
var noiseFragments = map[string]bool{
	"":     true,
	"None": true,
}
