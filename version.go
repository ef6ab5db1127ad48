package modarc

import "fmt"

// Semantic version components, set here and overridable at link time.
var (
	major = 0
	minor = 3
	patch = 0
)

func StringVersion() string {
	return fmt.Sprintf("%d.%d.%d", major, minor, patch)
}
