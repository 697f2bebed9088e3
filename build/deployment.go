package build

// DeploymentType selects how sub loggers are handed out. It is fixed at
// compile time with the dev build tag.
type DeploymentType byte

const (
	// Development builds let unit tests send every subsystem to stdout
	// when built with the stdlog tag.
	Development DeploymentType = iota

	// Production builds only log through the loggers handed to
	// NewSubLogger by the embedding process.
	Production
)

// String returns the name of the deployment type.
func (b DeploymentType) String() string {
	switch b {
	case Development:
		return "development"
	case Production:
		return "production"
	default:
		return "unknown"
	}
}
