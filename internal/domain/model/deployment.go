package model

// DeploymentState describes deployment progress reported by the external agent.
type DeploymentState string

const (
	DeploymentStateQueued   DeploymentState = "QUEUED"
	DeploymentStateStarting DeploymentState = "STARTING"
	DeploymentStateRunning  DeploymentState = "RUNNING"
	DeploymentStateFailed   DeploymentState = "FAILED"
)

// Deployment is the agent-side view of an order's deployment.
type Deployment struct {
	OrderID           string
	State             DeploymentState
	ExternalReference *string
}
