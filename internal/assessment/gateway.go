package assessment

import "context"

// Gateway is the external generative-language-model endpoint. Implementations
// are expected to handle their own retry and timeout policy and to surface
// failures as *GatewayError.
type Gateway interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
