package entity

// CompletionPurpose labels what a completion is used for
type CompletionPurpose string

const (
	CompletionPurposeQuestions CompletionPurpose = "questions"
	CompletionPurposeProfile   CompletionPurpose = "profile"
)

// CompletionRequest is the prompt-in side of the text-completion capability
type CompletionRequest struct {
	Purpose     CompletionPurpose
	Prompt      string
	MaxTokens   int
	Temperature float32
}

// Bedrock-style message body used by the HTTP completion gateway

type GatewayContent struct {
	Text string `json:"text"`
}

type GatewayMessage struct {
	Role    string           `json:"role"`
	Content []GatewayContent `json:"content"`
}

type GatewayInferenceConfig struct {
	MaxTokens   int     `json:"maxTokens"`
	Temperature float32 `json:"temperature"`
}

type GatewayCompletionRequest struct {
	Messages        []GatewayMessage       `json:"messages"`
	InferenceConfig GatewayInferenceConfig `json:"inferenceConfig"`
}

type GatewayCompletionResponse struct {
	Output struct {
		Message GatewayMessage `json:"message"`
	} `json:"output"`
}
