package dialog

import "context"

// Hooks are optional lifecycle callbacks fired by the engine, used to wire
// logging and metrics without coupling the engine to either.
type Hooks struct {
	OnDialogBegin func(ctx context.Context, conversationID, name string)
	OnDialogEnd   func(ctx context.Context, conversationID, name string, status Status)
	OnPromptRetry func(ctx context.Context, conversationID, name string, kind PromptKind)
}

// Messages holds the user-facing texts emitted by the engine itself.
type Messages struct {
	Cancelled string
	Failed    string
}

// DefaultMessages returns the stock Portuguese engine messages.
func DefaultMessages() Messages {
	return Messages{
		Cancelled: "Tudo bem, operação cancelada.",
		Failed:    "Desculpe, algo deu errado. Tente novamente mais tarde.",
	}
}
