package entities

// Фиксированные реплики помощника Nart. Приветствие одновременно служит
// признаком того, что помощник еще не отвечал на текущий черновик.
const (
	GreetingMessage = "Hello! Nart is here to listen to you today ❤️"
	FallbackMessage = "Nart hit a little snag, but is still listening to you ❤️"
	ThankYouMessage = "Thank you for sharing! Nart has saved your diary entry 🌟"
)

// ConsultationState представляет эфемерное состояние диалога с помощником
// в рамках одной сессии редактирования. Состояние не сохраняется в хранилище.
type ConsultationState struct {
	IsPending          bool
	Message            string
	SuggestionsVisible bool
}

// NewConsultationState возвращает начальное состояние с приветствием.
func NewConsultationState() ConsultationState {
	return ConsultationState{Message: GreetingMessage}
}
