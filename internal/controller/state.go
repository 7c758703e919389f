package controller

// State состояние формы сокращения
type State int32

const (
	// StateIdle форма готова к вводу, запросов еще не было
	StateIdle State = iota
	// StateSubmitting запрос к сервису выполняется, кнопка отправки заблокирована
	StateSubmitting
	// StateSuccess последний запрос завершился успешно, панель результата показана
	StateSuccess
	// StateError последняя попытка завершилась ошибкой
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Interactive сообщает, принимает ли форма новую отправку
func (s State) Interactive() bool {
	return s != StateSubmitting
}
