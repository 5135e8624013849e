package domain

// ResolutionOutcome — тегированный исход обращения к внешнему сервису.
// NotFound и Unreachable различаются только в логах и метриках: для вызывающего
// кода оба означают отсутствие сущности.
type ResolutionOutcome string

const (
	// ResolutionFound — сервис вернул сущность.
	ResolutionFound ResolutionOutcome = "found"
	// ResolutionNotFound — сервис явно ответил, что сущности нет.
	ResolutionNotFound ResolutionOutcome = "not_found"
	// ResolutionUnreachable — сервис недоступен либо ответ не удалось разобрать.
	ResolutionUnreachable ResolutionOutcome = "unreachable"
)

// UserResolution — результат поиска пользователя в User Directory.
// Поле User заполнено только при исходе ResolutionFound.
type UserResolution struct {
	Outcome ResolutionOutcome
	User    UserView
}

// Found сообщает, была ли сущность найдена.
func (r UserResolution) Found() bool { return r.Outcome == ResolutionFound }

// ProductResolution — результат поиска товара в каталоге.
type ProductResolution struct {
	Outcome ResolutionOutcome
	Product ProductView
}

// Found сообщает, была ли сущность найдена.
func (r ProductResolution) Found() bool { return r.Outcome == ResolutionFound }
