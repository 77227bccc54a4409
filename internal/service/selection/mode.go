package selection

// Mode — политика наполнения новой сессии вопросами.
// Хранится в quiz_sessions.selection_mode как строка.
type Mode string

const (
	// ModeNeverAsked — вопросы, ни разу не попадавшие ни в одну сессию викторины
	ModeNeverAsked Mode = "unanswered"
	// ModeIncorrect — вопросы, хотя бы раз отмеченные неверными
	ModeIncorrect Mode = "incorrect"
	// ModeRandom — равновероятная выборка из всего банка
	ModeRandom Mode = "random"
	// ModeBookmarked — метка производных сессий из закладок;
	// движком выбора не используется
	ModeBookmarked Mode = "bookmarked"
)

// ParseMode приводит входную строку к известной политике.
// Нераспознанные значения трактуются как ModeRandom — поведение
// унаследовано от действующего продукта, не валидационная ошибка.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeNeverAsked, ModeIncorrect, ModeRandom:
		return Mode(s)
	default:
		return ModeRandom
	}
}
