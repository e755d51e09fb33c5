package slots

// Index отвечает на вопрос "занят ли слот" сканированием журнала.
// Слот держит только подтверждённая запись; pending и retime_requested
// могут сосуществовать на одном слоте. Отдельная индексная структура не
// поддерживается: объём консультационных бронирований мал, и O(n)-скан
// дешевле второго инварианта синхронизации. Если объём вырастет — это
// первый кандидат на замену индексом (date, time) -> ids.
type Index struct {
	ledger BookingLedger
}

// NewIndex создает индекс поверх журнала
func NewIndex(ledger BookingLedger) *Index {
	return &Index{ledger: ledger}
}

// IsTaken возвращает true, если слот (дата, время) занят подтверждённой записью
func (i *Index) IsTaken(year, month, day int, hhmm string) bool {
	for _, b := range i.ledger.All() {
		if b.IsApproved() && b.SameSlot(year, month, day, hhmm) {
			return true
		}
	}
	return false
}

// TakenSlotsForDate возвращает множество занятых времён на дату.
// Используется для отрисовки сетки слотов с отключёнными кнопками.
func (i *Index) TakenSlotsForDate(year, month, day int) map[string]struct{} {
	taken := make(map[string]struct{})
	for _, b := range i.ledger.All() {
		if b.IsApproved() && b.Year == year && b.Month == month && b.Day == day {
			taken[b.Time] = struct{}{}
		}
	}
	return taken
}
