package booking

import (
	"sync"

	"github.com/mcompany-dev/consult-booking-bot/internal/domain"
)

// Repository журнал бронирований в памяти процесса. Записи живут до
// рестарта; долговечность вне рамок сервиса. Диспетчеризация апдейтов
// однопоточная, но контракт защищён мьютексом, чтобы его можно было
// безопасно вызывать из параллельных обработчиков.
type Repository struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]*domain.Booking
}

// NewRepository создает пустой журнал. Счётчик id начинается с 1001,
// чтобы id бронирований не путались с другими мелкими целыми в системе.
func NewRepository() *Repository {
	return &Repository{
		nextID: domain.BookingSeqStart,
		items:  make(map[int64]*domain.Booking),
	}
}

// NextID выдаёт свежий строго возрастающий id. Id никогда не переиспользуются.
func (r *Repository) NextID() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	return id
}

// Insert сохраняет новую запись. Id должен быть выдан через NextID заранее.
func (r *Repository) Insert(b *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b.ID == 0 {
		return ErrMissingID
	}
	if _, ok := r.items[b.ID]; ok {
		return ErrDuplicateID
	}

	stored := *b
	r.items[b.ID] = &stored
	return nil
}

// GetByID возвращает копию записи по id
func (r *Repository) GetByID(id int64) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.items[id]
	if !ok {
		return nil, ErrBookingNotFound
	}

	cp := *b
	return &cp, nil
}

// UpdateStatus меняет статус записи. Допустимость перехода проверяет
// координатор согласования, а не журнал.
func (r *Repository) UpdateStatus(id int64, status domain.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.items[id]
	if !ok {
		return ErrBookingNotFound
	}

	b.Status = status
	return nil
}

// UpdateTime меняет время записи (retime-поток)
func (r *Repository) UpdateTime(id int64, hhmm string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.items[id]
	if !ok {
		return ErrBookingNotFound
	}

	b.Time = hhmm
	return nil
}

// Approve переводит запись в approved по принципу compare-and-set:
// под мьютексом проверяется, что слот (дата, время) ещё не занят другой
// подтверждённой записью. Инвариант "не более одного approved на слот"
// держится именно здесь.
func (r *Repository) Approve(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.items[id]
	if !ok {
		return ErrBookingNotFound
	}

	for _, other := range r.items {
		if other.ID == id {
			continue
		}
		if other.IsApproved() && other.SameSlot(b.Year, b.Month, b.Day, b.Time) {
			return ErrSlotAlreadyApproved
		}
	}

	b.Status = domain.StatusApproved
	return nil
}

// All возвращает снимок всех записей в произвольном порядке.
// Используется индексом доступности слотов.
func (r *Repository) All() []*domain.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*domain.Booking, 0, len(r.items))
	for _, b := range r.items {
		cp := *b
		out = append(out, &cp)
	}
	return out
}
