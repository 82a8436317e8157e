package keylock

import "sync"

// KeyLock неблокирующая блокировка по ключу
// Пока мутация сущности выполняется, повторная мутация той же сущности отклоняется
type KeyLock struct {
	mu     sync.Mutex
	active map[string]struct{}
}

// New создает пустую блокировку
func New() *KeyLock {
	return &KeyLock{active: make(map[string]struct{})}
}

// TryLock захватывает ключ, если он свободен
// Возвращает функцию освобождения и true, либо nil и false, если ключ занят
func (l *KeyLock) TryLock(key string) (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, busy := l.active[key]; busy {
		return nil, false
	}
	l.active[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.active, key)
			l.mu.Unlock()
		})
	}, true
}
