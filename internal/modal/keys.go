package modal

import "sync"

// KeyBus fans page-wide key presses out to subscribers.
type KeyBus struct {
	mu     sync.Mutex
	nextID int
	subs   []keySub
}

type keySub struct {
	id int
	fn func(Key)
}

func (b *KeyBus) Subscribe(fn func(Key)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, keySub{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *KeyBus) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish calls every subscriber in subscription order.
func (b *KeyBus) Publish(k Key) {
	b.mu.Lock()
	subs := make([]keySub, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, s := range subs {
		s.fn(k)
	}
}

// Len returns the number of active subscribers.
func (b *KeyBus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
