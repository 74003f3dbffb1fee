package diag

import "sort"

// Bag аккумулирует диагностики одного файла с жёстким лимитом.
type Bag struct {
	items []Diagnostic
	max   int
}

func NewBag(max int) *Bag {
	if max <= 0 {
		max = 1
	}
	return &Bag{items: make([]Diagnostic, 0, min(max, 16)), max: max}
}

// Add добавляет диагностику, учитывая лимит.
// Возвращает false, если лимит достигнут и диагностика отброшена.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// HasErrors возвращает true, если есть хотя бы одна ошибка.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int { return len(b.items) }

// Items возвращает read-only срез диагностик.
func (b *Bag) Items() []Diagnostic { return b.items }

// Merge объединяет диагностики из другого Bag, расширяя лимит при
// необходимости.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if total := len(b.items) + len(other.items); total > b.max {
		b.max = total
	}
	b.items = append(b.items, other.items...)
}

// SortStable упорядочивает диагностики по файлу и смещению.
func (b *Bag) SortStable() {
	sort.SliceStable(b.items, func(i, j int) bool {
		a, c := b.items[i].Primary, b.items[j].Primary
		if a.File != c.File {
			return a.File < c.File
		}
		return a.Start < c.Start
	})
}
