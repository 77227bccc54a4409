// Package selection реализует детерминированный выбор подмножества вопросов
// для новой сессии. Это единственное место в системе, где есть случайность;
// при фиксированном seed и фиксированном снимке пулов результат воспроизводим,
// что делает выбор пригодным для property-тестов и диагностики
// (seed сохраняется вместе с сессией).
package selection

import "math/rand"

// Pools — снимок фактов о банке вопросов викторины на момент выбора.
// All упорядочен; NeverAssigned и PreviouslyIncorrect — подмножества All.
type Pools struct {
	All                 []uint
	NeverAssigned       []uint
	PreviouslyIncorrect []uint
}

// primary возвращает первичный пул для политики
func (p Pools) primary(mode Mode) []uint {
	switch mode {
	case ModeNeverAsked:
		return p.NeverAssigned
	case ModeIncorrect:
		return p.PreviouslyIncorrect
	default:
		return p.All
	}
}

// Select возвращает упорядоченный список ID вопросов без дубликатов.
//
// Первичный пул политики перемешивается генератором, инициализированным seed.
// Если пула хватает — список усекается до requestedCount. Иначе берется весь
// первичный пул, а добор идет из полного банка, перемешанного ТЕМ ЖЕ
// генератором (состояние продолжается, повторной инициализации нет),
// с пропуском уже выбранных ID. Длина результата всегда
// min(requestedCount, len(pools.All)).
//
// requestedCount должен быть заранее приведен вызывающим к допустимому
// диапазону; сам Select значение не ограничивает.
func Select(pools Pools, requestedCount int, mode Mode, seed int64) []uint {
	rng := rand.New(rand.NewSource(seed))

	chosen := shuffled(rng, pools.primary(mode))
	if len(chosen) >= requestedCount {
		return chosen[:requestedCount]
	}

	// Первичного пула не хватило: добираем из полного банка,
	// продолжая то же состояние генератора
	taken := make(map[uint]bool, len(chosen))
	for _, id := range chosen {
		taken[id] = true
	}

	for _, id := range shuffled(rng, pools.All) {
		if len(chosen) >= requestedCount {
			break
		}
		if taken[id] {
			continue
		}
		taken[id] = true
		chosen = append(chosen, id)
	}

	return chosen
}

// shuffled возвращает перемешанную копию, не трогая исходный срез
func shuffled(rng *rand.Rand, ids []uint) []uint {
	out := make([]uint, len(ids))
	copy(out, ids)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
