package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idRange(from, to uint) []uint {
	ids := make([]uint, 0, to-from+1)
	for id := from; id <= to; id++ {
		ids = append(ids, id)
	}
	return ids
}

func assertNoDuplicates(t *testing.T, ids []uint) {
	t.Helper()
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		assert.False(t, seen[id], "ID %d встречается дважды", id)
		seen[id] = true
	}
}

func TestParseMode_KnownModes(t *testing.T) {
	assert.Equal(t, ModeNeverAsked, ParseMode("unanswered"))
	assert.Equal(t, ModeIncorrect, ParseMode("incorrect"))
	assert.Equal(t, ModeRandom, ParseMode("random"))
}

func TestParseMode_UnknownFallsBackToRandom(t *testing.T) {
	// Нераспознанная строка трактуется как random, а не отклоняется
	assert.Equal(t, ModeRandom, ParseMode("bogus"))
	assert.Equal(t, ModeRandom, ParseMode(""))
	assert.Equal(t, ModeRandom, ParseMode("UNANSWERED"))
}

func TestSelect_ExactCountWhenPoolSufficient(t *testing.T) {
	pools := Pools{All: idRange(1, 50), NeverAssigned: idRange(1, 50)}

	got := Select(pools, 10, ModeNeverAsked, 42)

	require.Len(t, got, 10)
	assertNoDuplicates(t, got)
}

func TestSelect_DeterministicForFixedSeed(t *testing.T) {
	pools := Pools{All: idRange(1, 30), NeverAssigned: idRange(5, 20), PreviouslyIncorrect: idRange(1, 4)}

	for _, mode := range []Mode{ModeNeverAsked, ModeIncorrect, ModeRandom} {
		first := Select(pools, 12, mode, 1234)
		second := Select(pools, 12, mode, 1234)
		assert.Equal(t, first, second, "mode=%s: один и тот же seed должен давать один и тот же список", mode)
	}
}

func TestSelect_DifferentSeedsShuffleDifferently(t *testing.T) {
	pools := Pools{All: idRange(1, 100)}

	a := Select(pools, 30, ModeRandom, 1)
	b := Select(pools, 30, ModeRandom, 2)

	// Содержимое может пересекаться, но порядок при разных seed практически
	// наверняка различается на пуле из 100 элементов
	assert.NotEqual(t, a, b)
}

func TestSelect_TruncatesRandomToBankSize(t *testing.T) {
	// Сценарий из постановки: банк из 3 вопросов, запрошено 10
	pools := Pools{All: idRange(1, 3)}

	got := Select(pools, 10, ModeRandom, 7)

	require.Len(t, got, 3)
	assertNoDuplicates(t, got)
	assert.ElementsMatch(t, []uint{1, 2, 3}, got)
}

func TestSelect_FallbackTopsUpFromFullBank(t *testing.T) {
	// Никогда не назначались только 4, 5, 6; запрошено 5 —
	// первичный пул берется целиком, добор из полного банка без дубликатов
	pools := Pools{
		All:           idRange(1, 10),
		NeverAssigned: []uint{4, 5, 6},
	}

	got := Select(pools, 5, ModeNeverAsked, 99)

	require.Len(t, got, 5)
	assertNoDuplicates(t, got)
	// Весь первичный пул обязан войти в результат, причем раньше добора
	assert.ElementsMatch(t, []uint{4, 5, 6}, got[:3])
}

func TestSelect_FallbackExhaustsBankWithoutDuplicates(t *testing.T) {
	pools := Pools{
		All:                 idRange(1, 6),
		PreviouslyIncorrect: []uint{2, 4},
	}

	got := Select(pools, 30, ModeIncorrect, 5)

	// Запросили больше, чем банк: результат — весь банк, каждый ID один раз
	require.Len(t, got, 6)
	assertNoDuplicates(t, got)
	assert.ElementsMatch(t, idRange(1, 6), got)
}

func TestSelect_EmptyBankYieldsEmptySelection(t *testing.T) {
	got := Select(Pools{}, 10, ModeNeverAsked, 3)
	assert.Empty(t, got)
}

func TestSelect_ResultLengthProperty(t *testing.T) {
	// Для каждой политики и каждого размера пула длина результата
	// равна min(requestedCount, |All|) и дубликатов нет
	for bank := 0; bank <= 40; bank += 8 {
		pools := Pools{
			All:                 idRange(1, uint(bank)),
			NeverAssigned:       idRange(1, uint(bank/2)),
			PreviouslyIncorrect: idRange(1, uint(bank/4)),
		}
		if bank == 0 {
			pools = Pools{}
		}

		for _, mode := range []Mode{ModeNeverAsked, ModeIncorrect, ModeRandom} {
			for _, count := range []int{5, 12, 30} {
				got := Select(pools, count, mode, int64(bank*31+count))

				want := count
				if bank < want {
					want = bank
				}
				require.Len(t, got, want, "bank=%d mode=%s count=%d", bank, mode, count)
				assertNoDuplicates(t, got)
			}
		}
	}
}

func TestSelect_SuccessiveNeverAskedDrawsAreDisjoint(t *testing.T) {
	// Сценарий из постановки: банк из 10 вопросов, две сессии по 4 вопроса
	// политикой "не задавались" — выборки не пересекаются, 2 вопроса
	// остаются нетронутыми
	all := idRange(1, 10)

	first := Select(Pools{All: all, NeverAssigned: all}, 4, ModeNeverAsked, 17)
	require.Len(t, first, 4)

	// Снимок пулов после первой сессии: назначенные исчезают из NeverAssigned
	assigned := make(map[uint]bool, len(first))
	for _, id := range first {
		assigned[id] = true
	}
	var remaining []uint
	for _, id := range all {
		if !assigned[id] {
			remaining = append(remaining, id)
		}
	}
	require.Len(t, remaining, 6)

	second := Select(Pools{All: all, NeverAssigned: remaining}, 4, ModeNeverAsked, 18)
	require.Len(t, second, 4)

	for _, id := range second {
		assert.False(t, assigned[id], "вторая выборка не должна пересекаться с первой (ID %d)", id)
	}
}
