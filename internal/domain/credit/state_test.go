//go:build unit

package credit_test

import (
	"testing"

	"studio-ops/internal/domain/credit"
	"studio-ops/internal/pkg/ptr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newState(remaining int) *credit.State {
	return credit.ReconstructState(uuid.New(), 10, ptr.To(remaining), 0, 0, 1)
}

func TestStateReserveImages(t *testing.T) {
	t.Run("残数内の予約OK", func(t *testing.T) {
		s := newState(5)
		require.NoError(t, s.ReserveImages(3, false))
		assert.Equal(t, 2, *s.RemainingImages())
		assert.Equal(t, 3, s.ReservedImages())
	})

	t.Run("残数不足は拒否され状態は不変", func(t *testing.T) {
		s := newState(2)
		err := s.ReserveImages(3, false)
		require.ErrorIs(t, err, credit.ErrInsufficientCredit)
		assert.Equal(t, 2, *s.RemainingImages())
		assert.Equal(t, 0, s.ReservedImages())
		assert.Equal(t, 0, s.ConsumedImages())
	})

	t.Run("強制予約は残数を0で止める", func(t *testing.T) {
		s := newState(2)
		require.NoError(t, s.ReserveImages(3, true))
		assert.Equal(t, 0, *s.RemainingImages())
		assert.Equal(t, 3, s.ReservedImages())
	})

	t.Run("無制限プールは残数を持たない", func(t *testing.T) {
		s := credit.ReconstructState(uuid.New(), 10, nil, 0, 0, 1)
		require.NoError(t, s.ReserveImages(100, false))
		assert.Nil(t, s.RemainingImages())
		assert.Equal(t, 100, s.ReservedImages())
	})

	t.Run("0以下の予約数はNG", func(t *testing.T) {
		s := newState(5)
		assert.ErrorIs(t, s.ReserveImages(0, false), credit.ErrNegativeReservation)
		assert.ErrorIs(t, s.ReserveImages(-1, false), credit.ErrNegativeReservation)
	})
}

func TestStateLifecycle(t *testing.T) {
	t.Run("予約から消費まで", func(t *testing.T) {
		s := newState(10)
		require.NoError(t, s.ReserveImages(2, false))
		require.NoError(t, s.ConsumeImages(2))

		assert.Equal(t, 8, *s.RemainingImages()) // 予約時に減算済み
		assert.Equal(t, 0, s.ReservedImages())
		assert.Equal(t, 2, s.ConsumedImages())
	})

	t.Run("完了前キャンセルはプールへ全量返却", func(t *testing.T) {
		s := newState(10)
		require.NoError(t, s.ReserveImages(4, false))
		require.NoError(t, s.ReleaseImages(4))

		assert.Equal(t, 10, *s.RemainingImages())
		assert.Equal(t, 0, s.ReservedImages())
		assert.Equal(t, 0, s.ConsumedImages())
	})

	t.Run("予約超過の消費はNG", func(t *testing.T) {
		s := newState(10)
		require.NoError(t, s.ReserveImages(1, false))
		assert.ErrorIs(t, s.ConsumeImages(2), credit.ErrReleaseExceedsPool)
	})

	// reserved + consumed + remaining は割当が変わらない限り不変
	t.Run("保存則", func(t *testing.T) {
		s := newState(10)
		total := func() int { return s.ReservedImages() + s.ConsumedImages() + *s.RemainingImages() }
		start := total()

		require.NoError(t, s.ReserveImages(3, false))
		assert.Equal(t, start, total())
		require.NoError(t, s.ConsumeImages(2))
		assert.Equal(t, start, total())
		require.NoError(t, s.ReleaseImages(1))
		assert.Equal(t, start, total())
		require.NoError(t, s.ReserveImages(5, false))
		require.NoError(t, s.ReleaseImages(5))
		assert.Equal(t, start, total())
	})
}

func TestStateApplyAssignment(t *testing.T) {
	t.Run("パッケージ切替で画像プールを更新", func(t *testing.T) {
		s := newState(5)
		triple := credit.Triple{Granted: ptr.To(20), ConsumedAtAssignment: 0, Remaining: 20}

		s.ApplyAssignment(triple, true, ptr.To(25))

		assert.Equal(t, 20, s.RemainingServings())
		assert.Equal(t, 25, *s.RemainingImages())
	})

	t.Run("同一パッケージ再選択は画像プールを維持", func(t *testing.T) {
		s := newState(5)
		triple := credit.Triple{Granted: ptr.To(10), ConsumedAtAssignment: 6, Remaining: 4}

		s.ApplyAssignment(triple, false, nil)

		assert.Equal(t, 4, s.RemainingServings())
		assert.Equal(t, 5, *s.RemainingImages())
	})
}
