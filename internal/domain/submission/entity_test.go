//go:build unit

package submission_test

import (
	"testing"
	"time"

	"studio-ops/internal/domain/submission"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newSubmission(t *testing.T) *submission.Submission {
	t.Helper()
	sub, err := submission.NewSubmission(uuid.New(), "spring catalog retouch", 2, false, baseTime)
	require.NoError(t, err)
	return sub
}

func advance(t *testing.T, sub *submission.Submission, now time.Time, path ...submission.Status) {
	t.Helper()
	for i, st := range path {
		require.NoError(t, sub.TransitionTo(st, now.Add(time.Duration(i)*time.Minute)))
	}
}

func TestNewSubmission(t *testing.T) {
	t.Run("初期状態はReceivedでタイムスタンプ記録済み", func(t *testing.T) {
		sub := newSubmission(t)
		assert.Equal(t, submission.StatusReceived, sub.Status())
		require.NotNil(t, sub.FirstEnteredAt(submission.StatusReceived))
		assert.Equal(t, baseTime, *sub.FirstEnteredAt(submission.StatusReceived))
	})

	t.Run("画像枚数0以下はNG", func(t *testing.T) {
		_, err := submission.NewSubmission(uuid.New(), "x", 0, false, baseTime)
		assert.ErrorIs(t, err, submission.ErrInvalidImageCount)
	})
}

func TestTransitionTo(t *testing.T) {
	t.Run("順方向の進行", func(t *testing.T) {
		sub := newSubmission(t)
		advance(t, sub, baseTime.Add(time.Hour),
			submission.StatusInProgress,
			submission.StatusReadyForReview,
			submission.StatusCompleted,
		)
		assert.True(t, sub.IsCompleted())
	})

	t.Run("修正依頼ループ", func(t *testing.T) {
		sub := newSubmission(t)
		advance(t, sub, baseTime.Add(time.Hour),
			submission.StatusInProgress,
			submission.StatusReadyForReview,
			submission.StatusChangesRequested,
			submission.StatusInProgress,
			submission.StatusReadyForReview,
			submission.StatusCompleted,
		)
		assert.True(t, sub.IsCompleted())
	})

	t.Run("不正な遷移は拒否され状態不変", func(t *testing.T) {
		cases := []struct {
			name string
			path []submission.Status
			to   submission.Status
		}{
			{name: "Received→Completed", to: submission.StatusCompleted},
			{name: "Received→ReadyForReview", to: submission.StatusReadyForReview},
			{name: "Received→ChangesRequested", to: submission.StatusChangesRequested},
			{
				name: "InProgress→ChangesRequested",
				path: []submission.Status{submission.StatusInProgress},
				to:   submission.StatusChangesRequested,
			},
			{
				name: "InProgress→Completed",
				path: []submission.Status{submission.StatusInProgress},
				to:   submission.StatusCompleted,
			},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				sub := newSubmission(t)
				advance(t, sub, baseTime.Add(time.Hour), tc.path...)
				before := sub.Status()

				err := sub.TransitionTo(tc.to, baseTime.Add(2*time.Hour))

				var illegal *submission.IllegalTransitionError
				require.ErrorAs(t, err, &illegal)
				assert.Equal(t, before, illegal.From)
				assert.Equal(t, tc.to, illegal.To)
				assert.Equal(t, before, sub.Status())
				assert.Nil(t, sub.FirstEnteredAt(tc.to))
			})
		}
	})

	t.Run("Completedは終端", func(t *testing.T) {
		sub := newSubmission(t)
		advance(t, sub, baseTime.Add(time.Hour),
			submission.StatusInProgress,
			submission.StatusReadyForReview,
			submission.StatusCompleted,
		)

		err := sub.TransitionTo(submission.StatusInProgress, baseTime.Add(3*time.Hour))
		var illegal *submission.IllegalTransitionError
		require.ErrorAs(t, err, &illegal)

		// ステータス以外のフィールドは更新可能
		sub.IncrementEditCount()
		assert.Equal(t, 1, sub.EditCount())
	})
}

func TestFirstEntryTimestamps(t *testing.T) {
	t.Run("再入場で初回タイムスタンプを上書きしない", func(t *testing.T) {
		sub := newSubmission(t)
		t0 := baseTime.Add(time.Hour)

		require.NoError(t, sub.TransitionTo(submission.StatusInProgress, t0))
		require.NoError(t, sub.TransitionTo(submission.StatusReadyForReview, t0.Add(time.Minute)))
		firstReview := *sub.FirstEnteredAt(submission.StatusReadyForReview)
		firstProgress := *sub.FirstEnteredAt(submission.StatusInProgress)

		// ReadyForReview → ChangesRequested → ReadyForReview の周回
		require.NoError(t, sub.TransitionTo(submission.StatusChangesRequested, t0.Add(2*time.Minute)))
		require.NoError(t, sub.TransitionTo(submission.StatusInProgress, t0.Add(3*time.Minute)))
		require.NoError(t, sub.TransitionTo(submission.StatusReadyForReview, t0.Add(4*time.Minute)))

		assert.Equal(t, firstReview, *sub.FirstEnteredAt(submission.StatusReadyForReview))
		assert.Equal(t, firstProgress, *sub.FirstEnteredAt(submission.StatusInProgress))
	})

	t.Run("初回到達順で単調増加", func(t *testing.T) {
		sub := newSubmission(t)
		t0 := baseTime.Add(time.Hour)
		advance(t, sub, t0,
			submission.StatusInProgress,
			submission.StatusReadyForReview,
			submission.StatusChangesRequested,
			submission.StatusInProgress,
			submission.StatusReadyForReview,
			submission.StatusCompleted,
		)

		ordered := []submission.Status{
			submission.StatusReceived,
			submission.StatusInProgress,
			submission.StatusReadyForReview,
			submission.StatusChangesRequested,
			submission.StatusCompleted,
		}
		var prev time.Time
		for _, st := range ordered {
			ts := sub.FirstEnteredAt(st)
			require.NotNil(t, ts, st)
			assert.False(t, ts.Before(prev), "timestamps must be ordered by first achievement")
			prev = *ts
		}
	})
}

func TestCancel(t *testing.T) {
	t.Run("完了前のキャンセルOK", func(t *testing.T) {
		sub := newSubmission(t)
		require.NoError(t, sub.Cancel(baseTime.Add(time.Hour)))
		assert.True(t, sub.IsCanceled())
	})

	t.Run("完了後のキャンセルNG", func(t *testing.T) {
		sub := newSubmission(t)
		advance(t, sub, baseTime.Add(time.Hour),
			submission.StatusInProgress,
			submission.StatusReadyForReview,
			submission.StatusCompleted,
		)
		assert.ErrorIs(t, sub.Cancel(baseTime.Add(2*time.Hour)), submission.ErrAlreadyCompleted)
	})

	t.Run("二重キャンセルNG", func(t *testing.T) {
		sub := newSubmission(t)
		require.NoError(t, sub.Cancel(baseTime.Add(time.Hour)))
		assert.ErrorIs(t, sub.Cancel(baseTime.Add(2*time.Hour)), submission.ErrAlreadyCanceled)
	})

	t.Run("キャンセル後の遷移NG", func(t *testing.T) {
		sub := newSubmission(t)
		require.NoError(t, sub.Cancel(baseTime.Add(time.Hour)))
		assert.ErrorIs(t, sub.TransitionTo(submission.StatusInProgress, baseTime.Add(2*time.Hour)), submission.ErrAlreadyCanceled)
	})
}
