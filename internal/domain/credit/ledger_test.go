//go:build unit

package credit_test

import (
	"testing"

	"studio-ops/internal/domain/credit"
	"studio-ops/internal/pkg/ptr"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pkgA = credit.PackageGrant{ID: uuid.New(), Servings: 10, Images: ptr.To(10)}
	pkgB = credit.PackageGrant{ID: uuid.New(), Servings: 20, Images: ptr.To(25)}
)

func TestReconcile(t *testing.T) {
	t.Run("新規クライアントへの初回割当", func(t *testing.T) {
		got, err := credit.Reconcile(&pkgA, nil, credit.Overrides{})
		require.NoError(t, err)

		want := credit.Triple{Granted: ptr.To(10), ConsumedAtAssignment: 0, Remaining: 10}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Triple mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("同一パッケージ再選択は残数を保持する", func(t *testing.T) {
		prior := &credit.Prior{PackageID: &pkgA.ID, Remaining: 4, RemainingKnown: true}

		got, err := credit.Reconcile(&pkgA, prior, credit.Overrides{})
		require.NoError(t, err)

		assert.Equal(t, 4, got.Remaining)
		assert.Equal(t, 6, got.ConsumedAtAssignment)
	})

	t.Run("同一パッケージ再選択は冪等", func(t *testing.T) {
		prior := &credit.Prior{PackageID: &pkgA.ID, Remaining: 4, RemainingKnown: true}

		first, err := credit.Reconcile(&pkgA, prior, credit.Overrides{})
		require.NoError(t, err)
		second, err := credit.Reconcile(&pkgA, &credit.Prior{
			PackageID:      &pkgA.ID,
			Remaining:      first.Remaining,
			RemainingKnown: true,
		}, credit.Overrides{})
		require.NoError(t, err)

		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("reselection drifted (-first +second):\n%s", diff)
		}
	})

	t.Run("別パッケージへの切替は持ち越しなし", func(t *testing.T) {
		prior := &credit.Prior{PackageID: &pkgA.ID, Remaining: 4, RemainingKnown: true}

		got, err := credit.Reconcile(&pkgB, prior, credit.Overrides{})
		require.NoError(t, err)

		want := credit.Triple{Granted: ptr.To(20), ConsumedAtAssignment: 0, Remaining: 20}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Triple mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("パッケージ未選択", func(t *testing.T) {
		cases := []struct {
			name          string
			prior         *credit.Prior
			wantRemaining int
		}{
			{name: "prior無しなら残数0", prior: nil, wantRemaining: 0},
			{
				name:          "prior有りなら残数を引き継ぐ",
				prior:         &credit.Prior{PackageID: &pkgA.ID, Remaining: 7, RemainingKnown: true},
				wantRemaining: 7,
			},
			{
				name:          "残数不明のpriorは0扱い",
				prior:         &credit.Prior{PackageID: &pkgA.ID, RemainingKnown: false},
				wantRemaining: 0,
			},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				got, err := credit.Reconcile(nil, tc.prior, credit.Overrides{})
				require.NoError(t, err)
				assert.Nil(t, got.Granted)
				assert.Equal(t, 0, got.ConsumedAtAssignment)
				assert.Equal(t, tc.wantRemaining, got.Remaining)
			})
		}
	})

	t.Run("手動上書き", func(t *testing.T) {
		t.Run("consumed上書きでremainingを再計算", func(t *testing.T) {
			got, err := credit.Reconcile(&pkgA, nil, credit.Overrides{ConsumedAtAssignment: ptr.To(3)})
			require.NoError(t, err)
			assert.Equal(t, 7, got.Remaining)
		})

		t.Run("granted上書きでremainingを再計算", func(t *testing.T) {
			prior := &credit.Prior{PackageID: &pkgA.ID, Remaining: 4, RemainingKnown: true}
			got, err := credit.Reconcile(&pkgA, prior, credit.Overrides{Granted: ptr.To(12), ConsumedAtAssignment: ptr.To(6)})
			require.NoError(t, err)
			assert.Equal(t, 6, got.Remaining)
		})

		t.Run("consumedがgrantedを超えると拒否", func(t *testing.T) {
			_, err := credit.Reconcile(&pkgA, nil, credit.Overrides{ConsumedAtAssignment: ptr.To(15)})
			require.ErrorIs(t, err, credit.ErrConsumedExceedsGranted)
		})

		t.Run("パッケージ未選択でconsumed上書きは拒否", func(t *testing.T) {
			_, err := credit.Reconcile(nil, nil, credit.Overrides{ConsumedAtAssignment: ptr.To(2)})
			require.ErrorIs(t, err, credit.ErrNoPackageSelected)
		})

		t.Run("負のgranted上書きは拒否", func(t *testing.T) {
			_, err := credit.Reconcile(&pkgA, nil, credit.Overrides{Granted: ptr.To(-1)})
			require.ErrorIs(t, err, credit.ErrNegativeCredit)
		})
	})

	// granted内の任意のconsumedについて remaining == granted - consumed
	t.Run("台帳恒等式", func(t *testing.T) {
		granted := 10
		for consumed := 0; consumed <= granted; consumed++ {
			got, err := credit.Reconcile(&pkgA, nil, credit.Overrides{ConsumedAtAssignment: ptr.To(consumed)})
			require.NoError(t, err)
			assert.Equal(t, granted-consumed, got.Remaining)
		}
	})
}

func TestTripleValidate(t *testing.T) {
	cases := []struct {
		name   string
		triple credit.Triple
		errIs  error
	}{
		{name: "整合したtripleはOK", triple: credit.Triple{Granted: ptr.To(10), ConsumedAtAssignment: 6, Remaining: 4}},
		{name: "パッケージ無しでconsumed 0はOK", triple: credit.Triple{Remaining: 4}},
		{
			name:   "consumed > granted はNG",
			triple: credit.Triple{Granted: ptr.To(10), ConsumedAtAssignment: 15, Remaining: 0},
			errIs:  credit.ErrConsumedExceedsGranted,
		},
		{
			name:   "導出値の不一致はNG",
			triple: credit.Triple{Granted: ptr.To(10), ConsumedAtAssignment: 2, Remaining: 5},
			errIs:  credit.ErrLedgerMismatch,
		},
		{
			name:   "負のremainingはNG",
			triple: credit.Triple{Granted: ptr.To(10), ConsumedAtAssignment: 2, Remaining: -1},
			errIs:  credit.ErrNegativeCredit,
		},
		{
			name:   "パッケージ無しでconsumed > 0はNG",
			triple: credit.Triple{ConsumedAtAssignment: 1, Remaining: 0},
			errIs:  credit.ErrNoPackageSelected,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.triple.Validate()
			if tc.errIs == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.errIs)
			assert.True(t, credit.IsValidationError(err))
		})
	}
}
