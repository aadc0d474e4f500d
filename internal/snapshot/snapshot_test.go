package snapshot

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/duty-reservation/backend/internal/domain"
)

type fakeStore struct {
	overrides    []*domain.CapacityOverride
	reservations []*domain.Reservation
	err          error
}

func (s *fakeStore) GetAllCapacityOverrides() ([]*domain.CapacityOverride, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.overrides, nil
}

func (s *fakeStore) GetAllReservations() ([]*domain.Reservation, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.reservations, nil
}

func TestReload(t *testing.T) {
	store := &fakeStore{
		overrides: []*domain.CapacityOverride{{Date: "2025-07-23", Capacity: 2}},
		reservations: []*domain.Reservation{
			{UserID: 1, Date: "2025-07-23", Slot: "13:00-13:30"},
		},
	}
	cache := NewCache(store)

	require.NoError(t, cache.Reload())

	registry, ledger := cache.Snapshot()
	assert.Equal(t, 2, registry.EffectiveCapacity("2025-07-23"))
	assert.Equal(t, 1, ledger.CountFor("2025-07-23", "13:00-13:30"))
	assert.False(t, cache.LoadedAt().IsZero())
}

func TestReloadFailureKeepsPreviousSnapshot(t *testing.T) {
	store := &fakeStore{
		overrides: []*domain.CapacityOverride{{Date: "2025-07-23", Capacity: 2}},
		reservations: []*domain.Reservation{
			{UserID: 1, Date: "2025-07-23", Slot: "13:00-13:30"},
		},
	}
	cache := NewCache(store)
	require.NoError(t, cache.Reload())

	// 读取失败时不能用空数据覆盖好的缓存
	store.err = errors.New("连接超时")
	require.Error(t, cache.Reload())

	registry, ledger := cache.Snapshot()
	assert.Equal(t, 2, registry.EffectiveCapacity("2025-07-23"))
	assert.Equal(t, 1, ledger.CountFor("2025-07-23", "13:00-13:30"))
}

func TestOptimisticApply(t *testing.T) {
	store := &fakeStore{}
	cache := NewCache(store)
	require.NoError(t, cache.Reload())

	// 提交后立即可见，不需要等后台写入完成
	cache.ApplySubmit(&domain.SubmitReservationsData{
		UserID:      1,
		Date:        "2025-07-23",
		Slots:       []string{"13:00-13:30", "13:30-14:00"},
		Note:        "第一次值班",
		SubmittedAt: time.Now(),
	})

	_, ledger := cache.Snapshot()
	assert.Equal(t, 1, ledger.CountFor("2025-07-23", "13:00-13:30"))
	assert.Equal(t, 1, ledger.CountFor("2025-07-23", "13:30-14:00"))

	cache.ApplyDelete(&domain.DeleteReservationsData{
		UserID: 1,
		Date:   "2025-07-23",
		Slots:  []string{"13:00-13:30"},
	})

	_, ledger = cache.Snapshot()
	assert.Equal(t, 0, ledger.CountFor("2025-07-23", "13:00-13:30"))
	assert.Equal(t, 1, ledger.CountFor("2025-07-23", "13:30-14:00"))

	cache.ApplyCapacityOverrides([]*domain.CapacityOverride{{Date: "2025-07-23", Capacity: 5}})

	registry, _ := cache.Snapshot()
	assert.Equal(t, 5, registry.EffectiveCapacity("2025-07-23"))
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	cache := NewCache(&fakeStore{})
	require.NoError(t, cache.Reload())

	_, ledger := cache.Snapshot()
	ledger.Add(&domain.Reservation{UserID: 9, Date: "2025-07-23", Slot: "13:00-13:30"})

	_, fresh := cache.Snapshot()
	assert.Equal(t, 0, fresh.CountFor("2025-07-23", "13:00-13:30"))
}

func TestReloadReconcilesOptimisticState(t *testing.T) {
	// 乐观更新的写入如果在后端失败了，显式刷新之后快照会回到数据库的状态
	store := &fakeStore{}
	cache := NewCache(store)
	require.NoError(t, cache.Reload())

	cache.ApplySubmit(&domain.SubmitReservationsData{
		UserID: 1,
		Date:   "2025-07-23",
		Slots:  []string{"13:00-13:30"},
	})

	require.NoError(t, cache.Reload())

	_, ledger := cache.Snapshot()
	assert.Equal(t, 0, ledger.CountFor("2025-07-23", "13:00-13:30"))
}
