package snapshot

import (
	"sync"
	"time"

	"github.com/sysu-ecnc-dev/duty-reservation/backend/internal/domain"
	"github.com/sysu-ecnc-dev/duty-reservation/backend/internal/roster"
)

// Store 是快照的数据来源，由 repository 实现。
// 写操作不走这个接口：handler 把写操作发到消息队列后直接乐观更新快照，
// 直到下一次显式刷新之前快照就是权威数据。
type Store interface {
	GetAllCapacityOverrides() ([]*domain.CapacityOverride, error)
	GetAllReservations() ([]*domain.Reservation, error)
}

// Cache 持有整个进程共享的容量和预约快照，没有任何全局变量。
// 快照只在启动和显式刷新时从数据库加载，不会自动刷新。
type Cache struct {
	store Store

	mu       sync.RWMutex
	registry *roster.CapacityRegistry
	ledger   *roster.SlotLedger
	loadedAt time.Time
}

func NewCache(store Store) *Cache {
	return &Cache{
		store:    store,
		registry: roster.NewCapacityRegistry(nil),
		ledger:   roster.NewSlotLedger(nil),
	}
}

// Reload 重新从数据库加载快照。任何一步失败都保留之前的快照，
// 不会用空数据覆盖一份好的缓存。
func (c *Cache) Reload() error {
	overrides, err := c.store.GetAllCapacityOverrides()
	if err != nil {
		return err
	}

	reservations, err := c.store.GetAllReservations()
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.registry = roster.NewCapacityRegistry(overrides)
	c.ledger = roster.NewSlotLedger(reservations)
	c.loadedAt = time.Now()

	return nil
}

// Snapshot 返回当前快照的深拷贝，调用方可以放心长时间持有
func (c *Cache) Snapshot() (*roster.CapacityRegistry, *roster.SlotLedger) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.registry.Clone(), c.ledger.Clone()
}

func (c *Cache) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.loadedAt
}

// ApplySubmit 把新提交的预约乐观地写入快照
func (c *Cache) ApplySubmit(data *domain.SubmitReservationsData) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, slot := range data.Slots {
		c.ledger.Add(&domain.Reservation{
			UserID:    data.UserID,
			Date:      data.Date,
			Slot:      slot,
			Note:      data.Note,
			CreatedAt: data.SubmittedAt,
		})
	}
}

// ApplyDelete 把删除操作乐观地写入快照
func (c *Cache) ApplyDelete(data *domain.DeleteReservationsData) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ledger.Remove(data.UserID, data.Date, data.Slots)
}

// ApplyCapacityOverrides 把容量覆盖值乐观地写入快照，
// 负数的容量在 handler 层已经被拒绝，这里忽略即可
func (c *Cache) ApplyCapacityOverrides(overrides []*domain.CapacityOverride) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, o := range overrides {
		_ = c.registry.SetOverride(o)
	}
}
