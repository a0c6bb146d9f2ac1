package domain

import (
	"sync"

	"github.com/xh-polaris/croply-core/biz/infrastructure/config"
	"github.com/zeromicro/go-zero/core/stores/redis"
)

// KVStore 是持久化端口
// 每个逻辑键存一个JSON序列化后的集合, 且只有一个组件写入该键
type KVStore interface {
	// Load 读取键对应的内容, 键不存在时返回空串
	Load(key string) (string, error)

	// Save 覆盖写入键对应的内容
	Save(key string, value string) error

	// Remove 删除键
	Remove(key string) error
}

var (
	instance *RedisHelper
	once     sync.Once
)

// RedisHelper 是基于redis的KVStore实现
type RedisHelper struct {
	rs *redis.Redis
}

var _ KVStore = (*RedisHelper)(nil)

func GetRedisHelper() *RedisHelper {
	c := config.GetConfig()
	once.Do(func() {
		instance = &RedisHelper{
			rs: redis.MustNewRedis(*c.Redis),
		}
	})
	return instance
}

// Load 获取键对应的集合内容, 键不存在时go-zero返回空串
func (r *RedisHelper) Load(key string) (string, error) {
	return r.rs.Get(key)
}

// Save 整体覆盖键对应的集合内容
func (r *RedisHelper) Save(key string, value string) error {
	return r.rs.Set(key, value)
}

// Remove 删除键对应的记录
func (r *RedisHelper) Remove(key string) error {
	_, err := r.rs.Del(key)
	return err
}

// MemoryHelper 是内存版KVStore, 测试和单机降级时使用
type MemoryHelper struct {
	mu   sync.Mutex
	data map[string]string
}

var _ KVStore = (*MemoryHelper)(nil)

func NewMemoryHelper() *MemoryHelper {
	return &MemoryHelper{data: make(map[string]string)}
}

func (m *MemoryHelper) Load(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *MemoryHelper) Save(key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryHelper) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
