package history

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/xh-polaris/gopkg/util/log"

	"github.com/xh-polaris/croply-core/biz/domain"
	"github.com/xh-polaris/croply-core/biz/domain/detail"
)

// Record 是一次成功诊断的存储形态
// 建立后除Rating外全部不可变, ID唯一且单调
type Record struct {
	ID         int64          `json:"id" bson:"id"`
	PlantName  string         `json:"plant_name" bson:"plant_name"`
	Class      string         `json:"disease" bson:"class"`
	Confidence float64        `json:"confidence" bson:"confidence"`
	Detail     *detail.Detail `json:"disease_info,omitempty" bson:"detail,omitempty"`
	Image      string         `json:"image,omitempty" bson:"image,omitempty"`
	Timestamp  string         `json:"timestamp" bson:"timestamp"`
	Rating     string         `json:"rating,omitempty" bson:"rating,omitempty"`
	Language   string         `json:"language,omitempty" bson:"language,omitempty"`
}

// Store 是有界的诊断历史集合
// 新记录插入头部, 超出上限丢弃尾部, 顺序在其余操作中保持不变
type Store struct {
	mu      sync.Mutex
	key     string
	bound   int
	store   domain.KVStore
	records []*Record
	lastID  int64
}

// NewStore 创建历史集合并恢复持久化内容
func NewStore(key string, bound int, kv domain.KVStore) *Store {
	s := &Store{
		key:   key,
		bound: bound,
		store: kv,
	}
	raw, err := kv.Load(key)
	if err != nil {
		log.Error("load history err:", err)
		return s
	}
	if raw != "" {
		if err = json.Unmarshal([]byte(raw), &s.records); err != nil {
			log.Error("decode history err:", err)
			s.records = nil
		}
	}
	for _, r := range s.records {
		if r.ID > s.lastID {
			s.lastID = r.ID
		}
	}
	return s
}

// NextID 生成唯一且单调的记录ID, 毫秒时间戳冲突时递增
func (s *Store) NextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// Insert 头插一条记录并截断到保留上限
func (s *Store) Insert(r *Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]*Record{r}, s.records...)
	if len(s.records) > s.bound {
		s.records = s.records[:s.bound]
	}
	if r.ID > s.lastID {
		s.lastID = r.ID
	}
	s.persist()
}

// Remove 删除指定记录, 不存在时静默忽略
func (s *Store) Remove(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			s.persist()
			return
		}
	}
}

// SetRating 更新指定记录的评价, 不存在时静默忽略
// Rating是建立后唯一可变的字段
func (s *Store) SetRating(id int64, rating string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.ID == id {
			r.Rating = rating
			s.persist()
			return
		}
	}
}

// Clear 清空集合及其持久化副本
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	if err := s.store.Remove(s.key); err != nil {
		log.Error("clear history err:", err)
	}
}

// Get 按ID查找记录
func (s *Store) Get(id int64) (*Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

// All 返回全部记录的副本, 保持最新在前
func (s *Store) All() []*Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Record, len(s.records))
	copy(out, s.records)
	return out
}

// Search 对植物名和类别做大小写不敏感的包含匹配, 不改变顺序
func (s *Store) Search(q string) []*Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	q = strings.ToLower(q)
	out := make([]*Record, 0, len(s.records))
	for _, r := range s.records {
		if strings.Contains(strings.ToLower(r.PlantName), q) ||
			strings.Contains(strings.ToLower(r.Class), q) {
			out = append(out, r)
		}
	}
	return out
}

// persist 整体覆盖写入, 调用方需持有锁
func (s *Store) persist() {
	data, err := json.Marshal(s.records)
	if err != nil {
		log.Error("encode history err:", err)
		return
	}
	if err = s.store.Save(s.key, string(data)); err != nil {
		log.Error("save history err:", err)
	}
}
