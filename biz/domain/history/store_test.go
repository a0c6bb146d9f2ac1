package history

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/xh-polaris/croply-core/biz/domain"
)

func newTestStore(bound int) (*Store, *domain.MemoryHelper) {
	kv := domain.NewMemoryHelper()
	return NewStore("test:history", bound, kv), kv
}

func record(s *Store, plant, class string) *Record {
	return &Record{
		ID:         s.NextID(),
		PlantName:  plant,
		Class:      class,
		Confidence: 90,
	}
}

func TestInsertBound(t *testing.T) {
	s, kv := newTestStore(50)
	for i := 0; i < 51; i++ {
		s.Insert(&Record{ID: s.NextID(), PlantName: fmt.Sprintf("Plant %d", i)})
	}
	all := s.All()
	if len(all) != 50 {
		t.Fatalf("want 50 records, got %d", len(all))
	}
	// 最新在前, 最旧的一条被丢弃
	if all[0].PlantName != "Plant 50" {
		t.Fatalf("head = %q", all[0].PlantName)
	}
	if all[49].PlantName != "Plant 1" {
		t.Fatalf("tail = %q, Plant 0 should be evicted", all[49].PlantName)
	}

	raw, _ := kv.Load("test:history")
	var persisted []*Record
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil || len(persisted) != 50 {
		t.Fatalf("persisted %d records, err=%v", len(persisted), err)
	}
}

func TestIDsUniqueMonotonic(t *testing.T) {
	s, _ := newTestStore(100)
	var last int64
	for i := 0; i < 100; i++ {
		id := s.NextID()
		if id <= last {
			t.Fatalf("id %d not greater than %d", id, last)
		}
		last = id
	}
}

func TestRemove(t *testing.T) {
	s, _ := newTestStore(50)
	a := record(s, "Tomato", "Tomato___Late_blight")
	b := record(s, "Grape", "Grape___Black_rot")
	s.Insert(a)
	s.Insert(b)

	s.Remove(a.ID)
	if len(s.All()) != 1 || s.All()[0].ID != b.ID {
		t.Fatalf("remove failed: %v", s.All())
	}

	// 不存在的id是静默no-op
	s.Remove(424242)
	if len(s.All()) != 1 {
		t.Fatal("remove of unknown id altered collection")
	}
}

func TestSetRating(t *testing.T) {
	s, _ := newTestStore(50)
	r := record(s, "Potato", "Potato___Early_blight")
	s.Insert(r)

	s.SetRating(r.ID, "up")
	got, ok := s.Get(r.ID)
	if !ok || got.Rating != "up" {
		t.Fatalf("rating not set: %+v", got)
	}
	// 其余字段不变
	if got.PlantName != "Potato" || got.Confidence != 90 {
		t.Fatalf("immutable fields changed: %+v", got)
	}

	before := s.All()
	s.SetRating(999999, "down")
	after := s.All()
	if len(before) != len(after) || after[0].Rating != "up" {
		t.Fatal("setRating of unknown id altered collection")
	}
}

func TestClear(t *testing.T) {
	s, kv := newTestStore(50)
	s.Insert(record(s, "Apple", "Apple___Apple_scab"))
	s.Clear()
	if len(s.All()) != 0 {
		t.Fatal("collection not cleared")
	}
	if raw, _ := kv.Load("test:history"); raw != "" {
		t.Fatalf("persisted copy not removed: %q", raw)
	}
}

func TestSearch(t *testing.T) {
	s, _ := newTestStore(50)
	s.Insert(record(s, "Tomato", "Tomato___Late_blight"))
	s.Insert(record(s, "Grape", "Grape___Black_rot"))
	s.Insert(record(s, "Cherry", "Cherry___Powdery_mildew"))

	got := s.Search("toma")
	if len(got) != 1 || got[0].PlantName != "Tomato" {
		t.Fatalf("search by plant failed: %v", got)
	}
	got = s.Search("BLIGHT")
	if len(got) != 1 || got[0].Class != "Tomato___Late_blight" {
		t.Fatalf("case-insensitive class search failed: %v", got)
	}
	// 空查询返回全部且保持顺序
	got = s.Search("")
	if len(got) != 3 || got[0].PlantName != "Cherry" || got[2].PlantName != "Tomato" {
		t.Fatalf("order not preserved: %v", got)
	}
}

func TestRestore(t *testing.T) {
	kv := domain.NewMemoryHelper()
	s := NewStore("test:restore", 50, kv)
	r := record(s, "Corn", "Corn___Common_rust")
	s.Insert(r)

	s2 := NewStore("test:restore", 50, kv)
	got, ok := s2.Get(r.ID)
	if !ok || got.PlantName != "Corn" {
		t.Fatalf("restore failed: %v", s2.All())
	}
	// 恢复后ID依旧单调
	if s2.NextID() <= r.ID {
		t.Fatal("id monotonicity lost after restore")
	}
}
