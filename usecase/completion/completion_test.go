package completion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fleetgo/maintenance/domain"
	"github.com/fleetgo/maintenance/pkg/clock"
	"github.com/fleetgo/maintenance/repository"
)

type fakeTaskStore struct {
	tasks       map[int64]*domain.Task
	parts       map[int64][]domain.TaskPart
	photos      map[int64][]domain.TaskPhoto
	completeErr error
}

func newFakeTaskStore(tasks ...*domain.Task) *fakeTaskStore {
	store := &fakeTaskStore{
		tasks:  make(map[int64]*domain.Task),
		parts:  make(map[int64][]domain.TaskPart),
		photos: make(map[int64][]domain.TaskPhoto),
	}
	for _, task := range tasks {
		store.tasks[task.ID] = task
	}
	return store
}

func (s *fakeTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	task, ok := s.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

func (s *fakeTaskStore) Complete(ctx context.Context, id int64, completion repository.TaskCompletion) (*domain.Task, error) {
	if s.completeErr != nil {
		return nil, s.completeErr
	}
	task, ok := s.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	task.Status = completion.Status
	task.Signature = completion.Signature
	at := completion.CompletedAt
	task.CompletedAt = &at

	s.parts[id] = completion.Parts
	s.photos[id] = append(s.photos[id], completion.Photos...)
	return task, nil
}

type fakePhotoStore struct {
	saved   map[string][]byte
	saveErr error
}

func newFakePhotoStore() *fakePhotoStore {
	return &fakePhotoStore{saved: make(map[string][]byte)}
}

func (s *fakePhotoStore) Save(name string, data []byte) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved[name] = data
	return nil
}

var testNow = time.Date(2025, 8, 20, 14, 30, 5, 0, time.UTC)

func pendingTask(id int64) *domain.Task {
	return &domain.Task{
		ID:            id,
		VehicleID:     "TRK-001",
		ScheduledDate: time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC),
		Depot:         "Depot A",
		Status:        domain.StatusPending,
	}
}

func TestCompleteTaskNotFound(t *testing.T) {
	uc := New(newFakeTaskStore(), newFakePhotoStore(), clock.Fixed{T: testNow}, nil)

	_, err := uc.CompleteTask(context.Background(), 42, Request{})
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("err = %v, want ErrTaskNotFound", err)
	}
}

func TestCompleteTaskDefaultStatus(t *testing.T) {
	store := newFakeTaskStore(pendingTask(1))
	uc := New(store, newFakePhotoStore(), clock.Fixed{T: testNow}, nil)

	task, err := uc.CompleteTask(context.Background(), 1, Request{Signature: "Aarav"})
	if err != nil {
		t.Fatalf("CompleteTask failed: %v", err)
	}
	if task.Status != domain.StatusCompleted {
		t.Errorf("Status = %s, want completed", task.Status)
	}
	if task.Signature != "Aarav" {
		t.Errorf("Signature = %q, want Aarav", task.Signature)
	}
	if task.CompletedAt == nil || !task.CompletedAt.Equal(testNow) {
		t.Errorf("CompletedAt = %v, want %v", task.CompletedAt, testNow)
	}
}

func TestCompleteTaskArbitraryStatusAccepted(t *testing.T) {
	store := newFakeTaskStore(pendingTask(1))
	uc := New(store, newFakePhotoStore(), clock.Fixed{T: testNow}, nil)

	task, err := uc.CompleteTask(context.Background(), 1, Request{Status: "needs-review"})
	if err != nil {
		t.Fatalf("CompleteTask failed: %v", err)
	}
	if task.Status != "needs-review" {
		t.Errorf("Status = %s, want needs-review", task.Status)
	}
}

func TestCompleteTaskQuantityCoercion(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"valid quantity", "4", 4},
		{"not a number", "abc", 1},
		{"zero", "0", 1},
		{"negative", "-3", 1},
		{"empty", "", 1},
		{"whitespace padded", " 2 ", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeTaskStore(pendingTask(1))
			uc := New(store, newFakePhotoStore(), clock.Fixed{T: testNow}, nil)

			_, err := uc.CompleteTask(context.Background(), 1, Request{
				Parts: []PartUsage{{Name: "Oil Filter", Qty: tt.raw}},
			})
			if err != nil {
				t.Fatalf("CompleteTask failed: %v", err)
			}

			parts := store.parts[1]
			if len(parts) != 1 {
				t.Fatalf("stored %d parts, want 1", len(parts))
			}
			if parts[0].Qty != tt.want {
				t.Errorf("Qty = %d, want %d", parts[0].Qty, tt.want)
			}
		})
	}
}

func TestCompleteTaskReplacesPartsWholesale(t *testing.T) {
	store := newFakeTaskStore(pendingTask(1))
	uc := New(store, newFakePhotoStore(), clock.Fixed{T: testNow}, nil)

	_, err := uc.CompleteTask(context.Background(), 1, Request{
		Parts: []PartUsage{{Name: "Oil Filter", Qty: "2"}, {Name: "Brake Pads", Qty: "1"}},
	})
	if err != nil {
		t.Fatalf("first completion failed: %v", err)
	}

	_, err = uc.CompleteTask(context.Background(), 1, Request{
		Parts: []PartUsage{{Name: "Air Filter", Qty: "1"}},
	})
	if err != nil {
		t.Fatalf("second completion failed: %v", err)
	}

	parts := store.parts[1]
	if len(parts) != 1 || parts[0].PartName != "Air Filter" {
		t.Fatalf("parts = %+v, want only Air Filter from the resubmission", parts)
	}
}

func TestCompleteTaskKeepsPartSubmissionOrder(t *testing.T) {
	store := newFakeTaskStore(pendingTask(1))
	uc := New(store, newFakePhotoStore(), clock.Fixed{T: testNow}, nil)

	_, err := uc.CompleteTask(context.Background(), 1, Request{
		Parts: []PartUsage{
			{Name: "Tires", Qty: "4"},
			{Name: "Air Filter", Qty: "1"},
			{Name: "Brake Pads", Qty: "2"},
		},
	})
	if err != nil {
		t.Fatalf("CompleteTask failed: %v", err)
	}

	want := []string{"Tires", "Air Filter", "Brake Pads"}
	parts := store.parts[1]
	if len(parts) != len(want) {
		t.Fatalf("stored %d parts, want %d", len(parts), len(want))
	}
	for i, name := range want {
		if parts[i].PartName != name {
			t.Errorf("parts[%d] = %s, want %s (submission order must be kept)", i, parts[i].PartName, name)
		}
	}
}

func TestCompleteTaskPhotoNameAndStorage(t *testing.T) {
	store := newFakeTaskStore(pendingTask(7))
	photos := newFakePhotoStore()
	uc := New(store, photos, clock.Fixed{T: testNow}, nil)

	_, err := uc.CompleteTask(context.Background(), 7, Request{
		Photos: map[string]PhotoUpload{
			domain.PhotoKindBefore: {Filename: "shot.JPG", Data: []byte("before")},
			domain.PhotoKindAfter:  {Filename: "done.png", Data: []byte("after")},
		},
	})
	if err != nil {
		t.Fatalf("CompleteTask failed: %v", err)
	}

	wantBefore := "task7_before_20250820143005.jpg"
	wantAfter := "task7_after_20250820143005.png"
	if _, ok := photos.saved[wantBefore]; !ok {
		t.Errorf("before photo not saved as %s, saved: %v", wantBefore, keys(photos.saved))
	}
	if _, ok := photos.saved[wantAfter]; !ok {
		t.Errorf("after photo not saved as %s, saved: %v", wantAfter, keys(photos.saved))
	}

	attached := store.photos[7]
	if len(attached) != 2 {
		t.Fatalf("attached %d photo records, want 2", len(attached))
	}
}

func TestCompleteTaskRejectsBadExtension(t *testing.T) {
	store := newFakeTaskStore(pendingTask(1))
	photos := newFakePhotoStore()
	uc := New(store, photos, clock.Fixed{T: testNow}, nil)

	_, err := uc.CompleteTask(context.Background(), 1, Request{
		Photos: map[string]PhotoUpload{
			domain.PhotoKindBefore: {Filename: "report.pdf", Data: []byte("nope")},
			domain.PhotoKindAfter:  {Filename: "ok.webp", Data: []byte("yes")},
		},
	})
	if err != nil {
		t.Fatalf("a rejected photo must not fail the completion: %v", err)
	}
	if len(photos.saved) != 1 {
		t.Errorf("saved %d photos, want 1 (pdf rejected, webp kept)", len(photos.saved))
	}
	if len(store.photos[1]) != 1 {
		t.Errorf("attached %d photo records, want 1", len(store.photos[1]))
	}
}

func TestCompleteTaskPhotosAccumulate(t *testing.T) {
	store := newFakeTaskStore(pendingTask(1))
	photos := newFakePhotoStore()
	uc := New(store, photos, clock.Fixed{T: testNow}, nil)

	for i := 0; i < 2; i++ {
		_, err := uc.CompleteTask(context.Background(), 1, Request{
			Photos: map[string]PhotoUpload{
				domain.PhotoKindAfter: {Filename: "done.jpeg", Data: []byte("x")},
			},
		})
		if err != nil {
			t.Fatalf("completion %d failed: %v", i, err)
		}
	}

	if len(store.photos[1]) != 2 {
		t.Errorf("attached %d photo records across two completions, want 2", len(store.photos[1]))
	}
}

func TestCompleteTaskPhotoSaveFailurePropagates(t *testing.T) {
	store := newFakeTaskStore(pendingTask(1))
	photos := newFakePhotoStore()
	photos.saveErr = errors.New("disk full")
	uc := New(store, photos, clock.Fixed{T: testNow}, nil)

	_, err := uc.CompleteTask(context.Background(), 1, Request{
		Photos: map[string]PhotoUpload{
			domain.PhotoKindAfter: {Filename: "done.png", Data: []byte("x")},
		},
	})
	if err == nil {
		t.Fatal("expected photo save error to propagate")
	}
	if store.tasks[1].Status != domain.StatusPending {
		t.Errorf("task status changed despite failed save")
	}
}

func keys(m map[string][]byte) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
