package completion

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/fleetgo/maintenance/domain"
	"github.com/fleetgo/maintenance/pkg/clock"
	"github.com/fleetgo/maintenance/repository"
)

// TaskStore is the task access the completion flow needs.
type TaskStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	Complete(ctx context.Context, id int64, completion repository.TaskCompletion) (*domain.Task, error)
}

// PhotoSaver persists uploaded photo bytes under a generated name.
type PhotoSaver interface {
	Save(name string, data []byte) error
}

// PhotoUpload is one uploaded evidence file.
type PhotoUpload struct {
	Filename string
	Data     []byte
}

// PartUsage is one selected part with its quantity exactly as
// submitted; coercion happens here.
type PartUsage struct {
	Name string
	Qty  string
}

// Request carries a completion submission. Parts keep the submission
// order, which is also the order the replaced rows are stored in.
type Request struct {
	Signature string
	Status    string
	Parts     []PartUsage
	Photos    map[string]PhotoUpload
}

// UseCase applies the completion transition: status change, wholesale
// part-set replacement, photo attachment and signature capture.
type UseCase struct {
	tasks  TaskStore
	photos PhotoSaver
	clock  clock.Clock
	logger *zap.Logger
}

func New(tasks TaskStore, photos PhotoSaver, clk clock.Clock, logger *zap.Logger) *UseCase {
	if clk == nil {
		clk = clock.Real{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		photos: photos,
		clock:  clk,
		logger: logger,
	}
}

// CompleteTask validates the task exists and applies the submitted
// completion. Resubmitting a completed task is allowed and overwrites
// the prior status, signature and part set; photos accumulate.
func (uc *UseCase) CompleteTask(ctx context.Context, taskID int64, req Request) (*domain.Task, error) {
	if _, err := uc.tasks.GetByID(ctx, taskID); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = domain.StatusCompleted
	}
	if status != domain.StatusCompleted && status != domain.StatusPending {
		// Permissive on purpose: the transition table is not enforced,
		// but an unexpected status is worth a trace.
		uc.logger.Info("non-standard completion status accepted",
			zap.Int64("task_id", taskID),
			zap.String("status", status),
		)
	}

	now := uc.clock.Now()

	completion := repository.TaskCompletion{
		Status:      status,
		CompletedAt: now,
		Signature:   strings.TrimSpace(req.Signature),
		Parts:       buildParts(taskID, req.Parts),
	}

	for _, kind := range []string{domain.PhotoKindBefore, domain.PhotoKindAfter} {
		upload, ok := req.Photos[kind]
		if !ok || upload.Filename == "" {
			continue
		}
		ext := domain.PhotoExtension(upload.Filename)
		if ext == "" {
			uc.logger.Warn("photo rejected by extension check",
				zap.Int64("task_id", taskID),
				zap.String("kind", kind),
				zap.String("filename", upload.Filename),
			)
			continue
		}

		name := fmt.Sprintf("task%d_%s_%s.%s", taskID, kind, now.Format("20060102150405"), ext)
		if err := uc.photos.Save(name, upload.Data); err != nil {
			return nil, err
		}
		completion.Photos = append(completion.Photos, domain.TaskPhoto{
			TaskID:   taskID,
			Kind:     kind,
			Filename: name,
		})
	}

	return uc.tasks.Complete(ctx, taskID, completion)
}

// buildParts coerces submitted quantities in submission order: anything
// that does not parse as an integer becomes 1, and nothing below 1 is
// stored.
func buildParts(taskID int64, usages []PartUsage) []domain.TaskPart {
	if len(usages) == 0 {
		return nil
	}

	parts := make([]domain.TaskPart, 0, len(usages))
	for _, usage := range usages {
		parts = append(parts, domain.TaskPart{
			TaskID:   taskID,
			PartName: usage.Name,
			Qty:      coerceQty(usage.Qty),
		})
	}
	return parts
}

func coerceQty(raw string) int {
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || qty < 1 {
		return 1
	}
	return qty
}
