package task

import (
	domain "file-vault-api/internal/domain/task"
)

func fromDBModel(model *Task) *domain.Task {
	var t = &domain.Task{
		ID:         domain.ID(model.ID),
		Kind:       domain.Kind(model.Kind),
		TargetUUID: model.TargetUUID,

		DueAt:       model.DueAt,
		IsProcessed: model.IsProcessed,

		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}

	return t
}

func fromDBModels(models *Tasks) domain.Tasks {
	ts := make(domain.Tasks, len(*models))
	for idx, t := range *models {
		ts[idx] = fromDBModel(t)
	}

	return ts
}
