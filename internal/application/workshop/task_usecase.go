package workshop

import (
	"context"
	"strings"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// AddTask agrega un ítem a la lista de chequeo. Se permite en cualquier estado.
func (uc *JobUseCase) AddTask(ctx context.Context, jobID int64, in dto.AddTaskRequest) (*dto.JobTaskResponse, error) {
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return nil, domain.InvalidInputf("la descripción es obligatoria")
	}
	if _, err := uc.loadJob(ctx, jobID); err != nil {
		return nil, err
	}
	t := &entity.JobTask{JobID: jobID, Description: desc}
	if err := uc.repos.Tasks.Create(ctx, t); err != nil {
		return nil, domain.Storage("crear tarea", err)
	}
	return &dto.JobTaskResponse{ID: t.ID, Description: t.Description, IsCompleted: t.IsCompleted}, nil
}

// ToggleTask marca o desmarca una tarea del trabajo.
func (uc *JobUseCase) ToggleTask(ctx context.Context, jobID, taskID int64, completed bool) error {
	if _, err := uc.taskOf(ctx, jobID, taskID); err != nil {
		return err
	}
	if err := uc.repos.Tasks.SetCompleted(ctx, taskID, completed); err != nil {
		return domain.Storage("actualizar tarea", err)
	}
	return nil
}

// DeleteTask elimina una tarea del trabajo.
func (uc *JobUseCase) DeleteTask(ctx context.Context, jobID, taskID int64) error {
	if _, err := uc.taskOf(ctx, jobID, taskID); err != nil {
		return err
	}
	if err := uc.repos.Tasks.Delete(ctx, taskID); err != nil {
		return domain.Storage("eliminar tarea", err)
	}
	return nil
}

// AddImage registra la referencia a una foto ya guardada por el cliente.
func (uc *JobUseCase) AddImage(ctx context.Context, jobID int64, in dto.AddImageRequest) (*dto.JobImageResponse, error) {
	path := strings.TrimSpace(in.ImagePath)
	if path == "" {
		return nil, domain.InvalidInputf("la ruta de la imagen es obligatoria")
	}
	if _, err := uc.loadJob(ctx, jobID); err != nil {
		return nil, err
	}
	img := &entity.JobImage{JobID: jobID, ImagePath: path, Caption: strings.TrimSpace(in.Caption)}
	if err := uc.repos.Images.Create(ctx, img); err != nil {
		return nil, domain.Storage("registrar imagen", err)
	}
	return &dto.JobImageResponse{ID: img.ID, ImagePath: img.ImagePath, Caption: img.Caption, CreatedAt: img.CreatedAt}, nil
}

// taskOf devuelve la tarea solo si pertenece al trabajo indicado.
func (uc *JobUseCase) taskOf(ctx context.Context, jobID, taskID int64) (*entity.JobTask, error) {
	t, err := uc.repos.Tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, domain.Storage("leer tarea", err)
	}
	if t == nil || t.JobID != jobID {
		return nil, domain.NotFoundf("tarea %d del trabajo %d", taskID, jobID)
	}
	return t, nil
}
