package task

import (
	"context"

	"github.com/dnslin/cloudstore-desktop/core/cloudstore"
	"github.com/dnslin/cloudstore-desktop/core/model"
)

// Uploader 上传器接口，由数据访问层实现。
type Uploader interface {
	UploadFile(ctx context.Context, up cloudstore.Upload, onProgress cloudstore.ProgressFunc) cloudstore.Result[*model.File]
}

// AddUpload 添加上传任务并立即返回任务 ID。传输在池内异步执行，
// 结果通过 Subscribe 注册的回调送达。
func (m *Manager) AddUpload(up cloudstore.Upload, uploader Uploader) (string, error) {
	task := m.CreateTask()
	task.FileName = up.Name
	task.Size = up.Size
	task.FolderID = up.FolderID

	go m.runUpload(task, up, uploader)
	return task.ID, nil
}

// runUpload 执行上传任务。
func (m *Manager) runUpload(task *Task, up cloudstore.Upload, uploader Uploader) {
	ctx, cancel := context.WithCancel(context.Background())
	m.registerCancel(task.ID, cancel)
	defer cancel()
	defer m.unregisterCancel(task.ID)

	// 获取信号量；排队期间被取消则直接退出
	if err := m.acquireSemaphore(ctx); err != nil {
		if task.GetStatus() != TaskStatusCanceled {
			task.SetStatus(TaskStatusCanceled)
			m.notifyProgress(task)
		}
		return
	}
	defer m.releaseSemaphore()

	if task.GetStatus() == TaskStatusCanceled {
		return
	}

	task.SetStatus(TaskStatusRunning)
	m.notifyProgress(task)

	result := uploader.UploadFile(ctx, up, func(percent float64) {
		task.SetPercent(percent)
		m.notifyProgress(task)
	})

	if task.GetStatus() == TaskStatusCanceled {
		// Cancel 已发过通知，传输结果不再覆盖终态
		return
	}
	if ctx.Err() != nil {
		task.SetStatus(TaskStatusCanceled)
		m.notifyProgress(task)
		return
	}

	if !result.Success {
		task.setFailure(result.Error)
		m.notifyProgress(task)
		return
	}
	task.setResult(result.Data)
	m.notifyProgress(task)
}
