// Package task 提供带并发上限与取消能力的上传任务调度。
package task

import (
	"sync"
	"time"

	"github.com/dnslin/cloudstore-desktop/core/model"
)

// TaskStatus 任务状态。
type TaskStatus int

const (
	// TaskStatusPending 等待中。
	TaskStatusPending TaskStatus = iota
	// TaskStatusRunning 运行中。
	TaskStatusRunning
	// TaskStatusCompleted 已完成。
	TaskStatusCompleted
	// TaskStatusFailed 失败。
	TaskStatusFailed
	// TaskStatusCanceled 已取消。
	TaskStatusCanceled
)

// String 返回任务状态的字符串表示。
func (s TaskStatus) String() string {
	switch s {
	case TaskStatusPending:
		return "pending"
	case TaskStatusRunning:
		return "running"
	case TaskStatusCompleted:
		return "completed"
	case TaskStatusFailed:
		return "failed"
	case TaskStatusCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Terminal 判断状态是否为终态。
func (s TaskStatus) Terminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusFailed || s == TaskStatusCanceled
}

// Task 表示一个上传任务。
type Task struct {
	mu sync.RWMutex

	// 基本信息
	ID        string     // 任务唯一标识
	Status    TaskStatus // 任务状态
	CreatedAt time.Time  // 创建时间
	UpdatedAt time.Time  // 更新时间

	// 文件信息
	FileName string // 文件名
	Size     int64  // 文件大小（字节）
	FolderID string // 目标文件夹 ID

	// 进度信息，完成百分比 [0,100]，单调不减
	Percent float64

	// 结果信息
	File    *model.File // 成功时后端返回的文件记录
	Message string      // 失败时面向用户的文案
}

// NewTask 创建新任务。
func NewTask(id string) *Task {
	now := time.Now()
	return &Task{
		ID:        id,
		Status:    TaskStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetStatus 设置任务状态。
func (t *Task) SetStatus(status TaskStatus) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Status = status
	t.UpdatedAt = time.Now()
}

// GetStatus 获取任务状态。
func (t *Task) GetStatus() TaskStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.Status
}

// SetPercent 设置完成百分比，忽略回退值以保持单调。
func (t *Task) SetPercent(percent float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if percent < t.Percent {
		return
	}
	if percent > 100 {
		percent = 100
	}
	t.Percent = percent
	t.UpdatedAt = time.Now()
}

// GetPercent 获取完成百分比。
func (t *Task) GetPercent() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.Percent
}

// setResult 记录成功结果。
func (t *Task) setResult(file *model.File) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.File = file
	t.Percent = 100
	t.Status = TaskStatusCompleted
	t.UpdatedAt = time.Now()
}

// setFailure 记录失败文案。
func (t *Task) setFailure(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Message = message
	t.Status = TaskStatusFailed
	t.UpdatedAt = time.Now()
}

// GetMessage 获取失败文案。
func (t *Task) GetMessage() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.Message
}

// Clone 返回任务的副本（用于安全传递给回调）。
func (t *Task) Clone() *Task {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return &Task{
		ID:        t.ID,
		Status:    t.Status,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		FileName:  t.FileName,
		Size:      t.Size,
		FolderID:  t.FolderID,
		Percent:   t.Percent,
		File:      t.File,
		Message:   t.Message,
	}
}

// ProgressCallback 进度回调函数类型。
type ProgressCallback func(task *Task)
