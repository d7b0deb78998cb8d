// Package dashboard 是仪表盘的显式状态机控制器：UI 层只调用命令方法，
// 渲染与提示通过注入的 View / Notifier 接口回流，业务流转与具体渲染
// 技术解耦。
package dashboard

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dnslin/cloudstore-desktop/core/cloudstore"
	"github.com/dnslin/cloudstore-desktop/core/model"
	"github.com/dnslin/cloudstore-desktop/core/task"
)

// Kind 待删除条目的类别。
type Kind int

const (
	// KindFile 文件。
	KindFile Kind = iota
	// KindFolder 文件夹。
	KindFolder
)

// String 返回类别的字符串表示。
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindFolder:
		return "folder"
	default:
		return "unknown"
	}
}

// PendingDelete 描述等待确认删除的条目。
type PendingDelete struct {
	ID   string
	Name string
	Kind Kind
}

// API 是控制器对数据访问层的依赖面。*cloudstore.Client 直接满足。
type API interface {
	ListFolders(ctx context.Context) []model.Folder
	ListFiles(ctx context.Context, folderID string) []model.File
	CreateFolder(ctx context.Context, name string) cloudstore.Result[*model.Folder]
	DeleteFile(ctx context.Context, id string) cloudstore.Result[cloudstore.Nothing]
	DeleteFolder(ctx context.Context, id string) cloudstore.Result[cloudstore.Nothing]
	UploadFile(ctx context.Context, up cloudstore.Upload, onProgress cloudstore.ProgressFunc) cloudstore.Result[*model.File]
	Logout()
}

// Pool 是控制器对上传任务池的依赖面。*task.Manager 直接满足。
type Pool interface {
	AddUpload(up cloudstore.Upload, uploader task.Uploader) (string, error)
}

// View 由 UI 层实现，负责渲染列表与删除确认框。
type View interface {
	RenderFolders(folders []model.Folder, selectedID string)
	RenderFiles(files []model.File)
	ShowDeleteConfirm(item PendingDelete)
	CloseDeleteConfirm()
}

// Notifier 由 UI 层实现，负责瞬态提示。
type Notifier interface {
	Info(message string)
	Success(message string)
	Error(message string)
}

// 面向用户的提示文案。
const (
	msgSelectFolderFirst = "Please select a folder first."
	msgFolderCreated     = "Folder created successfully."
	msgUploadSucceeded   = "Upload successful."
)

// Controller 持有仪表盘会话的全部可变状态：当前选中的文件夹与
// 等待确认的删除条目。所有命令都可以安全地并发调用。
type Controller struct {
	mu     sync.Mutex
	api    API
	pool   Pool
	view   View
	notify Notifier

	selectedFolderID string
	pending          *PendingDelete
}

// NewController 创建控制器。
func NewController(api API, pool Pool, view View, notifier Notifier) *Controller {
	return &Controller{
		api:    api,
		pool:   pool,
		view:   view,
		notify: notifier,
	}
}

// Refresh 重新加载文件夹列表并渲染。已选文件夹仍存在时保持选中，
// 否则落到第一个文件夹；随后按当前选择重载文件列表。
func (c *Controller) Refresh(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reloadFolders(ctx)
	c.reloadFiles(ctx)
}

// SelectFolder 切换当前文件夹并重载其文件列表。
func (c *Controller) SelectFolder(ctx context.Context, folderID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectedFolderID = folderID
	c.reloadFiles(ctx)
}

// SelectedFolder 返回当前选中的文件夹 ID，未选中时为空。
func (c *Controller) SelectedFolder() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedFolderID
}

// CreateFolder 创建文件夹。空白名称直接忽略；创建成功后自动选中
// 新文件夹并刷新两个列表。
func (c *Controller) CreateFolder(ctx context.Context, name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	result := c.api.CreateFolder(ctx, name)
	if !result.Success {
		c.notify.Error("Failed to create folder: " + result.Error)
		return
	}
	c.notify.Success(msgFolderCreated)
	c.selectedFolderID = result.Data.ID
	c.reloadFolders(ctx)
	c.reloadFiles(ctx)
}

// Upload 把选中的每个文件独立派发到任务池。未选中文件夹时整体拒绝。
func (c *Controller) Upload(uploads ...cloudstore.Upload) {
	c.mu.Lock()
	folderID := c.selectedFolderID
	c.mu.Unlock()

	if folderID == "" {
		c.notify.Error(msgSelectFolderFirst)
		return
	}
	for _, up := range uploads {
		up.FolderID = folderID
		c.notify.Info(fmt.Sprintf("Uploading %s...", up.Name))
		if _, err := c.pool.AddUpload(up, c.api); err != nil {
			c.notify.Error("Upload failed: " + err.Error())
		}
	}
}

// OnTaskUpdate 消费任务池的进度事件，供 task.Manager.Subscribe 接线。
// 上传完成且目标是当前文件夹时刷新文件列表。
func (c *Controller) OnTaskUpdate(ctx context.Context, t *task.Task) {
	if t == nil {
		return
	}
	switch t.Status {
	case task.TaskStatusCompleted:
		c.notify.Success(msgUploadSucceeded)
		c.mu.Lock()
		defer c.mu.Unlock()
		if t.FolderID == c.selectedFolderID {
			c.reloadFiles(ctx)
		}
	case task.TaskStatusFailed:
		c.notify.Error("Upload failed: " + t.Message)
	}
}

// RequestDelete 记录待删除条目并弹出确认框。
func (c *Controller) RequestDelete(item PendingDelete) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = &item
	c.view.ShowDeleteConfirm(item)
}

// PendingDeletion 返回待删除条目的副本，无待确认条目时为 nil。
func (c *Controller) PendingDeletion() *PendingDelete {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return nil
	}
	clone := *c.pending
	return &clone
}

// ConfirmDelete 执行删除。无论结果如何，待删除条目都被清空、
// 确认框都被关闭。删除成功后刷新受影响的列表。
func (c *Controller) ConfirmDelete(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := c.pending
	c.pending = nil
	defer c.view.CloseDeleteConfirm()
	if item == nil {
		return
	}

	var result cloudstore.Result[cloudstore.Nothing]
	switch item.Kind {
	case KindFolder:
		result = c.api.DeleteFolder(ctx, item.ID)
	default:
		result = c.api.DeleteFile(ctx, item.ID)
	}
	if !result.Success {
		c.notify.Error("Error: " + result.Error)
		return
	}

	c.notify.Success(fmt.Sprintf("%q was deleted successfully.", item.Name))
	if item.Kind == KindFolder {
		if item.ID == c.selectedFolderID {
			c.selectedFolderID = ""
		}
		c.reloadFolders(ctx)
	}
	c.reloadFiles(ctx)
}

// CancelDelete 放弃删除：清空待删除条目并关闭确认框。
func (c *Controller) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = nil
	c.view.CloseDeleteConfirm()
}

// Logout 清空会话。页面跳转由 UI 层负责。
func (c *Controller) Logout() {
	c.api.Logout()
}

// reloadFolders 重新加载并渲染文件夹列表，按规则修正当前选择。
// 调用方需持有 c.mu。
func (c *Controller) reloadFolders(ctx context.Context) {
	folders := c.api.ListFolders(ctx)

	keep := false
	for _, folder := range folders {
		if folder.ID == c.selectedFolderID {
			keep = true
			break
		}
	}
	if !keep {
		c.selectedFolderID = ""
		if len(folders) > 0 {
			c.selectedFolderID = folders[0].ID
		}
	}
	c.view.RenderFolders(folders, c.selectedFolderID)
}

// reloadFiles 渲染当前文件夹的文件列表。未选中文件夹时渲染空列表，
// 数据访问层保证此时不发起网络请求。调用方需持有 c.mu。
func (c *Controller) reloadFiles(ctx context.Context) {
	c.view.RenderFiles(c.api.ListFiles(ctx, c.selectedFolderID))
}
