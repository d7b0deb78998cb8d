package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dnslin/cloudstore-desktop/core/dashboard"
	"github.com/dnslin/cloudstore-desktop/core/format"
	"github.com/dnslin/cloudstore-desktop/core/model"
)

// newDashboardCmd 用文本视图驱动仪表盘控制器，一次性渲染
// 文件夹与当前文件夹的文件列表。
func newDashboardCmd(a *app) *cobra.Command {
	var folderID string
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "渲染仪表盘概览",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view := &consoleView{}
			ctrl := dashboard.NewController(a.client, a.tasks, view, &consoleNotifier{})
			if folderID != "" {
				ctrl.SelectFolder(cmd.Context(), folderID)
			}
			ctrl.Refresh(cmd.Context())
			return view.err
		},
	}
	cmd.Flags().StringVar(&folderID, "folder", "", "指定要展开的文件夹 ID")
	return cmd
}

// consoleView 把控制器的渲染调用落到标准输出。
type consoleView struct {
	err error
}

func (v *consoleView) RenderFolders(folders []model.Folder, selectedID string) {
	if len(folders) == 0 {
		fmt.Println("（无文件夹）")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  \tID\t名称")
	for _, folder := range folders {
		marker := " "
		if folder.ID == selectedID {
			marker = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", marker, folder.ID, folder.Name)
	}
	if err := w.Flush(); err != nil && v.err == nil {
		v.err = err
	}
}

func (v *consoleView) RenderFiles(files []model.File) {
	if len(files) == 0 {
		fmt.Println("（空文件夹）")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\t名称\t大小\t修改时间")
	for _, file := range files {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			file.ID, file.Name, format.FileSize(file.Size), format.DateString(file.Updated))
	}
	if err := w.Flush(); err != nil && v.err == nil {
		v.err = err
	}
}

func (v *consoleView) ShowDeleteConfirm(item dashboard.PendingDelete) {}
func (v *consoleView) CloseDeleteConfirm()                           {}

// consoleNotifier 把提示打到标准错误。
type consoleNotifier struct{}

func (consoleNotifier) Info(message string)    { fmt.Fprintln(os.Stderr, message) }
func (consoleNotifier) Success(message string) { fmt.Fprintln(os.Stderr, message) }
func (consoleNotifier) Error(message string)   { fmt.Fprintln(os.Stderr, "错误:", message) }
