package main

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"

	"github.com/dnslin/cloudstore-desktop/core/cloudstore"
	"github.com/dnslin/cloudstore-desktop/core/format"
	"github.com/dnslin/cloudstore-desktop/core/task"
)

func newUploadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <folder-id> <file>...",
		Short: "上传本地文件到指定文件夹",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			folderID := args[0]
			paths := args[1:]

			var opened []*os.File
			defer func() {
				for _, f := range opened {
					f.Close()
				}
			}()

			var mu sync.Mutex
			var wg sync.WaitGroup
			finished := make(map[string]bool)

			a.tasks.Subscribe(func(t *task.Task) {
				mu.Lock()
				defer mu.Unlock()
				status := t.GetStatus()
				switch {
				case status == task.TaskStatusRunning:
					fmt.Printf("\r%s: %.1f%%", t.FileName, t.GetPercent())
				case status.Terminal() && !finished[t.ID]:
					finished[t.ID] = true
					switch status {
					case task.TaskStatusCompleted:
						fmt.Printf("\r%s: 完成 (%s)\n", t.FileName, t.File.ID)
					default:
						fmt.Printf("\r%s: %s（%s）\n", t.FileName, status, t.GetMessage())
					}
					wg.Done()
				}
			})

			for _, path := range paths {
				info, err := os.Stat(path)
				if err != nil {
					return err
				}
				mimeType := mime.TypeByExtension(filepath.Ext(path))
				if mimeType == "" {
					mimeType = "application/octet-stream"
				}
				if err := format.ValidateUpload(info.Size(), mimeType); err != nil {
					return fmt.Errorf("%s: %s", path, err)
				}
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				opened = append(opened, f)
				wg.Add(1)
				if _, err := a.tasks.AddUpload(cloudstore.Upload{
					Name:     filepath.Base(path),
					Size:     info.Size(),
					Type:     mimeType,
					FolderID: folderID,
					Content:  f,
				}, a.client); err != nil {
					wg.Done()
					return err
				}
			}

			wg.Wait()
			if len(a.tasks.ListTasksByStatus(task.TaskStatusFailed)) > 0 {
				return errors.New("部分文件上传失败")
			}
			return nil
		},
	}
}

func newRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <file-id>",
		Short: "删除文件",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := a.client.DeleteFile(cmd.Context(), args[0])
			if !result.Success {
				return errors.New(result.Error)
			}
			fmt.Println("已删除")
			return nil
		},
	}
}
