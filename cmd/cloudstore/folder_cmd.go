package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dnslin/cloudstore-desktop/core/format"
)

func newFoldersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "folders",
		Short: "列出文件夹",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			folders := a.client.ListFolders(cmd.Context())
			if len(folders) == 0 {
				fmt.Println("（无文件夹）")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\t名称")
			for _, folder := range folders {
				fmt.Fprintf(w, "%s\t%s\n", folder.ID, folder.Name)
			}
			return w.Flush()
		},
	}
}

func newMkdirCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir <name>",
		Short: "创建文件夹",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := a.client.CreateFolder(cmd.Context(), args[0])
			if !result.Success {
				return errors.New(result.Error)
			}
			fmt.Printf("已创建: %s (%s)\n", result.Data.Name, result.Data.ID)
			return nil
		},
	}
}

func newRmdirCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rmdir <folder-id>",
		Short: "删除文件夹（非空时后端会拒绝）",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := a.client.DeleteFolder(cmd.Context(), args[0])
			if !result.Success {
				return errors.New(result.Error)
			}
			fmt.Println("已删除")
			return nil
		},
	}
}

func newLsCmd(a *app) *cobra.Command {
	var showURL bool
	cmd := &cobra.Command{
		Use:   "ls <folder-id>",
		Short: "列出文件夹内的文件",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files := a.client.ListFiles(cmd.Context(), args[0])
			if len(files) == 0 {
				fmt.Println("（空文件夹）")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\t名称\t大小\t类型\t修改时间")
			for _, file := range files {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					file.ID, file.Name,
					format.FileSize(file.Size),
					format.FileTypeOf(file.Name),
					format.DateString(file.Updated),
				)
				if showURL {
					fmt.Fprintf(w, "\t%s\n", a.client.DownloadURL(&file))
				}
			}
			return w.Flush()
		},
	}
	// 不叫 --url：会与根命令的后端地址 flag 同名冲突
	cmd.Flags().BoolVar(&showURL, "show-url", false, "同时输出下载地址")
	return cmd
}
