package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dnslin/cloudstore-desktop/core/store"
)

func newThemeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark]",
		Short:     "查看或切换主题",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				theme, ok, err := a.kv.Get(store.KeyTheme)
				if err != nil {
					return err
				}
				if !ok {
					theme = "light"
				}
				fmt.Println(theme)
				return nil
			}
			if args[0] != "light" && args[0] != "dark" {
				return fmt.Errorf("未知主题: %s", args[0])
			}
			if err := a.kv.Set(store.KeyTheme, args[0]); err != nil {
				return err
			}
			fmt.Println("主题已切换为", args[0])
			return nil
		},
	}
}
