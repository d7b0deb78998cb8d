package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd(a *app) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <identifier>",
		Short: "以用户名或邮箱登录",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pass, err := resolvePassword(password)
			if err != nil {
				return err
			}
			result := a.client.Login(cmd.Context(), args[0], pass)
			if !result.Success {
				return errors.New(result.Error)
			}
			fmt.Printf("已登录: %s\n", result.Data.Username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "口令（省略时从标准输入读取）")
	return cmd
}

func newRegisterCmd(a *app) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "注册新账号",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pass, err := resolvePassword(password)
			if err != nil {
				return err
			}
			result := a.client.Register(cmd.Context(), args[0], pass, pass)
			if !result.Success {
				return errors.New(result.Error)
			}
			fmt.Printf("已注册: %s（请使用 login 登录）\n", result.Data.Username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "口令（省略时从标准输入读取）")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "清除本地会话",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.client.Logout()
			fmt.Println("已登出")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "显示当前会话的用户",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session := a.session.Session()
			if !session.Authenticated() {
				return errors.New("未登录")
			}
			if session.User == nil {
				fmt.Println("已登录（用户信息缺失）")
				return nil
			}
			fmt.Printf("%s (%s)\n", session.User.Username, session.User.ID)
			return nil
		},
	}
}

// resolvePassword 优先使用 flag，未给出时从标准输入读一行。
func resolvePassword(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	fmt.Fprint(os.Stderr, "口令: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	pass := strings.TrimRight(line, "\r\n")
	if pass == "" {
		return "", errors.New("口令不能为空")
	}
	return pass, nil
}
