package main

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dnslin/cloudstore-desktop/core/auth"
	"github.com/dnslin/cloudstore-desktop/core/cloudstore"
	"github.com/dnslin/cloudstore-desktop/core/httpclient"
	"github.com/dnslin/cloudstore-desktop/core/logging"
	"github.com/dnslin/cloudstore-desktop/core/store"
	"github.com/dnslin/cloudstore-desktop/core/task"
)

// 环境变量，flag 未显式提供时作为默认值。
const (
	envBaseURL   = "CLOUDSTORE_URL"
	envStatePath = "CLOUDSTORE_STATE"
)

// app 汇聚各子命令共享的依赖，在 PersistentPreRunE 中装配。
type app struct {
	logger  *zap.Logger
	kv      store.KeyValue
	session *auth.Manager
	client  *cloudstore.Client
	tasks   *task.Manager
}

var (
	flagBaseURL    string
	flagStatePath  string
	flagLogLevel   string
	flagLogFormat  string
	flagConcurrent int
	flagRateLimit  float64
)

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "cloudstore",
		Short:         "CloudStore 云存储客户端",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&flagBaseURL, "url", "", "后端地址（默认取 "+envBaseURL+"）")
	flags.StringVar(&flagStatePath, "state", "", "本地状态文件路径（默认取 "+envStatePath+"）")
	flags.StringVar(&flagLogLevel, "log-level", "warn", "日志级别: debug/info/warn/error")
	flags.StringVar(&flagLogFormat, "log-format", "console", "日志格式: console/json")
	flags.IntVar(&flagConcurrent, "concurrent", 3, "上传并发上限")
	flags.Float64Var(&flagRateLimit, "rate-limit", 0, "每秒请求数上限，0 表示不限流")

	root.AddCommand(
		newLoginCmd(a),
		newRegisterCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newFoldersCmd(a),
		newMkdirCmd(a),
		newRmdirCmd(a),
		newLsCmd(a),
		newUploadCmd(a),
		newRmCmd(a),
		newThemeCmd(a),
		newDashboardCmd(a),
	)
	return root
}

// init 装配日志、本地存储、会话与客户端。
func (a *app) init() error {
	logger, err := logging.New(logging.Config{Level: flagLogLevel, Format: flagLogFormat})
	if err != nil {
		return err
	}
	a.logger = logger

	statePath := flagStatePath
	if statePath == "" {
		statePath = os.Getenv(envStatePath)
	}
	if statePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		statePath = filepath.Join(home, ".cloudstore", "state.json")
	}
	fileStore, err := store.NewFileStore(statePath)
	if err != nil {
		return err
	}
	a.kv = fileStore
	a.session = auth.NewManager(a.kv)

	baseURL := flagBaseURL
	if baseURL == "" {
		baseURL = os.Getenv(envBaseURL)
	}

	httpOpts := []httpclient.Option{
		httpclient.WithHTTPClient(&http.Client{Timeout: 5 * time.Minute}),
		httpclient.WithLogger(logging.NewAdapter(logger)),
	}
	if flagRateLimit > 0 {
		httpOpts = append(httpOpts, httpclient.WithRateLimiter(
			httpclient.NewTokenBucketLimiter(flagRateLimit, 1),
		))
	}

	a.client = cloudstore.NewClient(a.session,
		cloudstore.WithBaseURL(baseURL),
		cloudstore.WithHTTPClient(httpclient.NewClient(httpOpts...)),
		cloudstore.WithLogger(logging.NewAdapter(logger)),
	)
	a.tasks = task.NewManager(task.WithMaxConcurrent(flagConcurrent))
	return nil
}
