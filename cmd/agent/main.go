package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Hara602/dirSentry/internal/analysis"
	"github.com/Hara602/dirSentry/internal/filter"
	"github.com/Hara602/dirSentry/internal/model"
	"github.com/Hara602/dirSentry/internal/store"
	"github.com/Hara602/dirSentry/internal/sysutil"
	"github.com/Hara602/dirSentry/internal/watcher"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	app := &cli.App{
		Name:  "dirsentry",
		Usage: "poll a directory tree and report new or modified files",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Aliases: []string{"d"}, Usage: "directory to watch", Required: true},
			&cli.StringFlag{Name: "state", Usage: "snapshot file path (default: dotfile next to the watched dir)"},
			&cli.StringFlag{Name: "db", Usage: "keep the snapshot in this SQLite database instead of a JSON file"},
			&cli.DurationFlag{Name: "interval", Aliases: []string{"i"}, Value: time.Second, Usage: "poll interval"},
			&cli.StringSliceFlag{Name: "include", Usage: "regex, only matching paths are watched (repeatable)"},
			&cli.StringSliceFlag{Name: "exclude", Usage: "regex, matching paths are skipped (repeatable)"},
			&cli.BoolFlag{Name: "once", Usage: "run a single check and exit"},
			&cli.BoolFlag{Name: "debug", Usage: "verbose logging"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	// 初始化日志
	sysutil.InitLogger(c.Bool("debug"))
	defer sysutil.Log.Sync()

	dir, err := filepath.Abs(c.String("dir"))
	if err != nil {
		return err
	}

	pathFilter, err := filter.New(c.StringSlice("include"), c.StringSlice("exclude"))
	if err != nil {
		return err
	}

	snapStore, err := openStore(c, dir)
	if err != nil {
		return err
	}
	defer snapStore.Close()

	cfg := watcher.Config{
		Root:     dir,
		Filter:   pathFilter,
		Store:    snapStore,
		Interval: c.Duration("interval"),
		OnChange: reportChanges(analysis.NewInspector()),
	}

	if c.Bool("once") {
		cs, err := watcher.CheckOnce(cfg)
		if err != nil {
			return err
		}
		if cs.Empty() {
			sysutil.Log.Info("No files have been modified since last check.")
		}
		return nil
	}

	sysutil.Log.Info("🛡️ Dir Sentry Agent Starting...",
		zap.String("dir", dir),
		zap.Duration("interval", cfg.Interval),
	)

	dirWatcher, err := watcher.New(cfg)
	if err != nil {
		sysutil.Log.Fatal("Watcher init failed", zap.Error(err))
	}
	if err := dirWatcher.Start(); err != nil {
		sysutil.Log.Fatal("Watcher start failed", zap.Error(err))
	}
	defer dirWatcher.Stop()

	// 捕获操作系统信号，优雅关闭
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	sysutil.Log.Info("Shutting down...")
	return nil
}

// openStore 按参数选择后端: --db 用 SQLite, 否则 JSON 文件
// 默认的 JSON 文件放在被监控目录旁边, 免得快照文件自己触发变更
func openStore(c *cli.Context, dir string) (store.SnapshotStore, error) {
	if db := c.String("db"); db != "" {
		return store.NewSQLiteStore(db)
	}
	state := c.String("state")
	if state == "" {
		state = filepath.Join(filepath.Dir(dir), ".dirsentry_snapshot.json")
	}
	return store.NewFileStore(state), nil
}

// reportChanges 默认回调: 逐个文件打日志, 顺带检查新文件是不是伪装类型
func reportChanges(inspector *analysis.Inspector) func(model.ChangeSet) {
	return func(cs model.ChangeSet) {
		added := make(map[string]bool, len(cs.Added))
		for _, p := range cs.Added {
			added[p] = true
		}

		sysutil.Log.Info("📂 Changes detected",
			zap.Int("added", len(cs.Added)),
			zap.Int("changed", len(cs.Changed)),
		)
		for _, path := range cs.Changed {
			op := "MODIFY"
			if added[path] {
				op = "CREATE"
			}
			size := "unknown"
			if fi, err := os.Stat(path); err == nil {
				size = humanize.Bytes(uint64(fi.Size()))
			}
			sysutil.Log.Info("📄 File changed",
				zap.String("op", op),
				zap.String("file", path),
				zap.String("size", size),
			)

			result, err := inspector.Inspect(path)
			if err != nil {
				sysutil.LogSugar.Debugf("filetype inspect failed:%s, err:%v", path, err)
				continue
			}
			if result.IsMasquerade {
				sysutil.LogSugar.Warnf("find masquerade file![%s]%s", result.RiskLevel, path)
				sysutil.LogSugar.Warnf("detailed:%s", result.Message)
			}
		}
	}
}
