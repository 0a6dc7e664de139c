package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/go-kratos/kratos/v2"

	"github.com/Sami210105/Real-estate-Chatbot/app/analyzer/internal/server"
	"github.com/Sami210105/Real-estate-Chatbot/app/analyzer/pkg/config"
	"github.com/Sami210105/Real-estate-Chatbot/app/analyzer/pkg/dataset"
	"github.com/Sami210105/Real-estate-Chatbot/app/analyzer/pkg/engine"
	"github.com/Sami210105/Real-estate-Chatbot/app/analyzer/pkg/logger"
	"github.com/Sami210105/Real-estate-Chatbot/app/analyzer/pkg/storage"
	"github.com/Sami210105/Real-estate-Chatbot/app/analyzer/pkg/summary"
)

var (
	Name    = "analyzer"
	Version string

	flagconf string
	id, _    = os.Hostname()
)

func init() {
	flag.StringVar(&flagconf, "conf", "app/analyzer/configs/config.yaml", "config path, eg: -conf config.yaml")
}

func main() {
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.LoadConfig(flagconf)
	if err != nil {
		log.Fatalf("无法加载配置文件: %v", err)
	}

	// 2. 初始化日志
	if err = logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	logger.Log.Info("启动房产数据分析服务...")

	ctx := context.Background()

	// 3. 加载数据集，启动时只读一次
	table, err := dataset.Load(cfg.Dataset.Path, cfg.Dataset.Sheet)
	if err != nil {
		logger.Log.Fatalf("加载数据集失败: %v", err)
	}
	logger.Log.Infof("数据集已加载: %d 行, %d 列", len(table.Rows), len(table.Columns))

	// 4. 查询日志，数据库不可用时不影响查询
	var (
		queryLog engine.QueryLog
		history  server.History
	)
	if cfg.DB.Host != "" {
		store, err := storage.NewStorage(cfg.DB)
		if err != nil {
			logger.Log.Errorf("无法连接数据库: %v. 将不记录查询日志。", err)
		} else {
			defer store.Close()
			queryLog, history = store, store
			logger.Log.Info("已成功连接到数据库")
		}
	} else {
		logger.Log.Info("未配置数据库信息，跳过数据库连接")
	}

	// 5. 摘要生成
	summarizer, err := summary.NewSummarizer(ctx, cfg)
	if err != nil {
		logger.Log.Fatalf("%v", err)
	}

	eng := engine.NewEngine(table, summarizer, queryLog, cfg.Limits)
	hs := server.NewHTTPServer(cfg.Server, eng, history, logger.Kratos())

	app := kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Logger(logger.Kratos()),
		kratos.Server(hs),
	)
	if err := app.Run(); err != nil {
		logger.Log.Fatalf("服务退出: %v", err)
	}
}
