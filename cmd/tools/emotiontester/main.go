package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/zhouzirui/emotion-detector/internal/config"
	emotionservice "github.com/zhouzirui/emotion-detector/internal/service/emotion"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Warn("无法加载 .env，改用系统环境变量")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("配置加载失败: %v", err)
	}

	text := flag.String("text", "", "待分析文本，留空时读取剩余参数")
	asJSON := flag.Bool("json", false, "以 JSON 输出完整结果")
	timeout := flag.Duration("timeout", 15*time.Second, "整体超时时间")
	noSimulation := flag.Bool("no-simulation", false, "分类失败时不使用关键词模拟")
	flag.Parse()

	input := *text
	if input == "" {
		input = strings.Join(flag.Args(), " ")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	classifier, err := emotionservice.NewClassifier(ctx, cfg.Detector, cfg.AI)
	if err != nil {
		logrus.Fatalf("分类器初始化失败: %v", err)
	}

	svc := emotionservice.NewService(classifier, emotionservice.Config{
		SimulationEnabled: cfg.Detector.SimulationEnabled && !*noSimulation,
	}, nil)

	result, err := svc.Detect(ctx, input)
	if err != nil {
		logrus.Fatalf("检测失败: %v", err)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			logrus.Fatalf("输出失败: %v", err)
		}
		return
	}

	fmt.Println(result.Sentence())
	if result.Simulated {
		logrus.Warn("分类服务不可用，以上为关键词模拟结果")
	}
}
