package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"tx-submitter-sol/internal/config"
	"tx-submitter-sol/internal/credential"
	"tx-submitter-sol/internal/logic/submit"
	"tx-submitter-sol/internal/svc"
	"tx-submitter-sol/internal/types"
	"tx-submitter-sol/pkg/logger"

	"github.com/joho/godotenv"
)

const (
	exitOK         = 0
	exitFailure    = 1
	exitCredential = 2
	exitAddress    = 3
	exitSubmission = 4
)

var (
	configFile = flag.String("f", "etc/submit.yaml", "the config file")
	envFile    = flag.String("env", ".env", "optional dotenv file loaded before reading credentials")
)

func main() {
	flag.Parse()
	os.Exit(run(*configFile, *envFile, os.Stdout))
}

func run(configPath, envPath string, stdout io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("panic: %+v\nstack: %s", r, debug.Stack())
			code = exitFailure
		}
		logger.Sync()
	}()

	// .env 不存在时忽略，其余错误视为配置错误
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "load env file %s: %v\n", envPath, err)
			return exitFailure
		}
	}

	c, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return exitFailure
	}
	if err := logger.Init(c.Log.ToLogOption()); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		return exitFailure
	}

	reporter, err := submit.NewReporter(stdout, c.Report.Format)
	if err != nil {
		logger.Errorf("%v", err)
		return exitFailure
	}

	sc, err := svc.NewServiceContext(c)
	if err != nil {
		logger.Errorf("%v", err)
		return exitFailure
	}

	// Ctrl+C 会取消正在进行的 RPC 调用与确认等待
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Infof("正在启动客户端...")
	res, err := sc.NewWorkflow().Run(ctx)
	if err != nil {
		logger.Errorf("❌ 交易失败: %v", err)
		return exitCode(err)
	}

	logger.Infof("✅ 交易成功！signature=%s", res.Signature)
	if err := reporter.Report(res); err != nil {
		logger.Errorf("write report: %v", err)
		return exitFailure
	}
	return exitOK
}

func exitCode(err error) int {
	var loadErr *credential.LoadError
	var addrErr *types.AddressFormatError
	var subErr *submit.SubmissionError
	switch {
	case errors.As(err, &loadErr):
		return exitCredential
	case errors.As(err, &addrErr):
		return exitAddress
	case errors.As(err, &subErr):
		return exitSubmission
	default:
		return exitFailure
	}
}
