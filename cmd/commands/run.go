package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"modarc"
	"modarc/config"
	"modarc/internal/application/usecase"
	"modarc/internal/application/usecase/abstraction"
	brokerRepo "modarc/internal/domain/repository/broker"
	"modarc/internal/domain/repository/storage"
	"modarc/internal/infrastructure/broker"
	"modarc/internal/infrastructure/cdn"
	"modarc/internal/infrastructure/minio"
	"modarc/internal/infrastructure/mongoindex"
	"modarc/internal/infrastructure/postgres"
	"modarc/internal/infrastructure/shell"
	"modarc/internal/infrastructure/stage"
	"modarc/internal/presentation/handler"
	"modarc/internal/presentation/middleware"
	"modarc/pkg/logger"
)

func HandleRun(args []string) {
	if len(args) < 3 {
		ExitOnError(errors.New("at least 1 arguments expected\nuse help command for more information"))
	}

	cfg, err := config.Load(args[2])
	if err != nil {
		ExitOnError(err)
	}

	logger.InitGlobalLogger(&cfg.Logger)

	logger.Info("running modarc", "version", modarc.StringVersion())

	db, err := postgres.Connect(cfg.DBConfig)
	if err != nil {
		ExitOnError(err)
	}

	idx, err := mongoindex.Connect(cfg.IndexConfig)
	if err != nil {
		ExitOnError(err)
	}

	brokerClient, err := broker.NewClient(cfg.BrokerConfig)
	if err != nil {
		ExitOnError(err)
	}

	jobs := broker.NewPublisher(brokerClient, cfg.JobPublisher)
	receiver := broker.NewReceiver(brokerClient)

	stager, err := stage.New(cfg.Stage)
	if err != nil {
		ExitOnError(err)
	}

	publisher, remover, err := buildStorage(cfg)
	if err != nil {
		ExitOnError(err)
	}

	writer := postgres.NewPostWriter(db)
	retriever := postgres.NewPostRetriever(db)
	dbRemover := postgres.NewPostRemover(db)
	users := postgres.NewUserRetriever(db)

	authorizer := usecase.NewAuthorizer(cfg.Auth.Secret, users)
	images := cdn.NewChecker(cfg.CDN)
	uploader := usecase.NewUploader(publisher, remover, writer, retriever, idx, jobs)
	scanner := usecase.NewScanner(retriever, idx,
		shell.NewExtractor(cfg.Extractor), stager, cfg.Scanner.ScratchRoot)
	lister := usecase.NewLister(idx, retriever)
	getter := usecase.NewGetter(retriever, idx)
	deleter := usecase.NewDeleter(retriever, dbRemover, remover, idx)
	reactor := usecase.NewReactor(writer, retriever, idx)

	uploadHandler := handler.NewUploadHandler(authorizer, images, retriever, stager, uploader)
	listHandler := handler.NewListHandler(lister)
	getHandler := handler.NewGetHandler(getter, reactor)
	reactHandler := handler.NewReactHandler(reactor)
	deleteHandler := handler.NewDeleteHandler(deleter)

	e := echo.New()
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, echo.HeaderContentLength},
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost,
			http.MethodDelete, http.MethodHead, http.MethodOptions},
		MaxAge: 86400,
	}))
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.Secure())

	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	e.GET("/upload", uploadHandler.Handle)
	e.GET("/posts", listHandler.HandleList)
	e.GET("/posts/:id", getHandler.HandleGet)
	e.GET("/posts/:id/download", getHandler.HandleDownload)

	authMW := middleware.AuthMiddleware(authorizer)
	e.POST("/posts/:id/like", reactHandler.HandleLike, authMW)
	e.DELETE("/posts/:id/like", reactHandler.HandleUnlike, authMW)
	e.POST("/posts/:id/comments", reactHandler.HandleComment, authMW)
	e.DELETE("/comments/:id", reactHandler.HandleRemoveComment, authMW)
	e.DELETE("/posts/:id", deleteHandler.HandleDelete, authMW)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startScanWorkers(ctx, receiver, scanner, cfg.Scanner.Workers)

	go func() {
		if err := e.Start(cfg.Server.Bind); err != nil && !errors.Is(err, http.ErrServerClosed) {
			ExitOnError(fmt.Errorf("shutting down server: %w", err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		ExitOnError(err)
	}

	if err := db.Stop(); err != nil {
		logger.Error("failed to close database", "err", err)
	}
	if err := idx.Stop(); err != nil {
		logger.Error("failed to close index", "err", err)
	}
	if err := brokerClient.Close(); err != nil {
		logger.Error("failed to close broker", "err", err)
	}
}

func buildStorage(cfg *config.Config) (storage.Publisher, storage.Remover, error) {
	if cfg.Storage.Backend == config.BackendMinIO {
		client, err := minio.New(cfg.MinIOClient)
		if err != nil {
			return nil, nil, err
		}

		return minio.NewPublisher(client, &cfg.MinIOPublisher, cfg.Stage.Root),
			minio.NewRemover(client, &cfg.MinIOPublisher), nil
	}

	publisher, err := shell.NewPublisher(cfg.ShellPublisher)
	if err != nil {
		return nil, nil, err
	}

	remover, err := shell.NewRemover(cfg.ShellPublisher)
	if err != nil {
		return nil, nil, err
	}

	return publisher, remover, nil
}

// startScanWorkers consumes scan jobs until ctx is canceled. Nacking a failed
// job puts a fresh copy back on the stream for another attempt.
func startScanWorkers(ctx context.Context, receiver brokerRepo.Receiver,
	scanner abstraction.Scanner, count int,
) {
	if count <= 0 {
		count = 1
	}

	for i := range count {
		name := fmt.Sprintf("scanner-%d", i)

		go func() {
			messages, err := receiver.Messages(ctx, name)
			if err != nil {
				logger.Error("failed to start scan consumer", "consumer", name, "err", err)

				return
			}

			for msg := range messages {
				runScanJob(ctx, scanner, msg)
			}
		}()
	}
}

func runScanJob(ctx context.Context, scanner abstraction.Scanner, msg brokerRepo.Message) {
	postID, err := strconv.ParseInt(msg.Body(), 10, 64)
	if err != nil {
		logger.Error("malformed scan job body", "body", msg.Body())
		if err := msg.Ack(); err != nil {
			logger.Error("failed to ack scan job", "err", err)
		}

		return
	}

	if err := scanner.ScanPost(ctx, postID); err != nil {
		logger.Error("scan job failed", "post", postID, "err", err)
		if err := msg.Nack(); err != nil {
			logger.Error("failed to nack scan job", "err", err)
		}

		return
	}

	if err := msg.Ack(); err != nil {
		logger.Error("failed to ack scan job", "err", err)
	}
}
