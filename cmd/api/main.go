package main

import (
	"context"
	"io"
	"time"

	"TikLite.com/cmd/api/handlers/live"
	ops "TikLite.com/cmd/api/handlers/ops"
	user "TikLite.com/cmd/api/handlers/user"
	"TikLite.com/cmd/api/router"
	interactiondb "TikLite.com/cmd/interaction/dal/db"
	"TikLite.com/cmd/interaction/infras/guard"
	interaction "TikLite.com/cmd/interaction/service"
	"TikLite.com/cmd/model"
	relationdb "TikLite.com/cmd/relation/dal/db"
	userdb "TikLite.com/cmd/user/dal/db"
	userservice "TikLite.com/cmd/user/service"
	"TikLite.com/cmd/video/common"
	videodb "TikLite.com/cmd/video/dal/db"
	videoservice "TikLite.com/cmd/video/service"
	"TikLite.com/config"
	"TikLite.com/pkg/cache"
	"TikLite.com/pkg/database"
	"TikLite.com/pkg/middleware"
	"TikLite.com/pkg/mq"
	"TikLite.com/pkg/oss"
	"TikLite.com/pkg/search"
	"TikLite.com/pkg/session"
	"TikLite.com/pkg/tracer"
	"TikLite.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/hertz-contrib/cors"
	"github.com/sirupsen/logrus"
)

// bus RabbitMQ或进程内总线
type bus interface {
	mq.MessageProducer
	ConsumeRelationEvents(ctx context.Context, h mq.RelationEventHandler) error
	io.Closer
}

type rabbitBus struct {
	*mq.Producer
	consumer *mq.Consumer
}

func (b *rabbitBus) ConsumeRelationEvents(ctx context.Context, h mq.RelationEventHandler) error {
	return b.consumer.ConsumeRelationEvents(ctx, h)
}

func (b *rabbitBus) Close() error {
	_ = b.consumer.Close()
	return b.Producer.Close()
}

func initBus() bus {
	url := config.RabbitMqURL()
	if url == "" {
		hlog.Info("rabbitmq not configured, dispatching events in process")
		return mq.NewLocalBus(0)
	}
	producer, err := mq.NewProducer(url)
	if err != nil {
		hlog.Warnf("rabbitmq unavailable, dispatching events in process: %v", err)
		return mq.NewLocalBus(0)
	}
	consumer, err := mq.NewConsumer(url)
	if err != nil {
		producer.Close()
		hlog.Warnf("rabbitmq consumer unavailable, dispatching events in process: %v", err)
		return mq.NewLocalBus(0)
	}
	return &rabbitBus{Producer: producer, consumer: consumer}
}

func initDatabase() {
	gdb := database.Init()
	userdb.Init(gdb)
	videodb.Init(gdb)
	interactiondb.Init(gdb)
	relationdb.Init(gdb)
	ops.RegisterCheck("mysql", database.Ping)
}

func main() {
	config.Init()
	if err := utils.InitSnowflake(config.ConfigInfo.Snowflake.Node); err != nil {
		logrus.Fatalf("init snowflake failed: %v", err)
	}
	closer, err := tracer.InitJaeger("tiklite-api")
	if err != nil {
		logrus.Warnf("tracing disabled: %v", err)
	}
	if closer != nil {
		defer closer.Close()
	}

	initDatabase()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := initBus()
	defer events.Close()
	if rb, ok := events.(*rabbitBus); ok {
		ops.RegisterCheck("rabbitmq", func(context.Context) error { return rb.HealthCheck() })
	}

	rdb := cache.Init()
	var lock interaction.Guard
	videoDeps := videoservice.Deps{Producer: events}
	if rdb != nil {
		lock = guard.NewRedisGuard(rdb)
		videoDeps.Views = cache.NewViewCounter(rdb)
		videoDeps.Explore = cache.NewVideoCacheManager(rdb)
		ops.RegisterCheck("redis", func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	}
	interaction.Init(lock, events)

	store, err := oss.InitMinio()
	if err != nil {
		logrus.Warnf("object storage disabled: %v", err)
	}
	if store != nil {
		if err := store.EnsureBucket(ctx); err != nil {
			hlog.Warnf("ensure bucket at boot failed: %v", err)
		}
		videoDeps.Store = store
		userservice.Init(events, store)
		ops.InitStorage(store)
		ops.RegisterCheck("minio", store.Ping)
	} else {
		userservice.Init(events, nil)
	}

	es, err := search.Init()
	if err != nil {
		logrus.Warnf("elasticsearch disabled: %v", err)
	}
	if es != nil {
		if err := es.EnsureIndices(ctx); err != nil {
			hlog.Warnf("ensure search indices failed: %v", err)
		}
		videoDeps.Search = es
		ops.RegisterCheck("elasticsearch", es.Ping)
		// 没有RabbitMQ时由本进程维护索引
		if local, ok := events.(*mq.LocalBus); ok {
			_ = local.ConsumeIndexEvents(ctx, search.NewIndexer(es))
		}
	}
	videoservice.Init(videoDeps)

	var syncman *common.ViewSyncman
	if views, ok := videoDeps.Views.(*cache.ViewCounter); ok {
		syncman = common.NewViewSyncman(views, config.Duration(config.ConfigInfo.Server.ViewSyncPeriod, 10*time.Second))
		syncman.Run()
	}

	if err := middleware.InitRateLimit(middleware.WriteResource, config.ConfigInfo.Sentinel.WriteQps); err != nil {
		logrus.Warnf("rate limit disabled: %v", err)
	}

	jwtCfg := config.ConfigInfo.Jwt
	sessions, err := session.New(jwtCfg.Secret,
		config.Duration(jwtCfg.Timeout, 24*time.Hour),
		config.Duration(jwtCfg.MaxRefresh, 7*24*time.Hour),
		func(ctx context.Context, email, password string) (*model.User, error) {
			return userservice.NewLoginUserService(ctx).LoginUser(email, password)
		})
	if err != nil {
		logrus.Fatalf("init session failed: %v", err)
	}
	user.Init(sessions)

	hub := live.NewHub()
	if err := events.ConsumeRelationEvents(ctx, hub); err != nil {
		hlog.Warnf("live updates disabled: %v", err)
	}

	h := server.New(
		server.WithHostPorts(config.ConfigInfo.Server.Addr),
		server.WithHandleMethodNotAllowed(true),
		server.WithMaxRequestBodySize(int(maxBody())),
		server.WithReadTimeout(config.Duration(config.ConfigInfo.Server.ReadTimeout, 5*time.Minute)),
		server.WithWriteTimeout(config.Duration(config.ConfigInfo.Server.WriteTimeout, 5*time.Minute)),
		server.WithExitWaitTime(3*time.Second),
	)
	// websocket需要独占连接
	h.NoHijackConnPool = true

	h.Use(middleware.Recovery())
	h.Use(middleware.Tracing())
	h.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigInfo.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Register(h, sessions, hub)

	h.OnShutdown = append(h.OnShutdown, func(context.Context) {
		cancel()
		if syncman != nil {
			syncman.Stop()
		}
	})

	h.Spin()
}

// maxBody 上传上限之外留出multipart的余量
func maxBody() int64 {
	n := config.ConfigInfo.Upload.MaxSize
	if n <= 0 {
		n = 100 << 20
	}
	return n + 1<<20
}
