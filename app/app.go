package app

import (
	"context"
	"os"
	"strconv"
	"time"

	"library-api/db"
	"library-api/password"
	"library-api/session"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// shorthand for handlers
type Ctx = gin.Context
type H = gin.H

// App aggregates the shared dependencies.
type App struct {
	Router *gin.Engine
	DB     *gorm.DB
	RDB    *redis.Client
	Log    *zap.Logger
	Hasher *password.Hasher
	Config Config

	appSess *session.AppSessionStore
}

type Config struct {
	RedisAddr  string
	RedisPwd   string
	WebOrigin  string
	SessionTTL time.Duration
	BcryptCost int
	SeedDB     bool
}

func (a *App) AppSessions() *session.AppSessionStore { return a.appSess }

func MustNew() *App {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	cfg := loadConfig()

	dbConn := db.ConnectDB(log)

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: 0})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal("redis", zap.Error(err))
	}

	hasher := password.NewHasher(cfg.BcryptCost)
	if cfg.SeedDB {
		if err := db.Seed(dbConn, hasher, log); err != nil {
			log.Fatal("seed", zap.Error(err))
		}
	}

	r := gin.New()
	r.Use(RequestLogger(log), gin.Recovery())
	useCORS(r, cfg.WebOrigin)

	return &App{
		Router: r, DB: dbConn, RDB: rdb, Log: log, Hasher: hasher, Config: cfg,
		appSess: session.NewAppSessionStore(rdb, cfg.SessionTTL),
	}
}

func (a *App) Close() {
	_ = a.RDB.Close()
	_ = a.Log.Sync()
}

func loadConfig() Config {
	get := func(k, def string) string {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		return v
	}
	ttl := 24 * time.Hour
	if sec, err := strconv.Atoi(get("SESSION_TTL_SECONDS", "")); err == nil && sec > 0 {
		ttl = time.Duration(sec) * time.Second
	}
	cost := bcrypt.DefaultCost
	if c, err := strconv.Atoi(get("BCRYPT_COST", "")); err == nil {
		cost = c
	}
	return Config{
		RedisAddr:  get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPwd:   os.Getenv("REDIS_PASSWORD"),
		WebOrigin:  get("WEB_ORIGIN", "http://localhost:3000"),
		SessionTTL: ttl,
		BcryptCost: cost,
		SeedDB:     get("SEED_DB", "false") == "true",
	}
}
