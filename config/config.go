package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type AppConfig struct {
	Port         string
	DBPath       string
	DataDir      string
	StoreBackend string // file, sqlite or memory

	PlantationsKey string
	FruitsKey      string

	MinDistanceKM float64
	AreaMinM2     float64
	AreaMaxM2     float64
	RandSeed      uint64 // 0 = seeded from the clock

	LandCheckURL     string // empty disables the land/sea lookup
	LandCheckTimeout time.Duration

	SeedAttempts  int
	SeedJitterDeg float64
	SeedPause     time.Duration

	ExchangeRateEUR float64
	StartingBalance float64
}

func Load(log *zap.Logger) AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Debug("[cfg] no .env file loaded", zap.Error(err))
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	getFloat := func(k string, def float64) float64 {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			log.Warn("[cfg] invalid number, using default", zap.String("key", k), zap.String("value", v), zap.Float64("default", def))
			return def
		}
		return f
	}
	getPositive := func(k string, def float64) float64 {
		f := getFloat(k, def)
		if f <= 0 {
			log.Warn("[cfg] value must be positive, using default", zap.String("key", k), zap.Float64("value", f), zap.Float64("default", def))
			return def
		}
		return f
	}
	getInt := func(k string, def int) int {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Warn("[cfg] invalid integer, using default", zap.String("key", k), zap.String("value", v), zap.Int("default", def))
			return def
		}
		return n
	}
	getDuration := func(k string, def time.Duration) time.Duration {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Warn("[cfg] invalid duration, using default", zap.String("key", k), zap.String("value", v), zap.Duration("default", def))
			return def
		}
		return d
	}

	cfg := AppConfig{
		Port:             get("PORT", "8080"),
		DBPath:           get("DB_PATH", "farm.db"),
		DataDir:          get("DATA_DIR", "data"),
		StoreBackend:     get("STORE_BACKEND", "file"),
		PlantationsKey:   get("PLANTATIONS_KEY", "plantations.json"),
		FruitsKey:        get("FRUITS_KEY", "fruits.json"),
		MinDistanceKM:    getPositive("MIN_DISTANCE_KM", 2.0),
		AreaMinM2:        getPositive("AREA_MIN_M2", 500),
		AreaMaxM2:        getPositive("AREA_MAX_M2", 25000),
		RandSeed:         uint64(getInt("RAND_SEED", 0)),
		LandCheckURL:     get("LAND_CHECK_URL", ""),
		LandCheckTimeout: getDuration("LAND_CHECK_TIMEOUT", 5*time.Second),
		SeedAttempts:     getInt("SEED_ATTEMPTS", 3),
		SeedJitterDeg:    getFloat("SEED_JITTER_DEG", 0.2),
		SeedPause:        getDuration("SEED_PAUSE", 0),
		ExchangeRateEUR:  getFloat("EXCHANGE_RATE_EUR", 0.86),
		StartingBalance:  getFloat("STARTING_BALANCE", 1000),
	}
	if cfg.AreaMinM2 > cfg.AreaMaxM2 {
		log.Warn("[cfg] AREA_MIN_M2 above AREA_MAX_M2, swapping", zap.Float64("min", cfg.AreaMinM2), zap.Float64("max", cfg.AreaMaxM2))
		cfg.AreaMinM2, cfg.AreaMaxM2 = cfg.AreaMaxM2, cfg.AreaMinM2
	}
	if cfg.SeedAttempts < 1 {
		cfg.SeedAttempts = 1
	}
	log.Info("[cfg] loaded", zap.Any("config", cfg))
	return cfg
}
