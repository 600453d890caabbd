package config

import (
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type LoaderConfig struct {
	DatabaseURL  string
	DataDir      string
	HolidaysFile string
	TimeDimStart time.Time
	TimeDimEnd   time.Time
}

var instance *LoaderConfig
var once sync.Once

func GetLoaderConfig() *LoaderConfig {
	once.Do(func() {
		instance = &LoaderConfig{}

		if err := godotenv.Load(); err != nil {
			logrus.Warnf("no env file loaded: %s", err.Error())
		}

		instance.DatabaseURL = getEnv("DATABASE_URL", "")
		if instance.DatabaseURL == "" {
			logrus.Fatal("could not get db url")
		}

		instance.DataDir = getEnv("DATA_DIR", "./data")
		instance.HolidaysFile = getEnv("HOLIDAYS_FILE", "")

		instance.TimeDimStart = getEnvAsDate("TIME_DIM_START", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
		instance.TimeDimEnd = getEnvAsDate("TIME_DIM_END", time.Date(2030, 12, 31, 0, 0, 0, 0, time.UTC))
		if instance.TimeDimEnd.Before(instance.TimeDimStart) {
			logrus.Fatal("time dimension range is inverted")
		}
	})

	return instance
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsDate(name string, defaultVal time.Time) time.Time {
	valStr := getEnv(name, "")
	if val, err := time.Parse("2006-01-02", valStr); err == nil {
		return val.UTC()
	}

	return defaultVal
}
