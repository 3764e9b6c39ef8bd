package database

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"stagestock/config"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
)

var (
	dbPool  = make(map[string]*gorm.DB)
	dbMutex sync.Mutex
)

// GetDBConnection manages one pooled gorm connection per database name.
func GetDBConnection(cfg config.AppConfig) (*gorm.DB, error) {
	dbMutex.Lock()
	defer dbMutex.Unlock()

	if db, exists := dbPool[cfg.DBName]; exists {
		return db, nil
	}

	dialector, err := getDialector(cfg, cfg.DBName)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	dbPool[cfg.DBName] = db
	return db, nil
}

// RegisterConnection puts an already open connection into the pool. The
// setup wizard uses it for the connection it just probed, tests use it to
// slot in an in-memory database.
func RegisterConnection(name string, db *gorm.DB) {
	dbMutex.Lock()
	defer dbMutex.Unlock()
	dbPool[name] = db
}

// GetDefaultConnection returns the connection for the database named in
// the setup-wizard config. It fails while the app is not configured.
func GetDefaultConnection() (*gorm.DB, error) {
	cfg := config.LoadAppConfig()
	if !cfg.Configured {
		return nil, errors.New("application is not configured, run the setup wizard first")
	}
	return GetDBConnection(cfg)
}

// OpenDatabaseConnection opens a fresh, unpooled connection. The setup
// wizard uses it to probe the credentials the operator typed in.
func OpenDatabaseConnection(cfg config.AppConfig) (*gorm.DB, error) {
	dialector, err := getDialector(cfg, cfg.DBName)
	if err != nil {
		return nil, err
	}
	return gorm.Open(dialector, &gorm.Config{})
}

func getDialector(cfg config.AppConfig, dbName string) (gorm.Dialector, error) {
	switch config.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPass, dbName, cfg.DBPort)
		return postgres.Open(dsn), nil
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, dbName)
		return mysql.Open(dsn), nil
	case "mssql":
		dsn := fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=%s",
			cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, dbName)
		return sqlserver.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", config.DBDriver)
	}
}

// InjectDBMiddleware sets the DB field of a controller to the default
// pooled connection before the handler runs.
func InjectDBMiddleware(controller interface{}) fiber.Handler {
	return func(c *fiber.Ctx) error {
		db, err := GetDefaultConnection()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "error connecting to database")
		}

		val := reflect.ValueOf(controller)
		if val.Kind() != reflect.Ptr || val.IsNil() {
			return fiber.NewError(fiber.StatusInternalServerError, "controller must be a non-nil pointer")
		}

		elem := val.Elem()
		dbField := elem.FieldByName("DB")
		if !dbField.IsValid() || !dbField.CanSet() {
			return fiber.NewError(fiber.StatusInternalServerError, "DB field not found or cannot be set in controller")
		}

		if dbField.Type() != reflect.TypeOf((*gorm.DB)(nil)) {
			return fiber.NewError(fiber.StatusInternalServerError, "DB field has wrong type")
		}

		dbField.Set(reflect.ValueOf(db))

		return c.Next()
	}
}
