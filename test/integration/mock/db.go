package mock

import (
	"fmt"
	"sort"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var once sync.Once
var db *Db

// Db is a shared in-memory SQLite database for integration scenarios.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
}

// NewDb opens the shared database once and creates the tables for models, keyed by table name.
func NewDb(name string, models map[string]any) *Db {
	once.Do(func() {
		db = open(name, models)
	})
	return db
}

func open(name string, models map[string]any) *Db {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	dbConn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	sqlDB, err := dbConn.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	newDbMock := &Db{
		DbConn: dbConn,
		models: models,
	}

	if err := dbConn.AutoMigrate(newDbMock.modelList()...); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	return newDbMock
}

// ClearDB removes every row, including soft-deleted ones, from the managed tables.
func (d *Db) ClearDB() error {
	for _, model := range d.modelList() {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error
		if err != nil {
			return fmt.Errorf("failed to clear %T: %w", model, err)
		}
	}
	return nil
}

// GetModel returns the model registered for table.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}

func (d *Db) modelList() []any {
	tables := make([]string, 0, len(d.models))
	for table := range d.models {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	modelList := make([]any, 0, len(tables))
	for _, table := range tables {
		modelList = append(modelList, d.models[table])
	}
	return modelList
}
