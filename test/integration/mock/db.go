package mock

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var once sync.Once
var db *Db

// Db is a shared in-memory SQLite database holding the finance tables.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
	schema string
}

// NewDb opens the shared database once and migrates the given models, keyed by table name.
func NewDb(schema string, models map[string]any) *Db {
	once.Do(func() {
		db = open(schema, models)
	})
	return db
}

func open(schema string, models map[string]any) *Db {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}

	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	newDbMock := &Db{
		DbConn: dbConn,
		schema: schema,
		models: models,
	}

	if err := newDbMock.migrate(); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	return newDbMock
}

// ClearDB removes every row from the finance tables.
func (d *Db) ClearDB() error {
	for _, table := range d.tables() {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(d.models[table]).Error
		if err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return nil
}

func (d *Db) migrate() error {
	if err := d.DbConn.Exec("ATTACH ':memory:' AS " + d.schema).Error; err != nil {
		if !strings.Contains(err.Error(), "is already in use") {
			return err
		}
	}

	modelList := make([]any, 0, len(d.models))
	for _, table := range d.tables() {
		modelList = append(modelList, d.models[table])
		if err := d.DbConn.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)).Error; err != nil {
			return err
		}
	}

	if err := d.DbConn.AutoMigrate(modelList...); err != nil {
		return err
	}

	for _, model := range modelList {
		if !d.DbConn.Migrator().HasTable(model) {
			return fmt.Errorf("table for model %T was not created", model)
		}
	}
	return nil
}

// tables returns the table names in a stable order.
func (d *Db) tables() []string {
	tables := make([]string, 0, len(d.models))
	for table := range d.models {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	return tables
}

// GetModel returns the model registered for the table.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
