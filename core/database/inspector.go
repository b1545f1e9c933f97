package database

import (
	"fmt"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"gorm.io/gorm"
)

// ColumnInfo matches the output of SHOW COLUMNS
type ColumnInfo struct {
	Field   string
	Type    string
	Null    string
	Key     string
	Default *string // Pointer because NULL default is possible
	Extra   string
}

// GetTableColumns retrieves the column definitions for a given table.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	var columns []ColumnInfo
	if db.Dialector.Name() == "sqlite" {
		// SQLite uses PRAGMA table_info
		type SQLiteColumn struct {
			Cid        int
			Name       string
			Type       string
			Notnull    int
			DefaultVal *string
			Pk         int
		}
		var sqliteCols []SQLiteColumn
		if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", tableName)).Scan(&sqliteCols).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}
		for _, col := range sqliteCols {
			columns = append(columns, ColumnInfo{
				Field: strings.ToLower(col.Name),
				Type:  strings.ToLower(col.Type),
			})
		}
		return columns, nil
	}

	err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", tableName)).Scan(&columns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}
	for i := range columns {
		columns[i].Type = strings.ToLower(columns[i].Type)
		columns[i].Field = strings.ToLower(columns[i].Field)
	}
	return columns, nil
}

// MissingColumnsError lists, per table, the required columns the store does not have.
// A table that does not exist at all reports every required column.
type MissingColumnsError struct {
	Missing map[string][]string
}

func (e *MissingColumnsError) Error() string {
	tables := make([]string, 0, len(e.Missing))
	for table := range e.Missing {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	parts := make([]string, 0, len(tables))
	for _, table := range tables {
		parts = append(parts, fmt.Sprintf("%s(%s)", table, strings.Join(e.Missing[table], ", ")))
	}
	return "schema is missing columns: " + strings.Join(parts, "; ")
}

// VerifySchema checks that every table in required exists with at least the listed columns.
func VerifySchema(db *gorm.DB, required map[string][]string) error {
	missing := make(map[string][]string)

	for table, columns := range required {
		if !db.Migrator().HasTable(table) {
			cols := make([]string, 0, len(columns))
			for _, col := range columns {
				cols = append(cols, strings.ToLower(col))
			}
			sort.Strings(cols)
			missing[table] = cols
			continue
		}

		present, err := GetTableColumns(db, table)
		if err != nil {
			return err
		}

		have := mapset.NewThreadUnsafeSet[string]()
		for _, col := range present {
			have.Add(col.Field)
		}

		want := mapset.NewThreadUnsafeSet[string]()
		for _, col := range columns {
			want.Add(strings.ToLower(col))
		}

		if diff := want.Difference(have); diff.Cardinality() > 0 {
			cols := diff.ToSlice()
			sort.Strings(cols)
			missing[table] = cols
		}
	}

	if len(missing) > 0 {
		return &MissingColumnsError{Missing: missing}
	}
	return nil
}
