package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// TableColumns returns the lowercased column names of table.
// A missing table yields no columns and no error.
func TableColumns(db *gorm.DB, table string) ([]string, error) {
	query := "SELECT column_name FROM information_schema.columns WHERE table_schema = DATABASE() AND table_name = ? ORDER BY ordinal_position"
	if db.Dialector.Name() == DriverSQLite {
		query = "SELECT name FROM pragma_table_info(?) ORDER BY cid"
	}

	var names []string
	if err := db.Raw(query, table).Scan(&names).Error; err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", table, err)
	}
	for i := range names {
		names[i] = strings.ToLower(names[i])
	}
	return names, nil
}

// MissingColumns returns the entries of want that table does not have, in the
// order given.
func MissingColumns(db *gorm.DB, table string, want []string) ([]string, error) {
	names, err := TableColumns(db, table)
	if err != nil {
		return nil, err
	}

	present := make(map[string]struct{}, len(names))
	for _, name := range names {
		present[name] = struct{}{}
	}
	missing := []string{}
	for _, col := range want {
		if _, ok := present[strings.ToLower(col)]; !ok {
			missing = append(missing, col)
		}
	}
	return missing, nil
}
