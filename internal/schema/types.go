package schema

// Catalog represents one embedded database file and its tables
type Catalog struct {
	DBID      string
	Path      string
	SizeBytes int64
	Tables    []Table
	Issues    []TableIssue
}

// Table represents a table within a catalog
type Table struct {
	Name        string
	Columns     []Column
	ForeignKeys []ForeignKey
	RowCount    int64
	// Incomplete is set when introspection of this table failed; only Name is reliable.
	Incomplete bool
}

// Column represents a table column
type Column struct {
	Name         string
	DeclaredType string
	IsPrimaryKey bool
}

// ForeignKey represents a reference from a column of the owning table
type ForeignKey struct {
	SourceColumn string
	TargetTable  string
	TargetColumn string
}

// TableIssue records a table whose detail could not be extracted
type TableIssue struct {
	Table string
	Stage string // columns, row_count, foreign_keys
	Err   error
}

// Partial reports whether any table is missing detail
func (c *Catalog) Partial() bool {
	return len(c.Issues) > 0
}

// TableNames returns table names in catalog order
func (c *Catalog) TableNames() []string {
	names := make([]string, len(c.Tables))
	for i, t := range c.Tables {
		names[i] = t.Name
	}
	return names
}

// ColumnNames returns every column name of every table, in order, repeats included
func (c *Catalog) ColumnNames() []string {
	var names []string
	for _, t := range c.Tables {
		for _, col := range t.Columns {
			names = append(names, col.Name)
		}
	}
	return names
}

// Table returns the table with the given name, or nil
func (c *Catalog) Table(name string) *Table {
	for i := range c.Tables {
		if c.Tables[i].Name == name {
			return &c.Tables[i]
		}
	}
	return nil
}

// Totals returns table, column, foreign key and row counts for the catalog
func (c *Catalog) Totals() (tables, columns, foreignKeys int, rows int64) {
	tables = len(c.Tables)
	for _, t := range c.Tables {
		columns += len(t.Columns)
		foreignKeys += len(t.ForeignKeys)
		rows += t.RowCount
	}
	return tables, columns, foreignKeys, rows
}

// PrimaryKey returns the names of the primary key columns in column order
func (t *Table) PrimaryKey() []string {
	var pk []string
	for _, col := range t.Columns {
		if col.IsPrimaryKey {
			pk = append(pk, col.Name)
		}
	}
	return pk
}

// Column returns the column with the given name, or nil
func (t *Table) Column(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// ForeignKeyFor returns the foreign key whose source is the given column, or nil
func (t *Table) ForeignKeyFor(column string) *ForeignKey {
	for i := range t.ForeignKeys {
		if t.ForeignKeys[i].SourceColumn == column {
			return &t.ForeignKeys[i]
		}
	}
	return nil
}
